package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	ListByKind(ctx context.Context, userId int, kind Kind) ([]Category, error)
	Upsert(ctx context.Context, userId int, category Category) (Category, error)
	SeedDefaults(ctx context.Context, userId int, kind Kind, names []string) error
	Delete(ctx context.Context, userId int, categoryId int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewCategoryRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) ListByKind(ctx context.Context, userId int, kind Kind) ([]Category, error) {
	query := `SELECT id, kind, name, is_default FROM category
				WHERE user_id = $1 AND kind = $2 ORDER BY name`

	rows, err := r.db.Query(ctx, query, userId, kind)
	if err != nil {
		err := fmt.Errorf("could not list categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Kind, &category.Name, &category.IsDefault); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Upsert inserts the name or, when the user already has it for the kind,
// returns the existing row unchanged.
func (r *RepoImpl) Upsert(ctx context.Context, userId int, category Category) (Category, error) {
	query := `INSERT INTO category (user_id, kind, name, is_default)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (user_id, kind, name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id, is_default`

	err := r.db.QueryRow(ctx, query,
		userId,
		category.Kind,
		category.Name,
		category.IsDefault,
	).Scan(&category.ID, &category.IsDefault)
	if err != nil {
		err := fmt.Errorf("could not upsert category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

// SeedDefaults inserts the default names for a kind, skipping any the user
// already has. Safe to call concurrently for the same user.
func (r *RepoImpl) SeedDefaults(ctx context.Context, userId int, kind Kind, names []string) error {
	query := `INSERT INTO category (user_id, kind, name, is_default)
				VALUES ($1, $2, $3, TRUE)
				ON CONFLICT (user_id, kind, name) DO NOTHING`

	for _, name := range names {
		if _, err := r.db.Exec(ctx, query, userId, kind, name); err != nil {
			err := fmt.Errorf("could not seed default category %q: %w", name, err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	query := `DELETE FROM category WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, categoryId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
