package savings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kharcha/kharcha/internal/database"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Repo persists savings rows. The automatic-projection methods take a
// database.Querier so they can run inside the income write's transaction.
type Repo interface {
	UpsertAutomatic(ctx context.Context, q database.Querier, userId int, s Savings) error
	DeleteAutomatic(ctx context.Context, q database.Querier, incomeId int) error
	FindByIncomeId(ctx context.Context, userId int, incomeId int) (*Savings, error)
	Store(ctx context.Context, userId int, s Savings) (Savings, error)
	GetAll(ctx context.Context, userId int) ([]Savings, error)
	DeleteManual(ctx context.Context, userId int, savingsId int) (bool, error)
	SumAutomatic(ctx context.Context, userId int) (decimal.Decimal, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewSavingsRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

// UpsertAutomatic maintains the single automatic row per income. The UNIQUE
// constraint on income_id makes the upsert safe under concurrent retries.
func (r *RepoImpl) UpsertAutomatic(ctx context.Context, q database.Querier, userId int, s Savings) error {
	query := `INSERT INTO savings (user_id, income_id, amount, date, description, is_automatic)
				VALUES ($1, $2, $3, $4, $5, TRUE)
				ON CONFLICT (income_id) DO UPDATE
				SET amount = EXCLUDED.amount, date = EXCLUDED.date, description = EXCLUDED.description`

	_, err := q.Exec(ctx, query, userId, s.IncomeId, s.Amount, s.Date, s.Description)
	if err != nil {
		err := fmt.Errorf("could not upsert automatic savings: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) DeleteAutomatic(ctx context.Context, q database.Querier, incomeId int) error {
	query := `DELETE FROM savings WHERE income_id = $1 AND is_automatic`
	_, err := q.Exec(ctx, query, incomeId)
	if err != nil {
		err := fmt.Errorf("could not delete automatic savings: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) FindByIncomeId(ctx context.Context, userId int, incomeId int) (*Savings, error) {
	query := `SELECT id, income_id, amount, date, description, is_automatic FROM savings
				WHERE user_id = $1 AND income_id = $2`
	s, err := scanSavings(r.db.QueryRow(ctx, query, userId, incomeId))
	if err == pgx.ErrNoRows {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("could not find savings by income id: %w", err)
		log.Error(err)
		return nil, err
	}
	return &s, nil
}

func (r *RepoImpl) Store(ctx context.Context, userId int, s Savings) (Savings, error) {
	query := `INSERT INTO savings (user_id, amount, date, description, is_automatic)
				VALUES ($1, $2, $3, $4, FALSE) RETURNING id`

	var description *string
	if s.Description != "" {
		description = &s.Description
	}
	err := r.db.QueryRow(ctx, query, userId, s.Amount, s.Date, description).Scan(&s.ID)
	if err != nil {
		err := fmt.Errorf("could not store savings: %w", err)
		log.Error(err)
		return Savings{}, err
	}
	s.IsAutomatic = false
	return s, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Savings, error) {
	query := `SELECT id, income_id, amount, date, description, is_automatic FROM savings
				WHERE user_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query savings: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var all []Savings
	for rows.Next() {
		s, err := scanSavings(rows)
		if err != nil {
			err := fmt.Errorf("could not scan savings: %w", err)
			log.Error(err)
			return nil, err
		}
		all = append(all, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over savings rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return all, nil
}

// DeleteManual removes a manual savings entry. Automatic rows are derived
// state and can only disappear with their income.
func (r *RepoImpl) DeleteManual(ctx context.Context, userId int, savingsId int) (bool, error) {
	query := `DELETE FROM savings WHERE id = $1 AND user_id = $2 AND NOT is_automatic`
	result, err := r.db.Exec(ctx, query, savingsId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete savings: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) SumAutomatic(ctx context.Context, userId int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM savings WHERE user_id = $1 AND is_automatic`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum automatic savings: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func scanSavings(row pgx.Row) (Savings, error) {
	var s Savings
	var incomeId *int
	var description *string
	if err := row.Scan(&s.ID, &incomeId, &s.Amount, &s.Date, &description, &s.IsAutomatic); err != nil {
		return Savings{}, err
	}
	if incomeId != nil {
		s.IncomeId = *incomeId
	}
	if description != nil {
		s.Description = *description
	}
	return s, nil
}
