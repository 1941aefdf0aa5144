package income

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kharcha/kharcha/internal/database"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrIncomeNotFound = errors.New("income not found")

// Repo persists income rows. Mutating methods take a database.Querier so the
// income write and the automatic savings projection can share one transaction.
type Repo interface {
	Store(ctx context.Context, q database.Querier, userId int, income Income) (Income, error)
	Update(ctx context.Context, q database.Querier, userId int, income Income) (bool, error)
	Delete(ctx context.Context, q database.Querier, userId int, incomeId int) (bool, error)
	Get(ctx context.Context, userId int, incomeId int) (Income, error)
	GetAll(ctx context.Context, userId int) ([]Income, error)
	Recent(ctx context.Context, userId int, limit int) ([]Income, error)
	SumAll(ctx context.Context, userId int) (decimal.Decimal, error)
	SumInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) (decimal.Decimal, error)
	ListBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Income, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewIncomeRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, q database.Querier, userId int, income Income) (Income, error) {
	query := `INSERT INTO income (user_id, source, amount, occurred_at, description)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var description *string
	if income.Description != "" {
		description = &income.Description
	}
	err := q.QueryRow(ctx, query,
		userId,
		income.Source,
		income.Amount,
		income.OccurredAt,
		description,
	).Scan(&income.ID)
	if err != nil {
		err := fmt.Errorf("could not store income: %w", err)
		log.Error(err)
		return Income{}, err
	}
	return income, nil
}

func (r *RepoImpl) Update(ctx context.Context, q database.Querier, userId int, income Income) (bool, error) {
	query := `UPDATE income SET source = $1, amount = $2, occurred_at = $3, description = $4
				WHERE id = $5 AND user_id = $6`

	var description *string
	if income.Description != "" {
		description = &income.Description
	}
	result, err := q.Exec(ctx, query,
		income.Source,
		income.Amount,
		income.OccurredAt,
		description,
		income.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update income: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, q database.Querier, userId int, incomeId int) (bool, error) {
	query := `DELETE FROM income WHERE id = $1 AND user_id = $2`
	result, err := q.Exec(ctx, query, incomeId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete income: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, incomeId int) (Income, error) {
	query := `SELECT id, source, amount, occurred_at, description FROM income WHERE id = $1 AND user_id = $2`
	income, err := scanIncome(r.db.QueryRow(ctx, query, incomeId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Income{}, ErrIncomeNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get income: %w", err)
		log.Error(err)
		return Income{}, err
	}
	return income, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Income, error) {
	query := `SELECT id, source, amount, occurred_at, description FROM income
				WHERE user_id = $1 ORDER BY occurred_at DESC`
	return r.queryIncomes(ctx, query, userId)
}

func (r *RepoImpl) Recent(ctx context.Context, userId int, limit int) ([]Income, error) {
	query := `SELECT id, source, amount, occurred_at, description FROM income
				WHERE user_id = $1 ORDER BY occurred_at DESC LIMIT $2`
	return r.queryIncomes(ctx, query, userId, limit)
}

func (r *RepoImpl) SumAll(ctx context.Context, userId int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM income WHERE user_id = $1`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum income: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

// SumInRange totals income for an optional range. A nil bound leaves that
// side of the range open.
func (r *RepoImpl) SumInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM income
				WHERE user_id = $1
				  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
				  AND ($3::timestamptz IS NULL OR occurred_at < $3)`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId, from, to).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum income: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) ListBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Income, error) {
	query := `SELECT id, source, amount, occurred_at, description FROM income
				WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3 ORDER BY occurred_at`
	return r.queryIncomes(ctx, query, userId, from, to)
}

func (r *RepoImpl) queryIncomes(ctx context.Context, query string, args ...any) ([]Income, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query income: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var incomes []Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			err := fmt.Errorf("could not scan income: %w", err)
			log.Error(err)
			return nil, err
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over income rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return incomes, nil
}

func scanIncome(row pgx.Row) (Income, error) {
	var income Income
	var description *string
	if err := row.Scan(&income.ID, &income.Source, &income.Amount, &income.OccurredAt, &description); err != nil {
		return Income{}, err
	}
	if description != nil {
		income.Description = *description
	}
	return income, nil
}
