package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, budget Budget) (Budget, error)
	Update(ctx context.Context, userId int, budget Budget) (bool, error)
	Delete(ctx context.Context, userId int, budgetId int) (bool, error)
	GetAll(ctx context.Context, userId int) ([]Budget, error)
	FindActive(ctx context.Context, userId int, on time.Time) ([]Budget, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, budget Budget) (Budget, error) {
	query := `INSERT INTO budget (user_id, category, limit_amount, period, start_date, end_date)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := r.db.QueryRow(ctx, query,
		userId,
		budget.Category,
		budget.LimitAmount,
		budget.Period,
		nullableDate(budget.StartDate),
		nullableDate(budget.EndDate),
	).Scan(&budget.ID)
	if err != nil {
		err := fmt.Errorf("could not store budget: %w", err)
		log.Error(err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET category = $1, limit_amount = $2, period = $3, start_date = $4, end_date = $5
				WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(ctx, query,
		budget.Category,
		budget.LimitAmount,
		budget.Period,
		nullableDate(budget.StartDate),
		nullableDate(budget.EndDate),
		budget.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update budget: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, budgetId int) (bool, error) {
	query := `DELETE FROM budget WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Budget, error) {
	query := `SELECT id, category, limit_amount, period, start_date, end_date FROM budget
				WHERE user_id = $1 ORDER BY id`
	return r.queryBudgets(ctx, query, userId)
}

func (r *RepoImpl) FindActive(ctx context.Context, userId int, on time.Time) ([]Budget, error) {
	query := `SELECT id, category, limit_amount, period, start_date, end_date FROM budget
				WHERE user_id = $1
				  AND (start_date IS NULL OR start_date <= $2)
				  AND (end_date IS NULL OR end_date >= $2)
				ORDER BY id`
	return r.queryBudgets(ctx, query, userId, on)
}

func (r *RepoImpl) queryBudgets(ctx context.Context, query string, args ...any) ([]Budget, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not list budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (Budget, error) {
	var budget Budget
	var startDate, endDate *time.Time
	if err := row.Scan(
		&budget.ID,
		&budget.Category,
		&budget.LimitAmount,
		&budget.Period,
		&startDate,
		&endDate,
	); err != nil {
		return Budget{}, err
	}
	if startDate != nil {
		budget.StartDate = *startDate
	}
	if endDate != nil {
		budget.EndDate = *endDate
	}
	return budget, nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
