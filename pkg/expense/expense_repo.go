package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, expense Expense) (Expense, error)
	Update(ctx context.Context, userId int, expense Expense) (bool, error)
	Delete(ctx context.Context, userId int, expenseId int) (bool, error)
	GetAll(ctx context.Context, userId int) ([]Expense, error)
	Recent(ctx context.Context, userId int, limit int) ([]Expense, error)
	SumAll(ctx context.Context, userId int) (decimal.Decimal, error)
	SumBetween(ctx context.Context, userId int, from time.Time, to time.Time) (decimal.Decimal, error)
	ListBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Expense, error)
	ListInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) ([]Expense, error)
	SumInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) (decimal.Decimal, error)
	TotalsByCategory(ctx context.Context, userId int, from *time.Time, to *time.Time) ([]CategoryTotal, error)
	SumByCategoryBetween(ctx context.Context, userId int, category string, from *time.Time, to *time.Time) (decimal.Decimal, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewExpenseRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, expense Expense) (Expense, error) {
	query := `INSERT INTO expense (user_id, category, payment_method, source_type, amount, occurred_at, description)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var description *string
	if expense.Description != "" {
		description = &expense.Description
	}
	err := r.db.QueryRow(ctx, query,
		userId,
		expense.Category,
		expense.PaymentMethod,
		expense.SourceType,
		expense.Amount,
		expense.OccurredAt,
		description,
	).Scan(&expense.ID)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expense SET category = $1, payment_method = $2, source_type = $3, amount = $4,
					occurred_at = $5, description = $6
				WHERE id = $7 AND user_id = $8`

	var description *string
	if expense.Description != "" {
		description = &expense.Description
	}
	result, err := r.db.Exec(ctx, query,
		expense.Category,
		expense.PaymentMethod,
		expense.SourceType,
		expense.Amount,
		expense.OccurredAt,
		description,
		expense.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	query := `DELETE FROM expense WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, expenseId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Expense, error) {
	query := `SELECT id, category, payment_method, source_type, amount, occurred_at, description FROM expense
				WHERE user_id = $1 ORDER BY occurred_at DESC`
	return r.queryExpenses(ctx, query, userId)
}

func (r *RepoImpl) Recent(ctx context.Context, userId int, limit int) ([]Expense, error) {
	query := `SELECT id, category, payment_method, source_type, amount, occurred_at, description FROM expense
				WHERE user_id = $1 ORDER BY occurred_at DESC LIMIT $2`
	return r.queryExpenses(ctx, query, userId, limit)
}

func (r *RepoImpl) SumAll(ctx context.Context, userId int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense WHERE user_id = $1`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) SumBetween(ctx context.Context, userId int, from time.Time, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense
				WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId, from, to).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) ListBetween(ctx context.Context, userId int, from time.Time, to time.Time) ([]Expense, error) {
	query := `SELECT id, category, payment_method, source_type, amount, occurred_at, description FROM expense
				WHERE user_id = $1 AND occurred_at >= $2 AND occurred_at < $3 ORDER BY occurred_at`
	return r.queryExpenses(ctx, query, userId, from, to)
}

// ListInRange lists expenses for an optional range. A nil bound leaves that
// side of the range open.
func (r *RepoImpl) ListInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) ([]Expense, error) {
	query := `SELECT id, category, payment_method, source_type, amount, occurred_at, description FROM expense
				WHERE user_id = $1
				  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
				  AND ($3::timestamptz IS NULL OR occurred_at < $3)
				ORDER BY occurred_at`
	return r.queryExpenses(ctx, query, userId, from, to)
}

func (r *RepoImpl) SumInRange(ctx context.Context, userId int, from *time.Time, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense
				WHERE user_id = $1
				  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
				  AND ($3::timestamptz IS NULL OR occurred_at < $3)`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId, from, to).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses: %w", err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

// TotalsByCategory returns per-category sums, highest first. A nil bound
// leaves that side of the range open.
func (r *RepoImpl) TotalsByCategory(ctx context.Context, userId int, from *time.Time, to *time.Time) ([]CategoryTotal, error) {
	query := `SELECT category, SUM(amount) AS total FROM expense
				WHERE user_id = $1
				  AND ($2::timestamptz IS NULL OR occurred_at >= $2)
				  AND ($3::timestamptz IS NULL OR occurred_at < $3)
				GROUP BY category ORDER BY total DESC`
	rows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query category totals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var total CategoryTotal
		if err := rows.Scan(&total.Category, &total.Total); err != nil {
			err := fmt.Errorf("could not scan category total: %w", err)
			log.Error(err)
			return nil, err
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over category totals: %w", err)
		log.Error(err)
		return nil, err
	}
	return totals, nil
}

func (r *RepoImpl) SumByCategoryBetween(ctx context.Context, userId int, category string, from *time.Time, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense
				WHERE user_id = $1 AND category = $2
				  AND ($3::timestamptz IS NULL OR occurred_at >= $3)
				  AND ($4::timestamptz IS NULL OR occurred_at < $4)`
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userId, category, from, to).Scan(&sum); err != nil {
		err := fmt.Errorf("could not sum expenses for category %s: %w", category, err)
		log.Error(err)
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *RepoImpl) queryExpenses(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over expense rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var expense Expense
	var description *string
	if err := row.Scan(
		&expense.ID,
		&expense.Category,
		&expense.PaymentMethod,
		&expense.SourceType,
		&expense.Amount,
		&expense.OccurredAt,
		&description,
	); err != nil {
		return Expense{}, err
	}
	if description != nil {
		expense.Description = *description
	}
	return expense, nil
}
