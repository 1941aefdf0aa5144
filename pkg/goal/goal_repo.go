package goal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error)
	Update(ctx context.Context, userId int, goal SavingsGoal) (bool, error)
	Delete(ctx context.Context, userId int, goalId int) (bool, error)
	GetAll(ctx context.Context, userId int) ([]SavingsGoal, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewGoalRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error) {
	query := `INSERT INTO savings_goal (user_id, name, target_amount, current_amount, target_date)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := r.db.QueryRow(ctx, query,
		userId,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
	).Scan(&goal.ID)
	if err != nil {
		err := fmt.Errorf("could not store savings goal: %w", err)
		log.Error(err)
		return SavingsGoal{}, err
	}
	return goal, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, goal SavingsGoal) (bool, error) {
	query := `UPDATE savings_goal SET name = $1, target_amount = $2, current_amount = $3, target_date = $4
				WHERE id = $5 AND user_id = $6`

	result, err := r.db.Exec(ctx, query,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update savings goal: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, goalId int) (bool, error) {
	query := `DELETE FROM savings_goal WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, goalId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete savings goal: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]SavingsGoal, error) {
	query := `SELECT id, name, target_amount, current_amount, target_date FROM savings_goal
				WHERE user_id = $1 ORDER BY target_date`

	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not list savings goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var goals []SavingsGoal
	for rows.Next() {
		var goal SavingsGoal
		if err := rows.Scan(&goal.ID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.TargetDate); err != nil {
			err := fmt.Errorf("could not scan savings goal: %w", err)
			log.Error(err)
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}
