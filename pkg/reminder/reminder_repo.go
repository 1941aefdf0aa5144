package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, reminder Reminder) (Reminder, error)
	Update(ctx context.Context, userId int, reminder Reminder) (bool, error)
	Delete(ctx context.Context, userId int, reminderId int) (bool, error)
	GetAll(ctx context.Context, userId int) ([]Reminder, error)
	FindIncomplete(ctx context.Context, userId int) ([]Reminder, error)
	Complete(ctx context.Context, userId int, reminderId int) (bool, error)
	FindDue(ctx context.Context, now time.Time) ([]DueReminder, error)
	MarkSent(ctx context.Context, reminderId int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewReminderRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, reminder Reminder) (Reminder, error) {
	query := `INSERT INTO reminder (user_id, title, message, reminder_date)
				VALUES ($1, $2, $3, $4) RETURNING id`

	var message *string
	if reminder.Message != "" {
		message = &reminder.Message
	}
	err := r.db.QueryRow(ctx, query,
		userId,
		reminder.Title,
		message,
		reminder.ReminderDate,
	).Scan(&reminder.ID)
	if err != nil {
		err := fmt.Errorf("could not store reminder: %w", err)
		log.Error(err)
		return Reminder{}, err
	}
	return reminder, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, reminder Reminder) (bool, error) {
	query := `UPDATE reminder SET title = $1, message = $2, reminder_date = $3, is_completed = $4
				WHERE id = $5 AND user_id = $6`

	var message *string
	if reminder.Message != "" {
		message = &reminder.Message
	}
	result, err := r.db.Exec(ctx, query,
		reminder.Title,
		message,
		reminder.ReminderDate,
		reminder.IsCompleted,
		reminder.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update reminder: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, reminderId int) (bool, error) {
	query := `DELETE FROM reminder WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, reminderId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete reminder: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Reminder, error) {
	query := `SELECT id, title, message, reminder_date, is_completed, email_sent FROM reminder
				WHERE user_id = $1 ORDER BY reminder_date`
	return r.queryReminders(ctx, query, userId)
}

func (r *RepoImpl) FindIncomplete(ctx context.Context, userId int) ([]Reminder, error) {
	query := `SELECT id, title, message, reminder_date, is_completed, email_sent FROM reminder
				WHERE user_id = $1 AND NOT is_completed ORDER BY reminder_date`
	return r.queryReminders(ctx, query, userId)
}

func (r *RepoImpl) Complete(ctx context.Context, userId int, reminderId int) (bool, error) {
	query := `UPDATE reminder SET is_completed = TRUE WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, reminderId, userId)
	if err != nil {
		err := fmt.Errorf("could not complete reminder: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// FindDue crosses user boundaries on purpose: the dispatcher delivers for
// every account in one pass.
func (r *RepoImpl) FindDue(ctx context.Context, now time.Time) ([]DueReminder, error) {
	query := `SELECT r.id, r.title, r.message, r.reminder_date, r.is_completed, r.email_sent,
					 r.user_id, COALESCE(u.email, '')
				FROM reminder r
				JOIN users u ON u.id = r.user_id
				WHERE r.reminder_date <= $1 AND NOT r.is_completed AND NOT r.email_sent
				ORDER BY r.reminder_date`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		err := fmt.Errorf("could not find due reminders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var due []DueReminder
	for rows.Next() {
		var d DueReminder
		var message *string
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&message,
			&d.ReminderDate,
			&d.IsCompleted,
			&d.EmailSent,
			&d.UserId,
			&d.Email,
		); err != nil {
			err := fmt.Errorf("could not scan due reminder: %w", err)
			log.Error(err)
			return nil, err
		}
		if message != nil {
			d.Message = *message
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// MarkSent flips the flag only when it is still unset, so two dispatchers
// racing on the same reminder record a single delivery.
func (r *RepoImpl) MarkSent(ctx context.Context, reminderId int) (bool, error) {
	query := `UPDATE reminder SET email_sent = TRUE WHERE id = $1 AND NOT email_sent`
	result, err := r.db.Exec(ctx, query, reminderId)
	if err != nil {
		err := fmt.Errorf("could not mark reminder as sent: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepoImpl) queryReminders(ctx context.Context, query string, args ...any) ([]Reminder, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not list reminders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			err := fmt.Errorf("could not scan reminder: %w", err)
			log.Error(err)
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func scanReminder(row pgx.Row) (Reminder, error) {
	var reminder Reminder
	var message *string
	if err := row.Scan(
		&reminder.ID,
		&reminder.Title,
		&message,
		&reminder.ReminderDate,
		&reminder.IsCompleted,
		&reminder.EmailSent,
	); err != nil {
		return Reminder{}, err
	}
	if message != nil {
		reminder.Message = *message
	}
	return reminder, nil
}
