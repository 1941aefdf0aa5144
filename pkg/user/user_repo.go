package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	timezone := user.Settings.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	query := `INSERT INTO users (uid, username, display_name, email, timezone) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Email,
		timezone,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, email, timezone FROM users WHERE id = $1`
	var user User
	err := u.db.QueryRow(ctx, query, id).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Email,
			&user.Settings.Timezone,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Errorf("user with id %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, email, timezone FROM users WHERE uid = $1`
	var user User
	err := u.db.QueryRow(ctx, query, uid).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Email,
			&user.Settings.Timezone,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Infof("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, email = $2, timezone = $3 WHERE id = $4`
	result, err := u.db.Exec(ctx, query,
		user.DisplayName,
		user.Email,
		user.Settings.Timezone,
		userId,
	)
	if err != nil {
		return User{}, err
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := u.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of deleting user")
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	var exists bool
	if err := u.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return !exists, nil
}
