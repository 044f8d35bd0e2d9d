package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/wellness-compass/backend/internal/db"
	"github.com/wellness-compass/backend/internal/domain"
)

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "repository.user.Create"

	const query = `
	INSERT INTO users (id, phone_number, role, account_status)
	VALUES ($1, $2, $3, $4)
	`

	result, err := r.db.ExecContext(ctx, query, user.ID, user.PhoneNumber, user.Role, user.AccountStatus)
	if err != nil {
		//nolint:errorlint
		if pqError, ok := err.(*pq.Error); ok && string(pqError.Code) == db.UniqueViolation {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert user failed: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected failed: %w", op, err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	const op = "repository.user.GetByPhone"

	const query = `
	SELECT id, phone_number, role, account_status, created_at, updated_at, deleted_at
	FROM users
	WHERE phone_number = $1 AND deleted_at IS NULL
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, phoneNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by phone failed: %w", op, err)
	}

	return &user, nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "repository.user.GetOneByID"

	const query = `
	SELECT id, phone_number, role, account_status, created_at, updated_at, deleted_at
	FROM users
	WHERE id = $1 AND deleted_at IS NULL
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select user by id failed: %w", op, err)
	}

	return &user, nil
}
