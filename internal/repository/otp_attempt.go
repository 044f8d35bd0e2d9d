package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wellness-compass/backend/internal/domain"
)

type otpAttemptRepository struct {
	db *sqlx.DB
}

func newOTPAttemptRepository(db *sqlx.DB) *otpAttemptRepository {
	return &otpAttemptRepository{
		db: db,
	}
}

// Create appends one ledger row. The table has no update or delete path in
// this code base.
func (r *otpAttemptRepository) Create(ctx context.Context, attempt *domain.OTPAttempt) error {
	const op = "repository.otpAttempt.Create"

	const query = `
    INSERT INTO otp_attempts (id, phone_number, ip_address, attempt_type, status, error_message)
    VALUES (:id, :phone_number, :ip_address, :attempt_type, :status, :error_message)
    `

	res, err := r.db.NamedExecContext(ctx, query, attempt)
	if err != nil {
		return fmt.Errorf("%s: insert otp attempt failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *otpAttemptRepository) ListRecentByPhone(ctx context.Context, phoneNumber string, limit int) ([]domain.OTPAttempt, error) {
	const op = "repository.otpAttempt.ListRecentByPhone"

	const query = `
    SELECT id, phone_number, ip_address, attempt_type, status, error_message, created_at
    FROM otp_attempts
    WHERE phone_number = $1
    ORDER BY created_at DESC
    LIMIT $2
    `

	var attempts []domain.OTPAttempt
	if err := r.db.SelectContext(ctx, &attempts, query, phoneNumber, limit); err != nil {
		return nil, fmt.Errorf("%s: select otp attempts failed: %w", op, err)
	}

	return attempts, nil
}
