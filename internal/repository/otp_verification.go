package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/wellness-compass/backend/internal/domain"
)

type otpVerificationRepository struct {
	db *sqlx.DB
}

func newOTPVerificationRepository(db *sqlx.DB) *otpVerificationRepository {
	return &otpVerificationRepository{
		db: db,
	}
}

func (r *otpVerificationRepository) Upsert(ctx context.Context, verification *domain.OTPVerification) error {
	const op = "repository.otpVerification.Upsert"

	// phone_number carries a unique constraint, so concurrent sends resolve
	// to a single row with last-write-wins semantics.
	const query = `
    INSERT INTO otp_verifications (id, phone_number, provider_reference, status, attempts_count, max_attempts, expires_at)
    VALUES (:id, :phone_number, :provider_reference, :status, :attempts_count, :max_attempts, :expires_at)
    ON CONFLICT (phone_number) DO UPDATE SET
        provider_reference = EXCLUDED.provider_reference,
        status             = EXCLUDED.status,
        attempts_count     = EXCLUDED.attempts_count,
        max_attempts       = EXCLUDED.max_attempts,
        expires_at         = EXCLUDED.expires_at,
        verified_at        = NULL,
        updated_at         = now()
    `

	res, err := r.db.NamedExecContext(ctx, query, verification)
	if err != nil {
		return fmt.Errorf("%s: upsert otp verification failed: %w", op, err)
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

func (r *otpVerificationRepository) GetPendingByPhone(ctx context.Context, phoneNumber string) (*domain.OTPVerification, error) {
	const op = "repository.otpVerification.GetPendingByPhone"

	const query = `
    SELECT id, phone_number, provider_reference, status, attempts_count, max_attempts, expires_at, verified_at, created_at, updated_at
    FROM otp_verifications
    WHERE phone_number = $1 AND status = $2
    `

	var verification domain.OTPVerification
	if err := r.db.GetContext(ctx, &verification, query, phoneNumber, domain.VerificationStatusPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select otp verification failed: %w", op, err)
	}

	return &verification, nil
}

func (r *otpVerificationRepository) UpdateStatus(ctx context.Context, phoneNumber string, status domain.VerificationStatus, verifiedAt *time.Time) error {
	const op = "repository.otpVerification.UpdateStatus"

	const query = `
    UPDATE otp_verifications
    SET status = $1, verified_at = COALESCE($2, verified_at), updated_at = now()
    WHERE phone_number = $3
    `

	res, err := r.db.ExecContext(ctx, query, status, verifiedAt, phoneNumber)
	if err != nil {
		return fmt.Errorf("%s: update otp verification failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *otpVerificationRepository) IncrementAttempts(ctx context.Context, phoneNumber string) error {
	const op = "repository.otpVerification.IncrementAttempts"

	const query = `
    UPDATE otp_verifications
    SET attempts_count = attempts_count + 1, updated_at = now()
    WHERE phone_number = $1
    `

	res, err := r.db.ExecContext(ctx, query, phoneNumber)
	if err != nil {
		return fmt.Errorf("%s: increment attempts failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
