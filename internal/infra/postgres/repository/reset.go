package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres"
)

var ErrResetNotFound = errors.New("password reset not found")

// PasswordResetRepository stores single-use password reset tokens.
type PasswordResetRepository struct {
	db postgres.DBTX
}

func NewPasswordResetRepository(db postgres.DBTX) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset *entities.PasswordReset) error {
	query := `
		INSERT INTO password_resets (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(ctx, query, reset.Token, reset.UserID, reset.CreatedAt, reset.ExpiresAt); err != nil {
		return fmt.Errorf("create password reset: %w", err)
	}

	return nil
}

// GetForUpdate loads a token and locks its row; call it inside a transaction.
func (r *PasswordResetRepository) GetForUpdate(ctx context.Context, token string) (*entities.PasswordReset, error) {
	query := `
		SELECT token, user_id, created_at, expires_at, used_at
		FROM password_resets
		WHERE token = $1
		FOR UPDATE
	`

	var reset entities.PasswordReset
	err := r.db.QueryRow(ctx, query, token).Scan(
		&reset.Token,
		&reset.UserID,
		&reset.CreatedAt,
		&reset.ExpiresAt,
		&reset.UsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResetNotFound
		}
		return nil, fmt.Errorf("get password reset: %w", err)
	}

	return &reset, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE password_resets SET used_at = $2 WHERE token = $1 AND used_at IS NULL`, token, usedAt)
	if err != nil {
		return fmt.Errorf("mark password reset used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResetNotFound
	}
	return nil
}

// DeleteStale removes expired or already redeemed tokens.
func (r *PasswordResetRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM password_resets WHERE expires_at <= $1 OR used_at IS NOT NULL`, now)
	if err != nil {
		return 0, fmt.Errorf("delete stale password resets: %w", err)
	}
	return tag.RowsAffected(), nil
}
