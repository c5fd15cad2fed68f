package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database handle.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a user.
func (r *SettingsRepository) Create(ctx context.Context, userID uuid.UUID) error {
	query := `
		INSERT INTO user_settings (user_id, reciter, edition, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, entities.DefaultReciter, entities.DefaultEdition)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, reciter, edition, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.Reciter,
		&settings.Edition,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

// UpdateReciter updates only the reciter field.
func (r *SettingsRepository) UpdateReciter(ctx context.Context, userID uuid.UUID, reciter string) error {
	return r.updateField(ctx, "reciter", userID, reciter)
}

// UpdateEdition updates only the edition field.
func (r *SettingsRepository) UpdateEdition(ctx context.Context, userID uuid.UUID, edition string) error {
	return r.updateField(ctx, "edition", userID, edition)
}

// updateField updates one text column; column is never user input.
func (r *SettingsRepository) updateField(ctx context.Context, column string, userID uuid.UUID, value string) error {
	query := `UPDATE user_settings SET ` + column + ` = $2, updated_at = NOW() WHERE user_id = $1`

	cmdTag, err := r.db.Exec(ctx, query, userID, value)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
