package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
)

// Preferences resolves the text edition and reciter of a user. Guests and
// users without stored settings get the configured defaults.
type Preferences struct {
	settings SettingsRepository
	edition  string
	reciter  string
	logger   *zap.Logger
}

func NewPreferences(settings SettingsRepository, edition, reciter string, logger *zap.Logger) *Preferences {
	if reciter == "" {
		reciter = entities.DefaultReciter
	}
	return &Preferences{
		settings: settings,
		edition:  edition,
		reciter:  reciter,
		logger:   logger,
	}
}

// Edition returns the text edition to request content in for userID.
func (p *Preferences) Edition(ctx context.Context, userID uuid.UUID) string {
	if s := p.load(ctx, userID); s != nil && s.Edition != "" {
		return s.Edition
	}
	return p.edition
}

// Reciter returns the audio edition to resolve recitations with for userID.
func (p *Preferences) Reciter(ctx context.Context, userID uuid.UUID) string {
	if s := p.load(ctx, userID); s != nil && s.Reciter != "" {
		return s.Reciter
	}
	return p.reciter
}

// load returns the stored settings, or nil when the defaults apply.
func (p *Preferences) load(ctx context.Context, userID uuid.UUID) *entities.UserSettings {
	if userID == uuid.Nil || p.settings == nil {
		return nil
	}

	settings, err := p.settings.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrSettingsNotFound) {
			p.logger.Warn("failed to load user settings, using defaults",
				zap.Stringer("user_id", userID),
				zap.Error(err),
			)
		}
		return nil
	}
	return settings
}
