package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
	"github.com/aliskhannn/mushaf/internal/quran"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

func (s *SettingsService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

func (s *SettingsService) UpdateReciter(ctx context.Context, userID uuid.UUID, reciter string) error {
	if !quran.ValidEdition(reciter) {
		return quran.ErrInvalidEdition
	}
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateReciter(ctx, userID, reciter)
}

func (s *SettingsService) UpdateEdition(ctx context.Context, userID uuid.UUID, edition string) error {
	if !quran.ValidEdition(edition) {
		return quran.ErrInvalidEdition
	}
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repository.UpdateEdition(ctx, userID, edition)
}
