package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
	"github.com/aliskhannn/mushaf/internal/quran"
)

var ErrNoteSave = errors.New("failed to save note")

const maxNoteLength = 10000

var ErrNoteTooLong = errors.New("note is too long")

type NoteService struct {
	repository NoteRepository
}

func NewNoteService(repository NoteRepository) *NoteService {
	return &NoteService{repository: repository}
}

// Get returns the note content of the user for an ayah, or "" if there is none.
func (s *NoteService) Get(ctx context.Context, userID uuid.UUID, surah, ayah int) (string, error) {
	note, err := s.repository.Get(ctx, userID, surah, ayah)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return "", nil
		}
		return "", err
	}
	return note.Content, nil
}

// Save creates or replaces the note of the user for an ayah.
func (s *NoteService) Save(ctx context.Context, userID uuid.UUID, surah, ayah int, content string) (*entities.Note, error) {
	if err := validateAyahKey(surah, ayah); err != nil {
		return nil, err
	}
	if len(content) > maxNoteLength {
		return nil, ErrNoteTooLong
	}

	note := entities.NewNote(userID, surah, ayah, content)
	if err := s.repository.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoteSave, err)
	}
	return note, nil
}

// Delete removes the note; deleting a missing note is not an error.
func (s *NoteService) Delete(ctx context.Context, userID uuid.UUID, surah, ayah int) error {
	err := s.repository.Delete(ctx, userID, surah, ayah)
	if err != nil && !errors.Is(err, repository.ErrNoteNotFound) {
		return err
	}
	return nil
}

// List returns the notes of the user, most recently edited first.
func (s *NoteService) List(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error) {
	return s.repository.ListByUser(ctx, userID)
}

func validateAyahKey(surah, ayah int) error {
	if !quran.ValidSurah(surah) {
		return quran.ErrInvalidSurah
	}
	if ayah < 1 {
		return quran.ErrInvalidAyah
	}
	return nil
}
