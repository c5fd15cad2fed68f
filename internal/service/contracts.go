package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

// ContentProvider serves Quran text and audio.
type ContentProvider interface {
	ListSurahs(ctx context.Context) ([]entities.Surah, error)
	GetSurah(ctx context.Context, number int, edition string) (*entities.SurahDetail, error)
	GetAyah(ctx context.Context, surah, ayah int, edition string) (*entities.Ayah, error)
	GetAyahAudio(ctx context.Context, ref string, reciter string) (string, error)
	GetPage(ctx context.Context, number int, edition string) (*entities.Page, error)
	GetJuz(ctx context.Context, number int, edition string) (*entities.Juz, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	EnsureTelegramUser(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *entities.Session) error
	Get(ctx context.Context, token string) (*entities.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PasswordResetRepository interface {
	Create(ctx context.Context, reset *entities.PasswordReset) error
	GetForUpdate(ctx context.Context, token string) (*entities.PasswordReset, error)
	MarkUsed(ctx context.Context, token string, usedAt time.Time) error
	DeleteStale(ctx context.Context, now time.Time) (int64, error)
}

type NoteRepository interface {
	Get(ctx context.Context, userID uuid.UUID, surah, ayah int) (*entities.Note, error)
	Upsert(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, userID uuid.UUID, surah, ayah int) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error)
}

// NoteReader returns the note content of a user for an ayah, "" when absent.
type NoteReader interface {
	Get(ctx context.Context, userID uuid.UUID, surah, ayah int) (string, error)
}

type BookmarkRepository interface {
	Exists(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error)
	Add(ctx context.Context, b *entities.Bookmark) error
	Remove(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Bookmark, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, userID uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error)
	UpdateReciter(ctx context.Context, userID uuid.UUID, reciter string) error
	UpdateEdition(ctx context.Context, userID uuid.UUID, edition string) error
}

// AccountStore groups the repositories an account operation writes to.
type AccountStore struct {
	Users    UserRepository
	Sessions SessionRepository
	Resets   PasswordResetRepository
	Settings SettingsRepository
}

// Transactor runs fn with an AccountStore bound to a single transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store AccountStore) error) error
}

// ChallengeStore keeps active memorisation challenges.
type ChallengeStore interface {
	Store(c *entities.Challenge)
	Get(owner string) (*entities.Challenge, bool)
	Delete(owner string)
	PruneBefore(t time.Time) int
}

// Mailer delivers account emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}
