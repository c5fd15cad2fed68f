package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/service"
)

type Reader interface {
	ListSurahs(ctx context.Context, search string) ([]entities.Surah, error)
	Surah(ctx context.Context, userID uuid.UUID, number int) (*service.SurahView, error)
	Page(ctx context.Context, number int) (*service.PageView, error)
	Recitation(ctx context.Context, userID uuid.UUID, surah, ayah int) (string, error)
}

type AyahReader interface {
	Ayah(ctx context.Context, userID uuid.UUID, surah, ayah int) (*service.AyahDetail, error)
}

type NoteManager interface {
	Save(ctx context.Context, userID uuid.UUID, surah, ayah int, content string) (*entities.Note, error)
	Delete(ctx context.Context, userID uuid.UUID, surah, ayah int) error
	List(ctx context.Context, userID uuid.UUID) ([]*entities.Note, error)
}

type BookmarkManager interface {
	Toggle(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error)
	Remove(ctx context.Context, userID uuid.UUID, surah, ayah int) error
	List(ctx context.Context, userID uuid.UUID) ([]entities.BookmarkedAyah, error)
}

type Memoriser interface {
	Start(ctx context.Context, owner string, sel service.Selection) (*entities.Challenge, error)
	Check(ctx context.Context, owner, challengeID, answer string) (*entities.RecitationResult, error)
}

type Authenticator interface {
	Register(ctx context.Context, email, password, username string) (*entities.User, *entities.Session, error)
	Login(ctx context.Context, email, password string) (*entities.User, *entities.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*entities.User, error)
	RequestPasswordReset(ctx context.Context, email, redirectURL string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, password, confirm string) error
}

type SettingsManager interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error)
	UpdateReciter(ctx context.Context, userID uuid.UUID, reciter string) error
	UpdateEdition(ctx context.Context, userID uuid.UUID, edition string) error
}
