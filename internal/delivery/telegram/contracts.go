package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureTelegramUser(ctx context.Context, telegramID int64, username string) (*entities.User, error)
}

type ReaderService interface {
	ListSurahs(ctx context.Context, search string) ([]entities.Surah, error)
	Surah(ctx context.Context, userID uuid.UUID, number int) (*service.SurahView, error)
	Page(ctx context.Context, number int) (*service.PageView, error)
	Recitation(ctx context.Context, userID uuid.UUID, surah, ayah int) (string, error)
}

type AyahService interface {
	Ayah(ctx context.Context, userID uuid.UUID, surah, ayah int) (*service.AyahDetail, error)
}

type NoteService interface {
	Save(ctx context.Context, userID uuid.UUID, surah, ayah int, content string) (*entities.Note, error)
	Delete(ctx context.Context, userID uuid.UUID, surah, ayah int) error
}

type BookmarkService interface {
	Toggle(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]entities.BookmarkedAyah, error)
}

type MemorisationService interface {
	Start(ctx context.Context, owner string, sel service.Selection) (*entities.Challenge, error)
	Check(ctx context.Context, owner, challengeID, answer string) (*entities.RecitationResult, error)
	Active(owner string) (*entities.Challenge, bool)
}

type SettingsService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error)
	UpdateReciter(ctx context.Context, userID uuid.UUID, reciter string) error
}
