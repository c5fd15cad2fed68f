package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

// Services bundles what the bot calls into.
type Services struct {
	Users        UserService
	Reader       ReaderService
	Ayahs        AyahService
	Notes        NoteService
	Bookmarks    BookmarkService
	Memorisation MemorisationService
	Settings     SettingsService
}

type Handler struct {
	bot    BotAPI
	logger *zap.Logger
	Services
}

func NewHandler(bot BotAPI, logger *zap.Logger, services Services) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		Services: services,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("telegram_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	user, err := h.ensureUser(ctx, update.Message.From)
	if err != nil {
		h.sendError(chatID, msgInternalError)
		return
	}

	if !update.Message.IsCommand() {
		_ = h.withErrorHandling(h.answerHandler(user, update.Message.Text))(ctx, chatID)
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		h.send(newHTMLMessage(chatID, msgWelcome))
	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))
	case "surahs":
		_ = h.withErrorHandling(h.surahListHandler(args))(ctx, chatID)
	case "surah":
		_ = h.withErrorHandling(h.surahHandler(user, args))(ctx, chatID)
	case "ayah":
		_ = h.withErrorHandling(h.ayahHandler(user, args))(ctx, chatID)
	case "note":
		_ = h.withErrorHandling(h.noteHandler(user, args))(ctx, chatID)
	case "bookmarks":
		_ = h.withErrorHandling(h.bookmarksHandler(user))(ctx, chatID)
	case "page":
		_ = h.withErrorHandling(h.pageHandler(args))(ctx, chatID)
	case "memorise", "memorize":
		_ = h.withErrorHandling(h.memoriseHandler(user, args))(ctx, chatID)
	case "reciter":
		_ = h.withErrorHandling(h.reciterHandler(user))(ctx, chatID)
	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand+"\n\n"+msgHelp))
	}
}

func (h *Handler) ensureUser(ctx context.Context, from *tgbotapi.User) (*entities.User, error) {
	user, err := h.Users.EnsureTelegramUser(ctx, from.ID, from.UserName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("telegram_id", from.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return user, nil
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
