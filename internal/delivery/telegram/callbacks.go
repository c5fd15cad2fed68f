package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mushaf/internal/quran"
)

// callbackResult is what a callback handler wants shown: an optional edit of
// the originating message and an optional notice on the button press.
type callbackResult struct {
	text   string
	kb     *tgbotapi.InlineKeyboardMarkup
	notice string
}

type callbackFunc func(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)

	var fn callbackFunc
	switch data.Action {
	case actionSurahs:
		fn = h.surahsCallback
	case actionSurah:
		fn = h.surahCallback
	case actionAyah:
		fn = h.ayahCallback
	case actionBookmark:
		fn = h.bookmarkCallback
	case actionAudio:
		fn = h.audioCallback
	case actionPage:
		fn = h.pageCallback
	case actionReciter:
		fn = h.reciterCallback
	default:
		h.answerCallback(cb, "")
		return
	}

	res, err := fn(ctx, cb, data)
	if err != nil {
		text, expected := userMessage(err)
		if !expected {
			h.logger.Error("handle callback",
				zap.String("data", cb.Data),
				zap.Int64("telegram_id", cb.From.ID),
				zap.Error(err),
			)
		}
		h.answerCallback(cb, text)
		return
	}
	if res == nil {
		h.answerCallback(cb, "")
		return
	}

	if res.text != "" && cb.Message != nil {
		edit := newHTMLEdit(cb.Message.Chat.ID, cb.Message.MessageID, res.text)
		if res.kb != nil {
			edit.ReplyMarkup = res.kb
		}
		h.send(edit)
	}

	h.answerCallback(cb, res.notice)
}

// answerCallback removes the "clock" on the pressed button.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	answer := tgbotapi.NewCallback(cb.ID, text)
	if _, err := h.bot.Request(answer); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func (h *Handler) surahsCallback(ctx context.Context, _ *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	p, ok := data.ints(1)
	if !ok {
		return nil, nil
	}

	surahs, err := h.Reader.ListSurahs(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(surahs) == 0 {
		return nil, nil
	}

	text, page := formatSurahList(surahs, p[0])
	return &callbackResult{text: text, kb: surahListKeyboard(page, len(surahs))}, nil
}

func (h *Handler) surahCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	p, ok := data.ints(2)
	if !ok {
		return nil, nil
	}

	user, err := h.ensureUser(ctx, cb.From)
	if err != nil {
		return nil, err
	}

	view, err := h.Reader.Surah(ctx, user.ID, p[0])
	if err != nil {
		return nil, err
	}

	text, page := formatSurahPage(view, p[1])
	return &callbackResult{text: text, kb: surahKeyboard(view.Number, page, len(view.Ayahs))}, nil
}

func (h *Handler) ayahCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	p, ok := data.ints(2)
	if !ok {
		return nil, nil
	}
	return h.renderAyah(ctx, cb, p[0], p[1], "")
}

func (h *Handler) renderAyah(ctx context.Context, cb *tgbotapi.CallbackQuery, surah, ayah int, notice string) (*callbackResult, error) {
	user, err := h.ensureUser(ctx, cb.From)
	if err != nil {
		return nil, err
	}

	detail, err := h.Ayahs.Ayah(ctx, user.ID, surah, ayah)
	if err != nil {
		return nil, err
	}

	kb := buildAyahKeyboard(detail)
	return &callbackResult{text: formatAyahDetail(detail), kb: &kb, notice: notice}, nil
}

func (h *Handler) bookmarkCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	p, ok := data.ints(2)
	if !ok {
		return nil, nil
	}

	user, err := h.ensureUser(ctx, cb.From)
	if err != nil {
		return nil, err
	}

	added, err := h.Bookmarks.Toggle(ctx, user.ID, p[0], p[1])
	if err != nil {
		return nil, err
	}

	notice := msgBookmarkRemoved
	if added {
		notice = msgBookmarkAdded
	}
	return h.renderAyah(ctx, cb, p[0], p[1], notice)
}

func (h *Handler) audioCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	p, ok := data.ints(2)
	if !ok || cb.Message == nil {
		return nil, nil
	}

	user, err := h.ensureUser(ctx, cb.From)
	if err != nil {
		return nil, err
	}

	url, err := h.Reader.Recitation(ctx, user.ID, p[0], p[1])
	if err != nil {
		return nil, err
	}

	audio := tgbotapi.NewAudio(cb.Message.Chat.ID, tgbotapi.FileURL(url))
	audio.Caption = quran.AyahRef(p[0], p[1])
	h.send(audio)
	return nil, nil
}

func (h *Handler) pageCallback(ctx context.Context, _ *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	p, ok := data.ints(1)
	if !ok {
		return nil, nil
	}

	view, err := h.Reader.Page(ctx, p[0])
	if err != nil {
		return nil, err
	}
	return &callbackResult{text: formatPage(view), kb: buildPageKeyboard(view)}, nil
}

func (h *Handler) reciterCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (*callbackResult, error) {
	if len(data.Params) != 1 {
		return nil, nil
	}
	reciter := data.Params[0]

	user, err := h.ensureUser(ctx, cb.From)
	if err != nil {
		return nil, err
	}

	if err := h.Settings.UpdateReciter(ctx, user.ID, reciter); err != nil {
		return nil, err
	}

	kb := buildReciterKeyboard(reciter)
	return &callbackResult{text: msgChooseReciter, kb: &kb, notice: msgReciterSaved}, nil
}
