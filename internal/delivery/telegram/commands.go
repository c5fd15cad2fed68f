package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
)

func (h *Handler) surahListHandler(search string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		search = strings.TrimSpace(search)

		surahs, err := h.Reader.ListSurahs(ctx, search)
		if err != nil {
			return err
		}
		if len(surahs) == 0 {
			h.send(newHTMLMessage(chatID, msgNoSurahsFound))
			return nil
		}

		// Search results are short enough for one message.
		if search != "" {
			lines := make([]string, 0, len(surahs))
			for _, s := range surahs {
				lines = append(lines, formatSurahLine(s))
			}
			h.send(newHTMLMessage(chatID, strings.Join(lines, "\n")))
			return nil
		}

		text, page := formatSurahList(surahs, 0)
		msg := newHTMLMessage(chatID, text)
		if kb := surahListKeyboard(page, len(surahs)); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

func surahListKeyboard(page, n int) *tgbotapi.InlineKeyboardMarkup {
	return buildPagerKeyboard(page, totalPages(n, surahsPerPage),
		buildSurahsCallback(page-1), buildSurahsCallback(page+1))
}

func (h *Handler) surahHandler(user *entities.User, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		number, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			h.send(newHTMLMessage(chatID, msgUseSurah))
			return nil
		}

		view, err := h.Reader.Surah(ctx, user.ID, number)
		if err != nil {
			return err
		}

		text, page := formatSurahPage(view, 0)
		msg := newHTMLMessage(chatID, text)
		if kb := surahKeyboard(view.Number, page, len(view.Ayahs)); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

func surahKeyboard(surah, page, n int) *tgbotapi.InlineKeyboardMarkup {
	return buildPagerKeyboard(page, totalPages(n, ayahsPerPage),
		buildSurahCallback(surah, page-1), buildSurahCallback(surah, page+1))
}

// parseAyahArg parses "S:A", reporting malformed input as ok=false.
func parseAyahArg(args string) (quran.AyahKey, bool, error) {
	key, err := quran.ParseAyahRef(args)
	if err != nil {
		if errors.Is(err, quran.ErrInvalidSurah) || errors.Is(err, quran.ErrInvalidAyah) {
			return quran.AyahKey{}, true, err
		}
		return quran.AyahKey{}, false, nil
	}
	return key, true, nil
}

func (h *Handler) ayahHandler(user *entities.User, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		key, ok, err := parseAyahArg(args)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUseAyah))
			return nil
		}
		if err != nil {
			return err
		}

		detail, err := h.Ayahs.Ayah(ctx, user.ID, key.Surah, key.Ayah)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, formatAyahDetail(detail))
		msg.ReplyMarkup = buildAyahKeyboard(detail)
		h.send(msg)
		return nil
	}
}

func (h *Handler) noteHandler(user *entities.User, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		ref, text, _ := strings.Cut(strings.TrimSpace(args), " ")
		key, ok, err := parseAyahArg(ref)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUseNote))
			return nil
		}
		if err != nil {
			return err
		}

		text = strings.TrimSpace(text)
		if text == "" {
			if err := h.Notes.Delete(ctx, user.ID, key.Surah, key.Ayah); err != nil {
				return err
			}
			h.send(newHTMLMessage(chatID, msgNoteDeleted))
			return nil
		}

		if _, err := h.Notes.Save(ctx, user.ID, key.Surah, key.Ayah, text); err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, msgNoteSaved))
		return nil
	}
}

func (h *Handler) bookmarksHandler(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		items, err := h.Bookmarks.List(ctx, user.ID)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, formatBookmarks(items)))
		return nil
	}
}

func (h *Handler) pageHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		number, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			h.send(newHTMLMessage(chatID, msgUsePage))
			return nil
		}

		view, err := h.Reader.Page(ctx, number)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, formatPage(view))
		if kb := buildPageKeyboard(view); kb != nil {
			msg.ReplyMarkup = kb
		}
		h.send(msg)
		return nil
	}
}

// parseSelection parses "surah N" or "juz N".
func parseSelection(args string) (service.Selection, bool) {
	fields := strings.Fields(strings.ToLower(args))
	if len(fields) != 2 {
		return service.Selection{}, false
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return service.Selection{}, false
	}

	switch fields[0] {
	case "surah":
		return service.Selection{Surah: n}, true
	case "juz":
		return service.Selection{Juz: n}, true
	default:
		return service.Selection{}, false
	}
}

// challengeOwner keys memorisation challenges of a chat user.
func challengeOwner(user *entities.User) string {
	return user.ID.String()
}

func (h *Handler) memoriseHandler(user *entities.User, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sel, ok := parseSelection(args)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUseMemorise))
			return nil
		}

		challenge, err := h.Memorisation.Start(ctx, challengeOwner(user), sel)
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, formatChallenge(challenge)))
		if challenge.Audio != "" {
			h.send(tgbotapi.NewAudio(chatID, tgbotapi.FileURL(challenge.Audio)))
		}
		return nil
	}
}

// answerHandler checks plain text against the active challenge.
func (h *Handler) answerHandler(user *entities.User, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		owner := challengeOwner(user)
		if _, ok := h.Memorisation.Active(owner); !ok {
			h.send(newHTMLMessage(chatID, msgNoActiveChallenge))
			return nil
		}

		result, err := h.Memorisation.Check(ctx, owner, "", text)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, formatResult(result)))
		return nil
	}
}

func (h *Handler) reciterHandler(user *entities.User) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.Settings.GetOrCreate(ctx, user.ID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, msgChooseReciter)
		msg.ReplyMarkup = buildReciterKeyboard(settings.Reciter)
		h.send(msg)
		return nil
	}
}
