// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
)

// Error messages.
const (
	msgInternalError       = "Something went wrong. Please try again."
	msgUnknownCommand      = "Unknown command."
	msgUseSurah            = "Use: /surah N, where N is from 1 to 114."
	msgUseAyah             = "Use: /ayah S:A, for example /ayah 2:255."
	msgUseNote             = "Use: /note S:A text, for example /note 2:255 Ayat al-Kursi."
	msgUsePage             = "Use: /page N, where N is from 1 to 604."
	msgUseMemorise         = "Use: /memorise surah N or /memorise juz N."
	msgNoBookmarks         = "You have no bookmarks yet. Open an Ayah with /ayah S:A and tap the bookmark button."
	msgNoSurahsFound       = "No Surahs found."
	msgNoteSaved           = "Note saved."
	msgNoteDeleted         = "Note deleted."
	msgBookmarkAdded       = "Bookmarked"
	msgBookmarkRemoved     = "Bookmark removed"
	msgReciterSaved        = "Reciter updated."
	msgChooseReciter       = "Choose a reciter:"
	msgNoActiveChallenge   = "Send /memorise surah N or /memorise juz N to start a memorisation challenge."
	msgCorrectRecitation   = "✅ Correct! Well done."
	msgIncorrectRecitation = "❌ Not quite. The next Ayah is:"
)

const (
	surahsPerPage = 10
	ayahsPerPage  = 5
	// maxMessageLength is the Telegram limit for message text.
	maxMessageLength = 4096
)

const msgWelcome = `<b>السلام عليكم ورحمة الله وبركاته</b>

<b>Mushaf</b> helps you read the Quran, keep notes and bookmarks, and memorise it.

Type /help to see what you can do.`

const msgHelp = `<b>Commands</b>

/surahs: browse the list of Surahs
/surah N: read Surah N
/ayah S:A: open an Ayah with its note and bookmark
/note S:A text: save a note for an Ayah (empty text deletes it)
/bookmarks: your bookmarked Ayahs
/page N: read page N of the mushaf
/memorise surah N or /memorise juz N: recite the Ayah that follows
/reciter: choose the reciter for audio`

// errorMessages maps sentinel errors to the text shown in chat. Order matters.
var errorMessages = []struct {
	err  error
	text string
}{
	{service.ErrSelectionRequired, "Please enter either a Surah number or a Juz number."},
	{service.ErrNoAyahFound, "No Ayah found. Please try again."},
	{service.ErrChallengeNotFound, "Challenge not found. Please start a new one."},
	{service.ErrNoFollowingAyah, "This is the last Ayah of the Quran."},
	{service.ErrRecitationUnavailable, "Recitation not available for this Ayah"},
	{quran.ErrAudioUnavailable, "Audio not available for this Ayah."},
	{service.ErrNoteTooLong, "The note is too long."},
	{service.ErrNoteSave, "Failed to save the note. Please try again."},
	{quran.ErrInvalidSurah, "Invalid Surah number."},
	{quran.ErrInvalidAyah, "Invalid Ayah number."},
	{quran.ErrInvalidPage, "Invalid page number."},
	{quran.ErrInvalidJuz, "Invalid Juz number."},
	{quran.ErrInvalidEdition, "Unknown edition."},
	{service.ErrAyahLoad, "Failed to load Ayah details. Please try again."},
	{quran.ErrNotFound, "Not found."},
}

// userMessage returns the chat text for err and whether err is an expected one.
func userMessage(err error) (string, bool) {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.text, m.err != service.ErrNoteSave && m.err != service.ErrAyahLoad
		}
	}
	return msgInternalError, false
}

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, truncate(text))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, truncate(text))
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	return edit
}

// truncate cuts text at the last line break that fits the message limit.
func truncate(text string) string {
	if len([]rune(text)) <= maxMessageLength {
		return text
	}
	runes := []rune(text)[:maxMessageLength-1]
	cut := string(runes)
	if i := strings.LastIndex(cut, "\n"); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// totalPages returns the page count for n items.
func totalPages(n, perPage int) int {
	return (n + perPage - 1) / perPage
}

// pageBounds returns the slice bounds of page for n items, clamping page.
func pageBounds(n, perPage, page int) (start, end, clamped int) {
	total := totalPages(n, perPage)
	if page >= total {
		page = total - 1
	}
	if page < 0 {
		page = 0
	}
	start = page * perPage
	end = min(start+perPage, n)
	return start, end, page
}

func formatSurahLine(s entities.Surah) string {
	return fmt.Sprintf("<b>%d.</b> %s (%s) · %s · %d Ayahs",
		s.Number,
		esc(s.EnglishName),
		esc(s.EnglishNameTranslation),
		s.Name,
		s.NumberOfAyahs,
	)
}

// formatSurahList renders one page of the surah list.
func formatSurahList(surahs []entities.Surah, page int) (string, int) {
	start, end, page := pageBounds(len(surahs), surahsPerPage, page)

	var b strings.Builder
	b.WriteString("<b>Surahs</b>\n\n")
	for _, s := range surahs[start:end] {
		b.WriteString(formatSurahLine(s))
		b.WriteString("\n")
	}
	b.WriteString("\nOpen one with /surah N")
	return b.String(), page
}

func formatAyahLine(surah int, a entities.Ayah) string {
	return fmt.Sprintf("<b>%s</b>\n%s", quran.AyahRef(surah, a.NumberInSurah), a.Text)
}

// formatSurahPage renders one page of the ayahs of a surah.
func formatSurahPage(v *service.SurahView, page int) (string, int) {
	start, end, page := pageBounds(len(v.Ayahs), ayahsPerPage, page)

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%d. %s</b> %s\n", v.Number, esc(v.EnglishName), v.Name)
	fmt.Fprintf(&b, "<i>%s · %s · %d Ayahs</i>\n",
		esc(v.EnglishNameTranslation), esc(v.RevelationType), v.NumberOfAyahs)
	for _, a := range v.Ayahs[start:end] {
		b.WriteString("\n")
		b.WriteString(formatAyahLine(v.Number, a))
		b.WriteString("\n")
	}
	return b.String(), page
}

func formatAyahDetail(d *service.AyahDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> %s · %s\n\n",
		esc(d.Surah.EnglishName), d.Surah.Name, quran.AyahRef(d.Surah.Number, d.Ayah.NumberInSurah))
	b.WriteString(d.Ayah.Text)
	fmt.Fprintf(&b, "\n\n<i>Juz %d · Page %d</i>", d.Ayah.Juz, d.Ayah.Page)
	if d.Note != "" {
		b.WriteString("\n\n<b>Note:</b> ")
		b.WriteString(esc(d.Note))
	}
	return b.String()
}

func formatPage(v *service.PageView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Page %d</b> · Juz %s\n", v.Number, esc(v.Juz))
	for _, g := range v.Groups {
		fmt.Fprintf(&b, "\n<b>%s</b> %s\n", esc(g.SurahEnglishName), g.SurahName)
		for _, a := range g.Ayahs {
			fmt.Fprintf(&b, "%s (%d)\n", a.Text, a.NumberInSurah)
		}
	}
	return b.String()
}

func formatBookmarks(items []entities.BookmarkedAyah) string {
	if len(items) == 0 {
		return msgNoBookmarks
	}

	var b strings.Builder
	b.WriteString("<b>Bookmarks</b>\n")
	for _, it := range items {
		name := it.SurahName
		if name == "" {
			name = fmt.Sprintf("Surah %d", it.SurahNumber)
		}
		fmt.Fprintf(&b, "\n<b>%s</b> · %s\n%s\n",
			esc(name), quran.AyahRef(it.SurahNumber, it.AyahNumber), it.Text)
	}
	return b.String()
}

func formatChallenge(c *entities.Challenge) string {
	return fmt.Sprintf(
		"<b>%s</b> · %s\n\n%s\n\nReply with the Ayah that comes next.",
		esc(c.SurahName),
		quran.AyahRef(c.SurahNumber, c.AyahNumber),
		c.Text,
	)
}

func formatResult(r *entities.RecitationResult) string {
	if r.Correct {
		return fmt.Sprintf("%s (%.0f%%)", msgCorrectRecitation, r.Similarity*100)
	}
	return fmt.Sprintf("%s\n\n<b>%s</b>\n%s\n\nSimilarity: %.0f%%",
		msgIncorrectRecitation,
		quran.AyahRef(r.SurahNumber, r.AyahNumber),
		r.Expected,
		r.Similarity*100,
	)
}
