package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mushaf/internal/service"
)

// reciters offered by /reciter, as audio edition identifiers.
var reciters = []struct {
	ID   string
	Name string
}{
	{"ar.alafasy", "Mishary Alafasy"},
	{"ar.husary", "Mahmoud Khalil Al-Husary"},
	{"ar.minshawi", "Mohamed Siddiq Al-Minshawi"},
	{"ar.abdulbasitmurattal", "Abdul Basit (Murattal)"},
}

// buildPagerKeyboard builds pagination keyboard for lists.
func buildPagerKeyboard(page, totalPages int, prevData, nextData string) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", prevData))
	}

	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", nextData))
	}

	kb := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
	}

	return &kb
}

// buildAyahKeyboard builds bookmark, audio and neighbour buttons for an ayah.
func buildAyahKeyboard(d *service.AyahDetail) tgbotapi.InlineKeyboardMarkup {
	s, a := d.Surah.Number, d.Ayah.NumberInSurah

	bookmark := "🔖 Bookmark"
	if d.Bookmarked {
		bookmark = "✖️ Remove bookmark"
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(bookmark, buildBookmarkCallback(s, a)),
			tgbotapi.NewInlineKeyboardButtonData("🔊 Listen", buildAudioCallback(s, a)),
		),
	}

	var nav []tgbotapi.InlineKeyboardButton
	if d.Prev != nil {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildAyahCallback(d.Prev.Surah, d.Prev.Ayah)))
	}
	if d.Next != nil {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildAyahCallback(d.Next.Surah, d.Next.Ayah)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildPageKeyboard builds prev/next buttons for a mushaf page.
func buildPageKeyboard(v *service.PageView) *tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if v.Prev != nil {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildPageCallback(*v.Prev)))
	}
	if v.Next != nil {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildPageCallback(*v.Next)))
	}
	if len(row) == 0 {
		return nil
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(row)
	return &kb
}

// buildReciterKeyboard marks the current reciter with a check.
func buildReciterKeyboard(current string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reciters))
	for _, r := range reciters {
		label := r.Name
		if r.ID == current {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildReciterCallback(r.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
