package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
)

func testSurahs(n int) []entities.Surah {
	out := make([]entities.Surah, n)
	for i := range out {
		out[i] = entities.Surah{Number: i + 1, EnglishName: fmt.Sprintf("Surah-%d", i+1), NumberOfAyahs: 7}
	}
	return out
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name               string
		n, per, page       int
		start, end, wantPg int
	}{
		{"first page", 114, 10, 0, 0, 10, 0},
		{"last partial page", 114, 10, 11, 110, 114, 11},
		{"past the end clamps", 114, 10, 40, 110, 114, 11},
		{"negative clamps", 7, 5, -1, 0, 5, 0},
		{"empty", 0, 5, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, page := pageBounds(tt.n, tt.per, tt.page)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.wantPg, page)
		})
	}
}

func TestFormatSurahList(t *testing.T) {
	text, page := formatSurahList(testSurahs(114), 11)

	assert.Equal(t, 11, page)
	assert.Contains(t, text, "Surah-111")
	assert.Contains(t, text, "Surah-114")
	assert.NotContains(t, text, "Surah-110 ")
	assert.Equal(t, 4, strings.Count(text, "Ayahs"))
}

func TestFormatSurahPage(t *testing.T) {
	ayahs := make([]entities.Ayah, 7)
	for i := range ayahs {
		ayahs[i] = entities.Ayah{NumberInSurah: i + 1, Text: fmt.Sprintf("text-%d", i+1)}
	}
	view := &service.SurahView{SurahDetail: &entities.SurahDetail{
		Surah: entities.Surah{Number: 1, EnglishName: "Al-Faatiha", NumberOfAyahs: 7},
		Ayahs: ayahs,
	}}

	text, page := formatSurahPage(view, 1)

	assert.Equal(t, 1, page)
	assert.Contains(t, text, "1:6")
	assert.Contains(t, text, "text-7")
	assert.NotContains(t, text, "text-5")
}

func TestFormatAyahDetail_EscapesNote(t *testing.T) {
	detail := &service.AyahDetail{
		Ayah:  entities.Ayah{NumberInSurah: 255, Text: "ayah", Juz: 3, Page: 42},
		Surah: entities.Surah{Number: 2, EnglishName: "Al-Baqara"},
		Note:  "<b>mine</b> & yours",
	}

	text := formatAyahDetail(detail)

	assert.Contains(t, text, "2:255")
	assert.Contains(t, text, "Juz 3 · Page 42")
	assert.Contains(t, text, "&lt;b&gt;mine&lt;/b&gt; &amp; yours")
}

func TestFormatBookmarks(t *testing.T) {
	assert.Equal(t, msgNoBookmarks, formatBookmarks(nil))

	text := formatBookmarks([]entities.BookmarkedAyah{
		{SurahNumber: 1, AyahNumber: 1, SurahName: "Al-Faatiha", Text: "first"},
		{SurahNumber: 2, AyahNumber: 3, Text: "second"},
	})
	assert.Contains(t, text, "Al-Faatiha</b> · 1:1")
	assert.Contains(t, text, "Surah 2</b> · 2:3")
}

func TestFormatResult(t *testing.T) {
	ok := formatResult(&entities.RecitationResult{Correct: true, Similarity: 0.95})
	assert.Contains(t, ok, msgCorrectRecitation)
	assert.Contains(t, ok, "95%")

	miss := formatResult(&entities.RecitationResult{Similarity: 0.4, SurahNumber: 1, AyahNumber: 2, Expected: "expected"})
	assert.Contains(t, miss, msgIncorrectRecitation)
	assert.Contains(t, miss, "1:2")
	assert.Contains(t, miss, "expected")
}

func TestTruncate(t *testing.T) {
	short := "short"
	assert.Equal(t, short, truncate(short))

	long := strings.Repeat("line of text\n", 1000)
	got := truncate(long)
	assert.LessOrEqual(t, len([]rune(got)), maxMessageLength)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestUserMessage(t *testing.T) {
	text, expected := userMessage(fmt.Errorf("load: %w", quran.ErrInvalidSurah))
	assert.Equal(t, "Invalid Surah number.", text)
	assert.True(t, expected)

	text, expected = userMessage(fmt.Errorf("%w: %w", service.ErrAyahLoad, errors.New("timeout")))
	assert.Equal(t, "Failed to load Ayah details. Please try again.", text)
	assert.False(t, expected)

	text, expected = userMessage(errors.New("boom"))
	assert.Equal(t, msgInternalError, text)
	assert.False(t, expected)
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		args string
		want service.Selection
		ok   bool
	}{
		{"surah 2", service.Selection{Surah: 2}, true},
		{"Juz 30", service.Selection{Juz: 30}, true},
		{"  surah   114 ", service.Selection{Surah: 114}, true},
		{"surah", service.Selection{}, false},
		{"page 3", service.Selection{}, false},
		{"surah two", service.Selection{}, false},
		{"", service.Selection{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			got, ok := parseSelection(tt.args)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAyahArg(t *testing.T) {
	key, ok, err := parseAyahArg("2:255")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, quran.AyahKey{Surah: 2, Ayah: 255}, key)

	_, ok, _ = parseAyahArg("hello")
	assert.False(t, ok)

	_, ok, err = parseAyahArg("115:1")
	assert.True(t, ok)
	assert.ErrorIs(t, err, quran.ErrInvalidSurah)
}
