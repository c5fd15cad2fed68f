package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
)

func newReader(content *fakeContent, settings *fakeSettings) *ReaderService {
	var repo SettingsRepository
	if settings != nil {
		repo = settings
	}
	return NewReaderService(content, defaultPrefs(repo))
}

func TestReaderService_ListSurahs(t *testing.T) {
	content := newFakeContent(7, 286, 200, 176, 120, 165, 206, 75, 129, 109, 123, 111)
	content.surahs[0].EnglishName = "Al-Faatiha"
	content.surahs[0].Name = "سُورَةُ ٱلْفَاتِحَةِ"
	r := newReader(content, nil)
	ctx := context.Background()

	all, err := r.ListSurahs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 12)

	byName, err := r.ListSurahs(ctx, "FAATI")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, 1, byName[0].Number)

	byArabic, err := r.ListSurahs(ctx, "ٱلْفَاتِحَةِ")
	require.NoError(t, err)
	require.Len(t, byArabic, 1)

	// "1" matches 1, 10, 11 and 12.
	byNumber, err := r.ListSurahs(ctx, "1")
	require.NoError(t, err)
	var numbers []int
	for _, s := range byNumber {
		numbers = append(numbers, s.Number)
	}
	assert.Equal(t, []int{1, 10, 11, 12}, numbers)

	none, err := r.ListSurahs(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReaderService_SurahNeighbours(t *testing.T) {
	counts := make([]int, quran.TotalSurahs)
	for i := range counts {
		counts[i] = 3
	}
	r := newReader(newFakeContent(counts...), nil)
	ctx := context.Background()

	first, err := r.Surah(ctx, uuid.Nil, 1)
	require.NoError(t, err)
	assert.Nil(t, first.Prev)
	require.NotNil(t, first.Next)
	assert.Equal(t, 2, *first.Next)
	assert.Len(t, first.Ayahs, 3)

	last, err := r.Surah(ctx, uuid.Nil, quran.TotalSurahs)
	require.NoError(t, err)
	require.NotNil(t, last.Prev)
	assert.Equal(t, 113, *last.Prev)
	assert.Nil(t, last.Next)
}

func TestReaderService_PageGroupsBySurah(t *testing.T) {
	content := newFakeContent(7, 286)
	fatiha := content.surahs[0]
	baqara := content.surahs[1]
	content.pages[1] = []entities.Ayah{
		{NumberInSurah: 6, Juz: 1, Surah: &fatiha},
		{NumberInSurah: 7, Juz: 1, Surah: &fatiha},
		{NumberInSurah: 1, Juz: 1, Surah: &baqara},
	}
	r := newReader(content, nil)

	page, err := r.Page(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "1", page.Juz)
	assert.Nil(t, page.Prev)
	require.NotNil(t, page.Next)
	assert.Equal(t, 2, *page.Next)

	require.Len(t, page.Groups, 2)
	assert.Equal(t, 1, page.Groups[0].SurahNumber)
	assert.Equal(t, fatiha.EnglishName, page.Groups[0].SurahEnglishName)
	assert.Len(t, page.Groups[0].Ayahs, 2)
	assert.Equal(t, 2, page.Groups[1].SurahNumber)
	assert.Len(t, page.Groups[1].Ayahs, 1)
}

func TestReaderService_EmptyPage(t *testing.T) {
	r := newReader(newFakeContent(7), nil)

	page, err := r.Page(context.Background(), quran.TotalPages)
	require.NoError(t, err)
	assert.Equal(t, UnknownJuz, page.Juz)
	assert.Empty(t, page.Groups)
	assert.Nil(t, page.Next)
}

func TestReaderService_Recitation(t *testing.T) {
	content := newFakeContent(7)
	content.audio["1:1"] = "https://cdn.example/1.mp3"
	settings := newFakeSettings()
	r := newReader(content, settings)
	ctx := context.Background()

	url, err := r.Recitation(ctx, uuid.Nil, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/1.mp3", url)
	assert.Equal(t, entities.DefaultReciter, content.lastEdAyah)

	userID := uuid.New()
	require.NoError(t, settings.Create(ctx, userID))
	require.NoError(t, settings.UpdateReciter(ctx, userID, "ar.husary"))

	_, err = r.Recitation(ctx, userID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "ar.husary", content.lastEdAyah)

	_, err = r.Recitation(ctx, uuid.Nil, 1, 2)
	assert.ErrorIs(t, err, ErrRecitationUnavailable)

	_, err = r.Recitation(ctx, uuid.Nil, 0, 1)
	assert.ErrorIs(t, err, quran.ErrInvalidSurah)
}

func TestReaderService_SurahInUserEdition(t *testing.T) {
	content := newFakeContent(7)
	settings := newFakeSettings()
	r := newReader(content, settings)
	ctx := context.Background()

	_, err := r.Surah(ctx, uuid.Nil, 1)
	require.NoError(t, err)

	userID := userWithEdition(t, settings, "en.sahih")
	_, err = r.Surah(ctx, userID, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{entities.DefaultEdition, "en.sahih"}, content.requestedEditions())
}
