package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
)

// UnknownJuz is reported for a page without ayahs.
const UnknownJuz = "Unknown"

var ErrRecitationUnavailable = errors.New("recitation not available")

// SurahView is a surah with links to its neighbours.
type SurahView struct {
	*entities.SurahDetail
	Prev *int `json:"prev"`
	Next *int `json:"next"`
}

// PageGroup is a run of consecutive ayahs of one surah on a page.
type PageGroup struct {
	SurahNumber      int             `json:"surah_number"`
	SurahName        string          `json:"surah_name"`
	SurahEnglishName string          `json:"surah_english_name"`
	Ayahs            []entities.Ayah `json:"ayahs"`
}

// PageView is a mushaf page split by surah.
type PageView struct {
	Number int         `json:"number"`
	Juz    string      `json:"juz"`
	Groups []PageGroup `json:"groups"`
	Prev   *int        `json:"prev"`
	Next   *int        `json:"next"`
}

// ReaderService serves the surah browser and the page reader.
type ReaderService struct {
	content ContentProvider
	prefs   *Preferences
}

func NewReaderService(content ContentProvider, prefs *Preferences) *ReaderService {
	return &ReaderService{
		content: content,
		prefs:   prefs,
	}
}

// ListSurahs returns surahs matching search by number, English name or
// Arabic name. An empty search returns all of them.
func (s *ReaderService) ListSurahs(ctx context.Context, search string) ([]entities.Surah, error) {
	surahs, err := s.content.ListSurahs(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return surahs, nil
	}

	filtered := make([]entities.Surah, 0, len(surahs))
	for _, surah := range surahs {
		if matchSurah(surah, term) {
			filtered = append(filtered, surah)
		}
	}
	return filtered, nil
}

func matchSurah(surah entities.Surah, term string) bool {
	return strings.Contains(strconv.Itoa(surah.Number), term) ||
		strings.Contains(strings.ToLower(surah.EnglishName), term) ||
		strings.Contains(surah.Name, term)
}

// Surah returns a surah with its ayahs in the edition chosen by the user.
// uuid.Nil selects the default edition.
func (s *ReaderService) Surah(ctx context.Context, userID uuid.UUID, number int) (*SurahView, error) {
	detail, err := s.content.GetSurah(ctx, number, s.prefs.Edition(ctx, userID))
	if err != nil {
		return nil, err
	}

	view := &SurahView{SurahDetail: detail}
	if prev, ok := quran.PrevSurah(number); ok {
		view.Prev = &prev
	}
	if next, ok := quran.NextSurah(number); ok {
		view.Next = &next
	}
	return view, nil
}

// Page returns a mushaf page grouped by surah.
func (s *ReaderService) Page(ctx context.Context, number int) (*PageView, error) {
	page, err := s.content.GetPage(ctx, number, s.prefs.Edition(ctx, uuid.Nil))
	if err != nil {
		return nil, err
	}

	view := &PageView{
		Number: number,
		Juz:    UnknownJuz,
		Groups: groupBySurah(page.Ayahs),
	}
	if len(page.Ayahs) > 0 {
		view.Juz = strconv.Itoa(page.Ayahs[0].Juz)
	}
	if prev, ok := quran.PrevPage(number); ok {
		view.Prev = &prev
	}
	if next, ok := quran.NextPage(number); ok {
		view.Next = &next
	}
	return view, nil
}

// groupBySurah starts a new group every time the surah changes.
func groupBySurah(ayahs []entities.Ayah) []PageGroup {
	groups := make([]PageGroup, 0, 2)
	for _, a := range ayahs {
		n := a.SurahNumber()
		if len(groups) == 0 || groups[len(groups)-1].SurahNumber != n {
			g := PageGroup{SurahNumber: n}
			if a.Surah != nil {
				g.SurahName = a.Surah.Name
				g.SurahEnglishName = a.Surah.EnglishName
			}
			groups = append(groups, g)
		}
		last := &groups[len(groups)-1]
		last.Ayahs = append(last.Ayahs, a)
	}
	return groups
}

// Recitation resolves the audio URL of an ayah for the reciter chosen by the
// user. uuid.Nil selects the default reciter.
func (s *ReaderService) Recitation(ctx context.Context, userID uuid.UUID, surah, ayah int) (string, error) {
	if !quran.ValidSurah(surah) {
		return "", quran.ErrInvalidSurah
	}
	if ayah < 1 {
		return "", quran.ErrInvalidAyah
	}

	reciter := s.prefs.Reciter(ctx, userID)

	url, err := s.content.GetAyahAudio(ctx, quran.AyahRef(surah, ayah), reciter)
	if err != nil {
		if errors.Is(err, quran.ErrAudioUnavailable) || errors.Is(err, quran.ErrNotFound) {
			return "", fmt.Errorf("%w: %w", ErrRecitationUnavailable, err)
		}
		return "", err
	}
	return url, nil
}
