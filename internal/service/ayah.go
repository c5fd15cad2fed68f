package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/quran"
)

var ErrAyahLoad = errors.New("failed to load ayah details")

// AyahDetail is everything the ayah page shows.
type AyahDetail struct {
	Ayah       entities.Ayah  `json:"ayah"`
	Surah      entities.Surah `json:"surah"`
	Note       string         `json:"note"`
	Bookmarked bool           `json:"bookmarked"`
	Prev       *quran.AyahKey `json:"prev"`
	Next       *quran.AyahKey `json:"next"`
}

type AyahService struct {
	content   ContentProvider
	notes     NoteReader
	bookmarks BookmarkRepository
	prefs     *Preferences
}

func NewAyahService(
	content ContentProvider,
	notes NoteReader,
	bookmarks BookmarkRepository,
	prefs *Preferences,
) *AyahService {
	return &AyahService{
		content:   content,
		notes:     notes,
		bookmarks: bookmarks,
		prefs:     prefs,
	}
}

// Ayah loads an ayah with the user's note and bookmark and its neighbours.
func (s *AyahService) Ayah(ctx context.Context, userID uuid.UUID, surah, ayah int) (*AyahDetail, error) {
	if err := validateAyahKey(surah, ayah); err != nil {
		return nil, err
	}

	var (
		a      *entities.Ayah
		detail *entities.SurahDetail
	)
	edition := s.prefs.Edition(ctx, userID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.content.GetAyah(gctx, surah, ayah, edition)
		return err
	})
	g.Go(func() error {
		var err error
		detail, err = s.content.GetSurah(gctx, surah, edition)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAyahLoad, err)
	}

	if ayah > detail.NumberOfAyahs {
		return nil, quran.ErrInvalidAyah
	}

	result := &AyahDetail{Ayah: *a, Surah: detail.Surah}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Note, err = s.notes.Get(gctx, userID, surah, ayah)
		return err
	})
	g.Go(func() error {
		var err error
		result.Bookmarked, err = s.bookmarks.Exists(gctx, userID, surah, ayah)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAyahLoad, err)
	}

	prev, ok, err := quran.PrevAyah(surah, ayah, func(n int) (int, error) {
		prevSurah, err := s.content.GetSurah(ctx, n, edition)
		if err != nil {
			return 0, err
		}
		return prevSurah.NumberOfAyahs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAyahLoad, err)
	}
	if ok {
		result.Prev = &prev
	}

	if next, ok := quran.NextAyah(surah, ayah, detail.NumberOfAyahs); ok {
		result.Next = &next
	}

	return result, nil
}
