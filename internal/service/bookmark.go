package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
)

// maxParallelFetches bounds concurrent requests to the content API.
const maxParallelFetches = 5

type BookmarkService struct {
	repository BookmarkRepository
	content    ContentProvider
	prefs      *Preferences
	logger     *zap.Logger
}

func NewBookmarkService(
	repository BookmarkRepository,
	content ContentProvider,
	prefs *Preferences,
	logger *zap.Logger,
) *BookmarkService {
	return &BookmarkService{
		repository: repository,
		content:    content,
		prefs:      prefs,
		logger:     logger,
	}
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error) {
	return s.repository.Exists(ctx, userID, surah, ayah)
}

// Add bookmarks an ayah. Adding twice keeps a single bookmark.
func (s *BookmarkService) Add(ctx context.Context, userID uuid.UUID, surah, ayah int) error {
	if err := validateAyahKey(surah, ayah); err != nil {
		return err
	}
	return s.repository.Add(ctx, entities.NewBookmark(userID, surah, ayah))
}

// Remove deletes a bookmark if present.
func (s *BookmarkService) Remove(ctx context.Context, userID uuid.UUID, surah, ayah int) error {
	_, err := s.repository.Remove(ctx, userID, surah, ayah)
	return err
}

// Toggle flips the bookmark state and returns the new one.
func (s *BookmarkService) Toggle(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error) {
	if err := validateAyahKey(surah, ayah); err != nil {
		return false, err
	}

	removed, err := s.repository.Remove(ctx, userID, surah, ayah)
	if err != nil {
		return false, fmt.Errorf("toggle bookmark: %w", err)
	}
	if removed {
		return false, nil
	}

	if err := s.repository.Add(ctx, entities.NewBookmark(userID, surah, ayah)); err != nil {
		return false, fmt.Errorf("toggle bookmark: %w", err)
	}
	return true, nil
}

// List returns the bookmarks of the user with their ayah text and surah name.
func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) ([]entities.BookmarkedAyah, error) {
	bookmarks, err := s.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]entities.BookmarkedAyah, len(bookmarks))
	if len(bookmarks) == 0 {
		return result, nil
	}

	names := s.surahNames(ctx)
	edition := s.prefs.Edition(ctx, userID)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)

	for i, b := range bookmarks {
		result[i] = entities.BookmarkedAyah{
			SurahNumber: b.SurahNumber,
			AyahNumber:  b.AyahNumber,
			SurahName:   names[b.SurahNumber],
		}

		g.Go(func() error {
			ayah, err := s.content.GetAyah(gctx, b.SurahNumber, b.AyahNumber, edition)
			if err != nil {
				return err
			}
			result[i].Text = ayah.Text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load bookmarked ayahs: %w", err)
	}
	return result, nil
}

// surahNames maps surah numbers to English names. On failure the map is
// empty and the listing goes on without names.
func (s *BookmarkService) surahNames(ctx context.Context) map[int]string {
	names := make(map[int]string)

	surahs, err := s.content.ListSurahs(ctx)
	if err != nil {
		s.logger.Warn("failed to load surah names for bookmarks", zap.Error(err))
		return names
	}

	for _, surah := range surahs {
		names[surah.Number] = surah.EnglishName
	}
	return names
}
