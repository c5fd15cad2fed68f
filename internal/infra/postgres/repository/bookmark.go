package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres"
)

// BookmarkRepository provides access to ayah bookmarks.
type BookmarkRepository struct {
	db postgres.DBTX
}

func NewBookmarkRepository(db postgres.DBTX) *BookmarkRepository {
	return &BookmarkRepository{db: db}
}

// Exists checks if the user bookmarked the ayah.
func (r *BookmarkRepository) Exists(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookmarks
			WHERE user_id = $1 AND surah_number = $2 AND ayah_number = $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, surah, ayah).Scan(&exists); err != nil {
		return false, fmt.Errorf("check bookmark existence: %w", err)
	}

	return exists, nil
}

// Add stores a bookmark; adding an existing one is a no-op.
func (r *BookmarkRepository) Add(ctx context.Context, b *entities.Bookmark) error {
	query := `
		INSERT INTO bookmarks (user_id, surah_number, ayah_number, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, surah_number, ayah_number) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, b.UserID, b.SurahNumber, b.AyahNumber, b.CreatedAt); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}

	return nil
}

// Remove deletes a bookmark and reports whether one existed.
func (r *BookmarkRepository) Remove(ctx context.Context, userID uuid.UUID, surah, ayah int) (bool, error) {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND surah_number = $2 AND ayah_number = $3`

	tag, err := r.db.Exec(ctx, query, userID, surah, ayah)
	if err != nil {
		return false, fmt.Errorf("remove bookmark: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ListByUser returns the bookmarks of a user in reading order.
func (r *BookmarkRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Bookmark, error) {
	query := `
		SELECT user_id, surah_number, ayah_number, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY surah_number, ayah_number
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*entities.Bookmark
	for rows.Next() {
		var b entities.Bookmark
		if err := rows.Scan(&b.UserID, &b.SurahNumber, &b.AyahNumber, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}
