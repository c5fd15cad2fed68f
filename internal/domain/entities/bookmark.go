package entities

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark marks an ayah for a user. It carries no payload.
type Bookmark struct {
	UserID      uuid.UUID `json:"user_id"`
	SurahNumber int       `json:"surah_number"`
	AyahNumber  int       `json:"ayah_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBookmark creates a bookmark for the given ayah.
func NewBookmark(userID uuid.UUID, surah, ayah int) *Bookmark {
	return &Bookmark{
		UserID:      userID,
		SurahNumber: surah,
		AyahNumber:  ayah,
		CreatedAt:   time.Now(),
	}
}

// BookmarkedAyah is a bookmark enriched with content for display.
type BookmarkedAyah struct {
	SurahNumber int    `json:"surah_number"`
	AyahNumber  int    `json:"ayah_number"`
	SurahName   string `json:"surah_name"`
	Text        string `json:"text"`
}
