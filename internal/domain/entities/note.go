package entities

import (
	"time"

	"github.com/google/uuid"
)

// Note is a user's annotation of a single ayah. There is at most one note
// per (user, surah, ayah).
type Note struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	SurahNumber int       `json:"surah_number"`
	AyahNumber  int       `json:"ayah_number"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewNote creates a note for the given ayah.
func NewNote(userID uuid.UUID, surah, ayah int, content string) *Note {
	now := time.Now()
	return &Note{
		UserID:      userID,
		SurahNumber: surah,
		AyahNumber:  ayah,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
