package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultReciter = "ar.alafasy"
	DefaultEdition = "quran-uthmani"
)

// UserSettings stores reading preferences of a user.
type UserSettings struct {
	UserID    uuid.UUID `json:"-"`
	Reciter   string    `json:"reciter"` // audio edition, e.g. "ar.alafasy"
	Edition   string    `json:"edition"` // text edition, e.g. "quran-uthmani"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserSettings creates a new UserSettings instance with default values.
func NewUserSettings(userID uuid.UUID) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:    userID,
		Reciter:   DefaultReciter,
		Edition:   DefaultEdition,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
