package entities

import (
	"time"

	"github.com/google/uuid"
)

// Challenge is a memorisation prompt: one random ayah the user should
// recognise and continue from.
type Challenge struct {
	ID          string    `json:"id"`
	Owner       string    `json:"-"` // user id or anonymous client key
	SurahNumber int       `json:"surah_number"`
	SurahName   string    `json:"surah_name"`
	AyahNumber  int       `json:"ayah_number"`
	SurahAyahs  int       `json:"-"` // ayah count of the surah, to find the follower
	GlobalAyah  int       `json:"-"`
	Edition     string    `json:"-"` // text edition the follower is compared in
	Text        string    `json:"text"`
	Audio       string    `json:"audio"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewChallenge creates a challenge for the given ayah.
func NewChallenge(owner string, ayah Ayah, surahName string, audio string) *Challenge {
	var count int
	if ayah.Surah != nil {
		count = ayah.Surah.NumberOfAyahs
	}
	return &Challenge{
		ID:          uuid.NewString(),
		Owner:       owner,
		SurahNumber: ayah.SurahNumber(),
		SurahName:   surahName,
		AyahNumber:  ayah.NumberInSurah,
		SurahAyahs:  count,
		GlobalAyah:  ayah.Number,
		Text:        ayah.Text,
		Audio:       audio,
		CreatedAt:   time.Now(),
	}
}

// RecitationResult is the outcome of checking a recited continuation.
type RecitationResult struct {
	Correct     bool    `json:"correct"`
	Similarity  float64 `json:"similarity"`
	SurahNumber int     `json:"surah_number"`
	AyahNumber  int     `json:"ayah_number"`
	Expected    string  `json:"expected"`
}
