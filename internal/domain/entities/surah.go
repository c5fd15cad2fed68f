// Package entities contains domain entities used across the application.
package entities

// Surah describes a chapter of the Quran as listed by the content API.
type Surah struct {
	Number                 int    `json:"number"`                 // 1..114
	Name                   string `json:"name"`                   // Arabic name
	EnglishName            string `json:"englishName"`            // transliterated name
	EnglishNameTranslation string `json:"englishNameTranslation"` // meaning of the name
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"` // "Meccan" or "Medinan"
}

// SurahDetail is a surah together with the text of its ayahs.
type SurahDetail struct {
	Surah
	Ayahs []Ayah `json:"ayahs"`
}

// Ayah is a single verse.
type Ayah struct {
	Number        int    `json:"number"`        // global number, 1..6236
	NumberInSurah int    `json:"numberInSurah"` // position inside its surah
	Text          string `json:"text"`
	Juz           int    `json:"juz"`
	Page          int    `json:"page"`
	Surah         *Surah `json:"surah,omitempty"` // set when fetched outside of a surah
	Audio         string `json:"audio,omitempty"`
}

// SurahNumber returns the surah the ayah belongs to, or 0 when unknown.
func (a Ayah) SurahNumber() int {
	if a.Surah == nil {
		return 0
	}
	return a.Surah.Number
}

// Page is one page of the printed mushaf.
type Page struct {
	Number int    `json:"number"`
	Ayahs  []Ayah `json:"ayahs"`
}

// Juz is one of the thirty divisions of the Quran.
type Juz struct {
	Number int    `json:"number"`
	Ayahs  []Ayah `json:"ayahs"`
}
