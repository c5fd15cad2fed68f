package quran

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	TotalSurahs = 114
	TotalPages  = 604
	TotalJuz    = 30
	TotalAyahs  = 6236
)

// AyahKey identifies an ayah by surah and position in it.
type AyahKey struct {
	Surah int `json:"surah"`
	Ayah  int `json:"ayah"`
}

func (k AyahKey) String() string {
	return AyahRef(k.Surah, k.Ayah)
}

func ValidSurah(n int) bool { return n >= 1 && n <= TotalSurahs }
func ValidPage(n int) bool  { return n >= 1 && n <= TotalPages }
func ValidJuz(n int) bool   { return n >= 1 && n <= TotalJuz }

// AyahRef formats the "surah:ayah" reference used by the API.
func AyahRef(surah, ayah int) string {
	return strconv.Itoa(surah) + ":" + strconv.Itoa(ayah)
}

// ParseAyahRef parses "surah:ayah".
func ParseAyahRef(s string) (AyahKey, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return AyahKey{}, fmt.Errorf("parse %q: expected surah:ayah", s)
	}

	surah, err := strconv.Atoi(left)
	if err != nil || !ValidSurah(surah) {
		return AyahKey{}, ErrInvalidSurah
	}
	ayah, err := strconv.Atoi(right)
	if err != nil || ayah < 1 {
		return AyahKey{}, ErrInvalidAyah
	}

	return AyahKey{Surah: surah, Ayah: ayah}, nil
}

// PrevSurah returns the surah before n.
func PrevSurah(n int) (int, bool) {
	if n <= 1 || n > TotalSurahs {
		return 0, false
	}
	return n - 1, true
}

// NextSurah returns the surah after n.
func NextSurah(n int) (int, bool) {
	if n < 1 || n >= TotalSurahs {
		return 0, false
	}
	return n + 1, true
}

// PrevPage returns the page before n.
func PrevPage(n int) (int, bool) {
	if n <= 1 || n > TotalPages {
		return 0, false
	}
	return n - 1, true
}

// NextPage returns the page after n.
func NextPage(n int) (int, bool) {
	if n < 1 || n >= TotalPages {
		return 0, false
	}
	return n + 1, true
}

// NextAyah returns the ayah following (surah, ayah) given the number of
// ayahs in surah. The last ayah of a surah continues with the first ayah of
// the next one; the last ayah of the Quran has no successor.
func NextAyah(surah, ayah, ayahCount int) (AyahKey, bool) {
	if ayah < ayahCount {
		return AyahKey{Surah: surah, Ayah: ayah + 1}, true
	}
	if next, ok := NextSurah(surah); ok {
		return AyahKey{Surah: next, Ayah: 1}, true
	}
	return AyahKey{}, false
}

// PrevAyah returns the ayah preceding (surah, ayah). Stepping back across a
// surah boundary needs the ayah count of the previous surah, which is asked
// from prevCount only in that case.
func PrevAyah(surah, ayah int, prevCount func(surah int) (int, error)) (AyahKey, bool, error) {
	if ayah > 1 {
		return AyahKey{Surah: surah, Ayah: ayah - 1}, true, nil
	}

	prev, ok := PrevSurah(surah)
	if !ok {
		return AyahKey{}, false, nil
	}

	count, err := prevCount(prev)
	if err != nil {
		return AyahKey{}, false, err
	}
	return AyahKey{Surah: prev, Ayah: count}, true, nil
}
