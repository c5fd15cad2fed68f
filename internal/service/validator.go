package service

import (
	"strings"
	"unicode/utf8"
)

// RecitationValidator compares a typed recitation with the expected ayah
// text, tolerating missing diacritics and small typos.
type RecitationValidator struct {
	threshold float64 // similarity required, 0.0 - 1.0
}

// NewRecitationValidator creates a new RecitationValidator.
func NewRecitationValidator() *RecitationValidator {
	return &RecitationValidator{
		threshold: 0.8,
	}
}

// Compare reports whether answer matches expected and how similar they are.
func (v *RecitationValidator) Compare(answer, expected string) (bool, float64) {
	a := normalize(answer)
	e := normalize(expected)

	if a == e {
		return true, 1.0
	}
	if a == "" {
		return false, 0
	}

	sim := similarity(a, e)
	return sim >= v.threshold, sim
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = normalizeArabic(s)
	return strings.Join(strings.Fields(s), " ")
}

func similarity(s1, s2 string) float64 {
	maxLen := max(utf8.RuneCountInString(s1), utf8.RuneCountInString(s2))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(s1, s2))/float64(maxLen)
}

var arabicFolds = map[rune]rune{
	'أ': 'ا', // alef with hamza above
	'إ': 'ا', // alef with hamza below
	'آ': 'ا', // alef with madda
	'ٱ': 'ا', // alef wasla
	'ة': 'ه', // teh marbuta
	'ى': 'ي', // alef maksura
}

// normalizeArabic drops harakat, Quranic annotation marks and tatweel, and
// folds letter variants that are commonly typed interchangeably.
func normalizeArabic(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x064B && r <= 0x065F: // harakat
			return -1
		case r == 0x0670: // superscript alef
			return -1
		case r >= 0x06D6 && r <= 0x06ED: // small high marks
			return -1
		case r == 0x0640: // tatweel
			return -1
		}
		if folded, ok := arabicFolds[r]; ok {
			return folded
		}
		return r
	}, s)
}

func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)

	cols := len(r2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[cols-1]
}
