package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionSurahs   = "surahs"
	actionSurah    = "surah"
	actionAyah     = "ayah"
	actionBookmark = "bm"
	actionAudio    = "audio"
	actionPage     = "page"
	actionReciter  = "reciter"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// ints parses exactly n integer params.
func (cd callbackData) ints(n int) ([]int, bool) {
	if len(cd.Params) != n {
		return nil, false
	}
	out := make([]int, n)
	for i, p := range cd.Params {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func buildSurahsCallback(page int) string {
	return callbackData{Action: actionSurahs, Params: []string{strconv.Itoa(page)}}.encode()
}

func buildSurahCallback(surah, page int) string {
	return callbackData{
		Action: actionSurah,
		Params: []string{strconv.Itoa(surah), strconv.Itoa(page)},
	}.encode()
}

func buildAyahCallback(surah, ayah int) string {
	return ayahKeyCallback(actionAyah, surah, ayah)
}

func buildBookmarkCallback(surah, ayah int) string {
	return ayahKeyCallback(actionBookmark, surah, ayah)
}

func buildAudioCallback(surah, ayah int) string {
	return ayahKeyCallback(actionAudio, surah, ayah)
}

func buildPageCallback(page int) string {
	return callbackData{Action: actionPage, Params: []string{strconv.Itoa(page)}}.encode()
}

func buildReciterCallback(reciter string) string {
	return callbackData{Action: actionReciter, Params: []string{reciter}}.encode()
}

func ayahKeyCallback(action string, surah, ayah int) string {
	return callbackData{
		Action: action,
		Params: []string{strconv.Itoa(surah), strconv.Itoa(ayah)},
	}.encode()
}
