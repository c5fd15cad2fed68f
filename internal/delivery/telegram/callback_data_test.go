package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		data   string
		action string
		ints   []int
	}{
		{buildSurahsCallback(3), actionSurahs, []int{3}},
		{buildSurahCallback(2, 10), actionSurah, []int{2, 10}},
		{buildAyahCallback(2, 255), actionAyah, []int{2, 255}},
		{buildBookmarkCallback(1, 7), actionBookmark, []int{1, 7}},
		{buildAudioCallback(114, 6), actionAudio, []int{114, 6}},
		{buildPageCallback(604), actionPage, []int{604}},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			cd := decodeCallback(tt.data)
			assert.Equal(t, tt.action, cd.Action)

			got, ok := cd.ints(len(tt.ints))
			assert.True(t, ok)
			assert.Equal(t, tt.ints, got)
			assert.LessOrEqual(t, len(tt.data), 64)
		})
	}
}

func TestCallbackData_Ints(t *testing.T) {
	_, ok := decodeCallback("ayah:2").ints(2)
	assert.False(t, ok)

	_, ok = decodeCallback("ayah:x:1").ints(2)
	assert.False(t, ok)

	cd := decodeCallback(buildReciterCallback("ar.alafasy"))
	assert.Equal(t, actionReciter, cd.Action)
	assert.Equal(t, []string{"ar.alafasy"}, cd.Params)

	assert.Equal(t, "noop", decodeCallback("noop").encode())
}
