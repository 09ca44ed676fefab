package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTranslateStates(t *testing.T) {
	t.Parallel()

	tr, err := GetTranslator()
	require.NoError(t, err)

	tests := []struct {
		lang string
		want string
	}{
		{"en", "Menu open"},
		{"de", "Menü geöffnet"},
		{"de-AT", "Menü geöffnet"},
		{"fr", "Menu ouvert"},
		{"ja", "Menu open"},
		{"not a tag", "Menu open"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Translate(tt.lang, MessageStateOpen, nil))
		})
	}
}

func TestTranslateItemLabel(t *testing.T) {
	t.Parallel()

	tr, err := GetTranslator()
	require.NoError(t, err)

	data := map[string]any{"Title": "Camera", "Position": 2, "Count": 5}
	assert.Equal(t, "Camera, item 2 of 5", tr.Translate("en", MessageItemLabel, data))
	assert.Equal(t, "Camera, Eintrag 2 von 5", tr.Translate("de", MessageItemLabel, data))
	assert.Equal(t, "Unknown", tr.Translate("en", "Unknown", nil))
}

func TestTranslatorLanguages(t *testing.T) {
	t.Parallel()

	tr, err := GetTranslator()
	require.NoError(t, err)

	var names []string
	for _, tag := range tr.Languages() {
		names = append(names, tag.String())
	}
	assert.ElementsMatch(t, []string{"en", "de", "fr"}, names)
	assert.Equal(t, "fr", tr.Match("fr-CA").String())
	assert.Equal(t, language.English, tr.Match("ja"))
}
