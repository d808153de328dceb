package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "No save found for this story yet.", T("NO_SAVE_FOUND"))
	assert.Equal(t, "NOT_A_KEY", T("NOT_A_KEY"))
}

func TestTranslateFormatsAfterLookup(t *testing.T) {
	assert.Equal(t, "Missing story JSON at: ./x.json", T("MISSING_STORY_JSON", "./x.json"))
	assert.Equal(t, "Save cleared for timecop.", T("SAVE_CLEARED", "timecop"))
	assert.Equal(t, "Theme: dracula", T("THEME_CHANGED", "dracula"))
	// A key is never used as a format string.
	assert.Equal(t, "100% done", T("100% done"))
}

func TestUnknownLanguageFallsBack(t *testing.T) {
	SetLanguage("xx")
	defer SetLanguage("en")
	assert.Equal(t, "Store: Coming Soon", T("STORE_COMING_SOON"))
}
