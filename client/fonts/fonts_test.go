package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFontsLoaded(t *testing.T) {
	assert.NotNil(t, MPlusNormalFont)
	assert.NotNil(t, TTFSmallFont)
	assert.NotNil(t, TTFNormalFont)
	assert.NotNil(t, TTFLargeFont)
}

func TestTextSize(t *testing.T) {
	sw, sh := TextSize(TTFSmallFont, "WAVE 3")
	lw, lh := TextSize(TTFLargeFont, "WAVE 3")
	assert.Greater(t, sw, 0)
	assert.Greater(t, sh, 0)
	assert.Greater(t, lw, sw)
	assert.Greater(t, lh, sh)

	w, _ := TextSize(TTFNormalFont, "")
	assert.Equal(t, 0, w)
}
