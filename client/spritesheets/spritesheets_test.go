package spritesheets

import (
	"image"
	"testing"

	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opaquePixels counts pixels with any coverage inside r.
func opaquePixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestCharacterLayout(t *testing.T) {
	l := CharacterLayout()
	assert.Equal(t, 18, l.Columns)

	tests := []struct {
		stance types.Stance
		offset int
		count  int
	}{
		{types.StanceStill, 0, 1},
		{types.StanceWalking, 1, 4},
		{types.StanceFiring, 5, 2},
		{types.StanceAttacking, 7, 3},
		{types.StanceNormalDeath, 10, 4},
		{types.StanceCriticalDeath, 14, 4},
	}
	for _, tt := range tests {
		t.Run(tt.stance.String(), func(t *testing.T) {
			assert.Equal(t, Strip{Offset: tt.offset, Count: tt.count}, l.Strips[tt.stance])
		})
	}
}

func TestFrameRect(t *testing.T) {
	l := CharacterLayout()
	assert.Equal(t, image.Rect(0, 0, 64, 64), l.FrameRect(types.StanceStill, iso.OrientationRight, 0))
	assert.Equal(t, image.Rect(7*64, 2*64, 8*64, 3*64), l.FrameRect(types.StanceWalking, iso.OrientationUp, 2))
	// still has no row of its own, it is drawn facing down
	assert.Equal(t, l.FrameRect(types.StanceStill, iso.OrientationDown, 0), l.FrameRect(types.StanceStill, iso.OrientationStill, 0))
}

func TestNewCharacterSheet(t *testing.T) {
	l := CharacterLayout()
	sheet := NewCharacterSheet(PlayerPalette)
	require.Equal(t, image.Rect(0, 0, l.Columns*64, 8*64), sheet.Bounds())

	for o := iso.Orientation(0); o < iso.OrientationCount; o++ {
		for _, s := range stanceOrder {
			for f := 0; f < l.Strips[s].Count; f++ {
				r := l.FrameRect(s, o, f)
				assert.Greater(t, opaquePixels(sheet, r), 100, "%s %s frame %d is empty", s, o, f)
			}
		}
	}

	// walking frames differ from each other
	a := l.FrameRect(types.StanceWalking, iso.OrientationDown, 0)
	b := l.FrameRect(types.StanceWalking, iso.OrientationDown, 1)
	differ := 0
	for y := 0; y < l.FrameHeight; y++ {
		for x := 0; x < l.FrameWidth; x++ {
			if sheet.RGBAAt(a.Min.X+x, a.Min.Y+y) != sheet.RGBAAt(b.Min.X+x, b.Min.Y+y) {
				differ++
			}
		}
	}
	assert.Greater(t, differ, 0)
}

func TestZombiePalette(t *testing.T) {
	assert.NotEqual(t, ZombiePalette(0), ZombiePalette(1))
	assert.Equal(t, ZombiePalette(1), ZombiePalette(-1))
	assert.False(t, ZombiePalette(0).Armed)
	assert.True(t, PlayerPalette.Armed)
}

func TestNewTileSheet(t *testing.T) {
	w, h, raise := TileSize(48)
	assert.Equal(t, 96, w)
	assert.Equal(t, 54, h)
	assert.Equal(t, 33, raise)

	sheet := NewTileSheet(48)
	assert.Equal(t, image.Rect(0, 0, TileKinds*96, 54+33), sheet.Bounds())

	for k := terrain.Grass; int(k) < TileKinds; k++ {
		r := TileRect(k, 48)
		assert.Greater(t, opaquePixels(sheet, r), w*h/3, k.String())
		// the top edge of a flat tile is clear, a wall fills it
		if k == terrain.Wall {
			assert.NotZero(t, sheet.RGBAAt(r.Min.X+w/2, r.Min.Y+2).A)
		} else {
			assert.Zero(t, sheet.RGBAAt(r.Min.X+w/2, r.Min.Y+2).A)
		}
	}
}

func TestNewShapeSheet(t *testing.T) {
	sheet := NewShapeSheet()
	for k := terrain.ShapeKind(0); k < terrain.ShapeKindCount; k++ {
		assert.Greater(t, opaquePixels(sheet, ShapeRect(k)), 300, k.String())
	}
}
