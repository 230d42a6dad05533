package objects

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cbodonnell/isozombie/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextOverlayObject draws large text centered on the screen, optionally for
// a limited time.
type TextOverlayObject struct {
	*BaseObject

	text string
	ttl  int
}

func NewTextOverlayObject(id string, text string) GameObject {
	return NewTimedTextOverlayObject(id, text, 0)
}

// NewTimedTextOverlayObject removes itself from its parent after ttl
// milliseconds. A ttl of zero lasts forever.
func NewTimedTextOverlayObject(id string, text string, ttl int) *TextOverlayObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: 100}),
		text:       text,
		ttl:        ttl,
	}
}

func (o *TextOverlayObject) Update() error {
	if o.ttl <= 0 {
		return nil
	}
	o.ttl -= 1000 / ebiten.TPS()
	if o.ttl <= 0 {
		if err := o.BaseObject.RemoveFromParent(); err != nil {
			return fmt.Errorf("failed to remove text overlay from parent: %w", err)
		}
	}
	return nil
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	t := strings.ToUpper(o.text)
	f := fonts.TTFLargeFont
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(screen.Bounds().Dy())/3-float64(bounds.Max.Y>>6)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)
}
