package objects

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cbodonnell/isozombie/client/camera"
	"github.com/cbodonnell/isozombie/client/fonts"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// textEffectHeight lifts text effects above the character they belong to,
// in screen pixels at zoom 1.
const textEffectHeight = 56

// TextEffect is a short lived label anchored to a point in the world, such
// as damage dealt or points scored.
type TextEffect struct {
	*BaseObject

	ID       string
	text     string
	position kinematic.Vector
	camera   *camera.Camera
	color    color.Color
	scroll   bool
	// rise is how far the text has scrolled up, in pixels
	rise float64
	ttl  int
}

type NewTextEffectOptions struct {
	// Text is the text to display.
	Text string
	// Position is the world position the text is anchored to.
	Position kinematic.Vector
	// Camera projects the position onto the screen.
	Camera *camera.Camera
	// Color is the color of the text.
	Color color.Color
	// Scroll is a boolean value indicating whether the text should scroll.
	Scroll bool
	// TTL is the time to live in milliseconds.
	TTL int
	// ZIndex is the z-index of the text effect.
	ZIndex int
}

func NewTextEffect(id string, opts NewTextEffectOptions) *TextEffect {
	clr := opts.Color
	if clr == nil {
		clr = color.White
	}

	baseObjectOpts := &NewBaseObjectOpts{
		ZIndex: opts.ZIndex,
	}

	return &TextEffect{
		BaseObject: NewBaseObject(id, baseObjectOpts),
		ID:         id,
		text:       opts.Text,
		position:   opts.Position,
		camera:     opts.Camera,
		color:      clr,
		scroll:     opts.Scroll,
		ttl:        opts.TTL,
	}
}

func (o *TextEffect) Update() error {
	if o.scroll {
		factor := 60 / float64(ebiten.TPS())
		o.rise += 1 * factor
	}
	if o.ttl > 0 {
		o.ttl -= 1000 / ebiten.TPS()
		if o.ttl <= 0 {
			if err := o.BaseObject.RemoveFromParent(); err != nil {
				return fmt.Errorf("failed to remove text effect from parent: %w", err)
			}
		}
	}
	return nil
}

func (o *TextEffect) Draw(screen *ebiten.Image) {
	if !o.camera.IsVisible(o.position, textEffectHeight) {
		return
	}
	t := strings.ToUpper(o.text)
	f := fonts.TTFSmallFont
	bounds, _ := font.BoundString(f, t)
	sx, sy := o.camera.WorldToScreen(o.position)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(sx-float64(bounds.Max.X>>6)/2, sy-textEffectHeight*o.camera.Zoom()-o.rise)
	op.ColorScale.ScaleWithColor(o.color)
	text.DrawWithOptions(screen, t, f, op)
}
