package spritesheets

import (
	"image"
	"image/color"
	"math"

	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
)

const (
	CharacterFrameWidth  = 64
	CharacterFrameHeight = 64
	// CharacterFootY is the row a character stands on within its frame
	CharacterFootY = CharacterFrameHeight - 8
)

// Strip is a run of frames on a character sheet row.
type Strip struct {
	// Offset is the column of the first frame
	Offset int
	Count  int
}

// Layout describes where each stance lives on a character sheet. Every
// row holds one orientation, in iso.Orientation order.
type Layout struct {
	FrameWidth  int
	FrameHeight int
	Strips      map[types.Stance]Strip
	Columns     int
}

var stanceOrder = []types.Stance{
	types.StanceStill,
	types.StanceWalking,
	types.StanceFiring,
	types.StanceAttacking,
	types.StanceNormalDeath,
	types.StanceCriticalDeath,
}

var stanceFrames = map[types.Stance]int{
	types.StanceStill:         1,
	types.StanceWalking:       4,
	types.StanceFiring:        2,
	types.StanceAttacking:     3,
	types.StanceNormalDeath:   4,
	types.StanceCriticalDeath: 4,
}

// CharacterLayout is the layout shared by the player and zombie sheets.
func CharacterLayout() Layout {
	l := Layout{
		FrameWidth:  CharacterFrameWidth,
		FrameHeight: CharacterFrameHeight,
		Strips:      make(map[types.Stance]Strip, len(stanceOrder)),
	}
	for _, s := range stanceOrder {
		l.Strips[s] = Strip{Offset: l.Columns, Count: stanceFrames[s]}
		l.Columns += stanceFrames[s]
	}
	return l
}

// FrameRect returns the bounds of a frame on the sheet.
func (l Layout) FrameRect(stance types.Stance, o iso.Orientation, frame int) image.Rectangle {
	strip := l.Strips[stance]
	if o >= iso.OrientationCount {
		o = iso.OrientationDown
	}
	x := (strip.Offset + frame) * l.FrameWidth
	y := int(o) * l.FrameHeight
	return image.Rect(x, y, x+l.FrameWidth, y+l.FrameHeight)
}

// Palette colors a character.
type Palette struct {
	Skin   color.RGBA
	Shirt  color.RGBA
	Pants  color.RGBA
	Weapon color.RGBA
	// Armed characters hold their weapon out, others reach with their arms
	Armed bool
}

var PlayerPalette = Palette{
	Skin:   color.RGBA{R: 230, G: 190, B: 150, A: 255},
	Shirt:  color.RGBA{R: 50, G: 90, B: 180, A: 255},
	Pants:  color.RGBA{R: 60, G: 60, B: 70, A: 255},
	Weapon: color.RGBA{R: 30, G: 30, B: 30, A: 255},
	Armed:  true,
}

var zombieShirts = []color.RGBA{
	{R: 120, G: 70, B: 60, A: 255},
	{R: 90, G: 100, B: 70, A: 255},
	{R: 110, G: 110, B: 120, A: 255},
	{R: 140, G: 120, B: 60, A: 255},
}

// ZombiePalette returns the palette of a zombie variant.
func ZombiePalette(variant int) Palette {
	if variant < 0 {
		variant = -variant
	}
	skin := shade(color.RGBA{R: 120, G: 170, B: 100, A: 255}, 0.8+0.1*float64(variant%3))
	return Palette{
		Skin:  skin,
		Shirt: zombieShirts[variant%len(zombieShirts)],
		Pants: color.RGBA{R: 70, G: 60, B: 50, A: 255},
	}
}

var (
	shadowColor = color.RGBA{A: 80}
	bloodColor  = color.RGBA{R: 140, G: 10, B: 10, A: 230}
	flashColor  = color.RGBA{R: 255, G: 220, B: 90, A: 255}
)

// NewCharacterSheet draws every stance frame in every orientation.
func NewCharacterSheet(p Palette) *image.RGBA {
	l := CharacterLayout()
	sheet := image.NewRGBA(image.Rect(0, 0, l.Columns*l.FrameWidth, iso.OrientationCount*l.FrameHeight))
	c := newCanvas(sheet)
	for o := iso.Orientation(0); o < iso.OrientationCount; o++ {
		for _, s := range stanceOrder {
			for f := 0; f < l.Strips[s].Count; f++ {
				r := l.FrameRect(s, o, f)
				drawCharacter(c.at(r), p, s, o, f)
			}
		}
	}
	return sheet
}

// drawCharacter draws one frame. Feet sit at the bottom center of the frame.
func drawCharacter(c *canvas, p Palette, stance types.Stance, o iso.Orientation, frame int) {
	const (
		cx    = CharacterFrameWidth / 2
		feet  = CharacterFootY
		torso = 18.0
	)
	angle := float64(o) * math.Pi / 4
	dir := point{X: math.Cos(angle), Y: -math.Sin(angle)}

	if stance.IsDead() {
		drawCorpse(c, p, stance, dir, frame)
		return
	}

	c.ellipse(cx, feet, 12, 5, shadowColor)

	// legs swing along the facing direction while walking
	swing := 0.0
	if stance == types.StanceWalking {
		swing = math.Sin(float64(frame)/4*2*math.Pi) * 5
	}
	left := point{X: cx - 4 + dir.X*swing, Y: feet + dir.Y*swing*0.5}
	right := point{X: cx + 4 - dir.X*swing, Y: feet - dir.Y*swing*0.5}
	hip := feet - 12.0
	c.line(point{X: cx - 4, Y: hip}, left, 5, p.Pants)
	c.line(point{X: cx + 4, Y: hip}, right, 5, p.Pants)

	chest := hip - torso/2
	shoulder := point{X: cx + dir.X*6, Y: chest - 4 + dir.Y*3}

	// facing away: the arm and weapon are behind the body
	behind := dir.Y < 0
	if behind {
		drawArms(c, p, stance, shoulder, dir, frame)
	}
	c.ellipse(cx, chest, 9, torso/2, p.Shirt)
	c.circle(cx+dir.X*2, chest-torso/2-6+dir.Y, 7, p.Skin)
	if !behind {
		drawArms(c, p, stance, shoulder, dir, frame)
	}
}

func drawArms(c *canvas, p Palette, stance types.Stance, shoulder, dir point, frame int) {
	reach := 10.0
	switch stance {
	case types.StanceAttacking:
		reach = 10 + float64(frame)*5
	case types.StanceFiring:
		reach = 12
	}
	hand := point{X: shoulder.X + dir.X*reach, Y: shoulder.Y + dir.Y*reach*0.6}

	if !p.Armed {
		// both arms held out
		c.line(point{X: shoulder.X - 3, Y: shoulder.Y}, point{X: hand.X - 3, Y: hand.Y}, 4, p.Skin)
		c.line(point{X: shoulder.X + 3, Y: shoulder.Y}, point{X: hand.X + 3, Y: hand.Y}, 4, p.Skin)
		return
	}

	c.line(shoulder, hand, 4, p.Skin)
	muzzle := point{X: hand.X + dir.X*12, Y: hand.Y + dir.Y*12*0.6}
	c.line(hand, muzzle, 3, p.Weapon)
	if stance == types.StanceFiring && frame == 0 {
		c.circle(muzzle.X+dir.X*3, muzzle.Y+dir.Y*2, 4, flashColor)
	}
}

// drawCorpse lowers the body to the ground over the strip. Critical deaths
// leave a growing pool of blood.
func drawCorpse(c *canvas, p Palette, stance types.Stance, dir point, frame int) {
	const (
		cx   = CharacterFrameWidth / 2
		feet = CharacterFootY
	)
	progress := float64(frame+1) / float64(stanceFrames[stance])

	if stance == types.StanceCriticalDeath {
		c.ellipse(cx, feet-2, 8+14*progress, 4+6*progress, bloodColor)
	} else {
		c.ellipse(cx, feet, 12, 5, shadowColor)
	}

	// the body falls away from the facing direction
	height := 30 * (1 - progress*0.8)
	lean := progress * 14
	base := point{X: cx, Y: feet - 4}
	top := point{X: cx - dir.X*lean, Y: base.Y - height}
	c.line(base, top, 14, p.Shirt)
	c.circle(top.X-dir.X*4, top.Y-4, 7, p.Skin)
}
