package animations

import (
	"github.com/cbodonnell/isozombie/client/spritesheets"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/hajimehoshi/ebiten/v2"
)

// frameSpeeds is the number of updates each stance holds a frame for.
var frameSpeeds = map[types.Stance]int{
	types.StanceStill:         1,
	types.StanceWalking:       8,
	types.StanceFiring:        4,
	types.StanceAttacking:     8,
	types.StanceNormalDeath:   10,
	types.StanceCriticalDeath: 8,
}

type characterKey struct {
	stance      types.Stance
	orientation iso.Orientation
}

// CharacterAnimations plays a character sheet. It tracks the stance being
// shown and restarts the animation whenever it changes.
type CharacterAnimations struct {
	sheet      *ebiten.Image
	layout     spritesheets.Layout
	animations map[characterKey]*Animation

	current characterKey
	started bool
}

func NewCharacterAnimations(sheet *ebiten.Image, layout spritesheets.Layout) *CharacterAnimations {
	return &CharacterAnimations{
		sheet:      sheet,
		layout:     layout,
		animations: make(map[characterKey]*Animation),
	}
}

func (c *CharacterAnimations) get(key characterKey) *Animation {
	if a, ok := c.animations[key]; ok {
		return a
	}
	strip := c.layout.Strips[key.stance]
	r := c.layout.FrameRect(key.stance, key.orientation, 0)
	a := NewAnimation(NewAnimationOptions{
		Image:       c.sheet,
		FrameOX:     r.Min.X,
		FrameOY:     r.Min.Y,
		FrameWidth:  c.layout.FrameWidth,
		FrameHeight: c.layout.FrameHeight,
		FrameCount:  strip.Count,
		FrameSpeed:  frameSpeeds[key.stance],
		Looping:     !key.stance.IsDead(),
	})
	c.animations[key] = a
	return a
}

// Set selects the animation for a stance and orientation. A new stance
// starts from its first frame; turning keeps the frame.
func (c *CharacterAnimations) Set(stance types.Stance, o iso.Orientation) *Animation {
	if o >= iso.OrientationCount {
		o = iso.OrientationDown
	}
	key := characterKey{stance: stance, orientation: o}
	if c.started && key == c.current {
		return c.get(key)
	}

	prev := c.get(c.current)
	a := c.get(key)
	if !c.started || c.current.stance != stance {
		a.Reset()
	} else {
		a.updateCount = prev.updateCount
		a.frameIndex = prev.frameIndex
	}
	c.current = key
	c.started = true
	return a
}

// Current returns the animation selected by the last call to Set.
func (c *CharacterAnimations) Current() *Animation {
	return c.get(c.current)
}

func (c *CharacterAnimations) Update() {
	c.Current().Update()
}
