package animations

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Animation struct {
	// image is the image containing the animation frames.
	image *ebiten.Image
	// frameOX is the x offset of the first frame in the animation.
	frameOX int
	// frameOY is the y offset of the first frame in the animation.
	frameOY int
	// frameWidth is the width of each frame in the animation.
	frameWidth int
	// frameHeight is the height of each frame in the animation.
	frameHeight int
	// frameCount is the number of frames in the animation.
	frameCount int
	// frameSpeed is the number of updates before the frame index is incremented.
	frameSpeed int
	// looping animations wrap around, others hold their last frame.
	looping bool

	// updateCount is the number of times the animation has been updated.
	updateCount int
	// frameIndex is the current frame index.
	frameIndex int
}

type NewAnimationOptions struct {
	Image       *ebiten.Image
	FrameOX     int
	FrameOY     int
	FrameWidth  int
	FrameHeight int
	FrameCount  int
	FrameSpeed  int
	Looping     bool
}

func NewAnimation(opts NewAnimationOptions) *Animation {
	a := &Animation{
		image:       opts.Image,
		frameOX:     opts.FrameOX,
		frameOY:     opts.FrameOY,
		frameWidth:  opts.FrameWidth,
		frameHeight: opts.FrameHeight,
		frameCount:  opts.FrameCount,
		frameSpeed:  opts.FrameSpeed,
		looping:     opts.Looping,
	}
	if a.frameCount < 1 {
		a.frameCount = 1
	}
	if a.frameSpeed < 1 {
		a.frameSpeed = 1
	}
	return a
}

func (a *Animation) Update() {
	a.updateCount++
	frame := a.updateCount / a.frameSpeed
	if a.looping {
		a.frameIndex = frame % a.frameCount
		return
	}
	if frame >= a.frameCount {
		frame = a.frameCount - 1
	}
	a.frameIndex = frame
}

func (a *Animation) Reset() {
	a.updateCount = 0
	a.frameIndex = 0
}

func (a *Animation) FrameIndex() int {
	return a.frameIndex
}

func (a *Animation) IsLooping() bool {
	return a.looping
}

// IsFinished reports whether a non looping animation reached its last frame.
func (a *Animation) IsFinished() bool {
	return !a.looping && a.frameIndex == a.frameCount-1
}

func (a *Animation) DefaultOptions() *ebiten.DrawImageOptions {
	return &ebiten.DrawImageOptions{
		Filter: ebiten.FilterNearest,
	}
}

// FrameRect returns the bounds of the current frame on the source image.
func (a *Animation) FrameRect() image.Rectangle {
	sx, sy := a.frameOX+a.frameIndex*a.frameWidth, a.frameOY
	return image.Rect(sx, sy, sx+a.frameWidth, sy+a.frameHeight)
}

func (a *Animation) CurrentImage() *ebiten.Image {
	return a.image.SubImage(a.FrameRect()).(*ebiten.Image)
}

func (a *Animation) Size() (int, int) {
	return a.frameWidth, a.frameHeight
}

// Draw draws the current frame scaled, with the frame pixel (ox, oy) at
// (x, y) on screen.
func (a *Animation) Draw(screen *ebiten.Image, x, y, ox, oy, scale float64) {
	op := a.DefaultOptions()
	op.GeoM.Translate(-ox, -oy)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	screen.DrawImage(a.CurrentImage(), op)
}
