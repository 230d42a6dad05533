package input

import (
	"github.com/cbodonnell/isozombie/pkg/game"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

// Projector maps a screen pixel back onto the world plane.
type Projector interface {
	ScreenToWorld(sx, sy float64) kinematic.Vector
}

// State is a snapshot of the raw controls for one tick.
type State struct {
	Left, Right, Up, Down bool
	Fire                  bool
	Reload                bool
	CursorX, CursorY      int
	HasCursor             bool
}

// Read samples the keyboard, mouse and touch screen of a width x height
// screen.
func Read(width, height int) State {
	s := State{
		Left:   IsLeftPressed(),
		Right:  IsRightPressed(),
		Up:     IsUpPressed(),
		Down:   IsDownPressed(),
		Fire:   IsFirePressed(),
		Reload: IsReloadJustPressed(),
	}
	s.CursorX, s.CursorY, s.HasCursor = Cursor(width, height)
	return s
}

// PlayerInput turns the controls into the simulation's input, aiming at
// the world point under the cursor.
func (s State) PlayerInput(p Projector) game.Input {
	in := game.Input{
		MoveX:  Axis(s.Left, s.Right),
		MoveY:  Axis(s.Up, s.Down),
		Fire:   s.Fire,
		Reload: s.Reload,
	}
	if s.HasCursor && p != nil {
		in.Aim = p.ScreenToWorld(float64(s.CursorX), float64(s.CursorY))
		in.HasAim = true
	}
	return in
}
