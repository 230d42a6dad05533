package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle keyboard, mouse, touch and gamepad inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}
	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	for _, g := range gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightRight) {
				return true
			}
		} else {
			// The button 0/1 might not be A/B buttons.
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
				return true
			}
			if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton1) {
				return true
			}
		}
	}
	return false
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsRightPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD)
}

func IsLeftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
}

func IsUpPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW)
}

func IsDownPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS)
}

func IsFirePressed() bool {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(ebiten.AppendTouchIDs(nil)) > 0
}

func IsReloadJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// IsZoomInJustPressed accepts Z and both plus keys. On most layouts + shares
// a key with =.
func IsZoomInJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyZ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEqual) ||
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd)
}

func IsZoomOutJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyX) ||
		inpututil.IsKeyJustPressed(ebiten.KeyMinus) ||
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract)
}

func IsQuickSaveJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF5)
}

func IsQuickLoadJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF9)
}

func IsDebugJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}

// Cursor returns the first touch while the screen is being touched, or the
// mouse position otherwise. ok is false when that point is outside the
// width x height screen, e.g. once the mouse has left the window.
func Cursor(width, height int) (x, y int, ok bool) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y = ebiten.TouchPosition(ids[0])
	} else {
		x, y = ebiten.CursorPosition()
	}
	return x, y, OnScreen(x, y, width, height)
}

// OnScreen reports whether the pixel lies on a width x height screen.
func OnScreen(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}

// Axis folds a pair of opposing inputs into -1, 0 or 1.
func Axis(negative, positive bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	}
	return 0
}
