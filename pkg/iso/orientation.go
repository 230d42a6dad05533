package iso

// Orientation is one of the eight sprite facings, or Still.
// The values index rows of the character sheets.
type Orientation uint8

const (
	OrientationRight Orientation = iota
	OrientationUpRight
	OrientationUp
	OrientationUpLeft
	OrientationLeft
	OrientationDownLeft
	OrientationDown
	OrientationDownRight
	OrientationStill
)

// OrientationCount is the number of real facings.
const OrientationCount = 8

func (o Orientation) String() string {
	switch o {
	case OrientationRight:
		return "right"
	case OrientationUpRight:
		return "up-right"
	case OrientationUp:
		return "up"
	case OrientationUpLeft:
		return "up-left"
	case OrientationLeft:
		return "left"
	case OrientationDownLeft:
		return "down-left"
	case OrientationDown:
		return "down"
	case OrientationDownRight:
		return "down-right"
	case OrientationStill:
		return "still"
	}
	return "unknown"
}

// OrientationFromDegrees snaps an angle (counter-clockwise, y up) to the
// nearest of the eight facings.
func OrientationFromDegrees(deg int) Orientation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Orientation(((deg + 22) / 45) % OrientationCount)
}
