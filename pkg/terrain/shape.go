package terrain

import (
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

// ShapeKind is the kind of static obstacle standing on a tile.
type ShapeKind uint8

const (
	Rock ShapeKind = iota
	Crate
	Tree
)

const ShapeKindCount = 3

func (k ShapeKind) String() string {
	switch k {
	case Rock:
		return "rock"
	case Crate:
		return "crate"
	case Tree:
		return "tree"
	}
	return "unknown"
}

// Shape is a static obstacle occupying one tile.
type Shape struct {
	Kind     ShapeKind
	Tile     iso.Tile
	Position kinematic.Vector // tile center in world units
}
