package objects

import (
	"github.com/cbodonnell/isozombie/client/spritesheets"
	"github.com/cbodonnell/isozombie/pkg/terrain"
	"github.com/hajimehoshi/ebiten/v2"
)

// Sprites holds the generated sheets as ebiten images.
type Sprites struct {
	Player   *ebiten.Image
	Zombies  []*ebiten.Image
	Tiles    *ebiten.Image
	Shapes   *ebiten.Image
	Layout   spritesheets.Layout
	TileSize float64
}

// NewSprites generates every sheet for a map with the given tile size.
func NewSprites(zombieVariants int, tileSize float64) *Sprites {
	if zombieVariants < 1 {
		zombieVariants = 1
	}
	s := &Sprites{
		Player:   ebiten.NewImageFromImage(spritesheets.NewCharacterSheet(spritesheets.PlayerPalette)),
		Zombies:  make([]*ebiten.Image, zombieVariants),
		Tiles:    ebiten.NewImageFromImage(spritesheets.NewTileSheet(tileSize)),
		Shapes:   ebiten.NewImageFromImage(spritesheets.NewShapeSheet()),
		Layout:   spritesheets.CharacterLayout(),
		TileSize: tileSize,
	}
	for i := range s.Zombies {
		s.Zombies[i] = ebiten.NewImageFromImage(spritesheets.NewCharacterSheet(spritesheets.ZombiePalette(i)))
	}
	return s
}

func (s *Sprites) Zombie(variant int) *ebiten.Image {
	if variant < 0 || variant >= len(s.Zombies) {
		variant = 0
	}
	return s.Zombies[variant]
}

func (s *Sprites) Tile(k terrain.Kind) *ebiten.Image {
	return s.Tiles.SubImage(spritesheets.TileRect(k, s.TileSize)).(*ebiten.Image)
}

func (s *Sprites) Shape(k terrain.ShapeKind) *ebiten.Image {
	return s.Shapes.SubImage(spritesheets.ShapeRect(k)).(*ebiten.Image)
}

// Dispose releases the sheets' GPU memory.
func (s *Sprites) Dispose() {
	for _, img := range append([]*ebiten.Image{s.Player, s.Tiles, s.Shapes}, s.Zombies...) {
		img.Deallocate()
	}
}
