package scenes

import (
	"fmt"
	"image/color"

	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

var (
	damageColor   = color.RGBA{255, 80, 80, 255}
	pointsColor   = color.RGBA{255, 220, 90, 255}
	criticalColor = color.RGBA{255, 140, 0, 255}
	hurtColor     = color.RGBA{255, 40, 40, 255}
)

// eventEffect is the feedback drawn for a simulation event. Overlay effects
// are centered on the screen, the others float above a world position.
type eventEffect struct {
	Text     string
	Position kinematic.Vector
	Color    color.Color
	// TTL in milliseconds, zero keeps an overlay up
	TTL     int
	Overlay bool
	// AtPlayer anchors the effect to the player instead of Position
	AtPlayer bool
}

// describeEvent returns the effect shown for an event, if any.
func describeEvent(event interface{}) (eventEffect, bool) {
	switch e := event.(type) {
	case *gametypes.ZombieHitEvent:
		if e.Hitpoints <= 0 {
			// the kill event has its own effect
			return eventEffect{}, false
		}
		return eventEffect{
			Text:     fmt.Sprintf("-%d", e.Damage),
			Position: e.Position,
			Color:    damageColor,
			TTL:      600,
		}, true
	case *gametypes.ZombieKilledEvent:
		if e.Critical {
			return eventEffect{
				Text:     fmt.Sprintf("critical +%d", e.Points),
				Position: e.Position,
				Color:    criticalColor,
				TTL:      1000,
			}, true
		}
		return eventEffect{
			Text:     fmt.Sprintf("+%d", e.Points),
			Position: e.Position,
			Color:    pointsColor,
			TTL:      800,
		}, true
	case *gametypes.PlayerHitEvent:
		return eventEffect{
			Text:     fmt.Sprintf("-%d", e.Damage),
			Position: e.Position,
			Color:    hurtColor,
			TTL:      600,
		}, true
	case *gametypes.ReloadEvent:
		if e.Duration <= 0 {
			return eventEffect{}, false
		}
		return eventEffect{
			Text:     "reloading",
			Color:    color.White,
			TTL:      int(e.Duration * 1000),
			AtPlayer: true,
		}, true
	case *gametypes.WaveStartedEvent:
		return eventEffect{
			Text:    fmt.Sprintf("wave %d", e.Wave),
			TTL:     2000,
			Overlay: true,
		}, true
	case *gametypes.PlayerKilledEvent:
		return eventEffect{
			Text:    "you died",
			Overlay: true,
		}, true
	}
	return eventEffect{}, false
}
