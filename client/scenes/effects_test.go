package scenes

import (
	"image/color"
	"testing"

	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func TestDescribeEvent(t *testing.T) {
	at := kinematic.Vector{X: 10, Y: 20}

	tests := []struct {
		name  string
		event interface{}
		want  eventEffect
		ok    bool
	}{
		{
			name:  "zombie hit",
			event: &gametypes.ZombieHitEvent{Position: at, Damage: 25, Hitpoints: 25},
			want:  eventEffect{Text: "-25", Position: at, Color: damageColor, TTL: 600},
			ok:    true,
		},
		{
			name:  "killing hit is left to the kill",
			event: &gametypes.ZombieHitEvent{Position: at, Damage: 25, Hitpoints: 0},
		},
		{
			name:  "zombie killed",
			event: &gametypes.ZombieKilledEvent{Position: at, Points: 10},
			want:  eventEffect{Text: "+10", Position: at, Color: pointsColor, TTL: 800},
			ok:    true,
		},
		{
			name:  "critical kill",
			event: &gametypes.ZombieKilledEvent{Position: at, Points: 10, Critical: true},
			want:  eventEffect{Text: "critical +10", Position: at, Color: criticalColor, TTL: 1000},
			ok:    true,
		},
		{
			name:  "player hit",
			event: &gametypes.PlayerHitEvent{Position: at, Damage: 10},
			want:  eventEffect{Text: "-10", Position: at, Color: hurtColor, TTL: 600},
			ok:    true,
		},
		{
			name:  "reload",
			event: &gametypes.ReloadEvent{Duration: 1.5},
			want:  eventEffect{Text: "reloading", Color: color.White, TTL: 1500, AtPlayer: true},
			ok:    true,
		},
		{
			name:  "instant reload",
			event: &gametypes.ReloadEvent{},
		},
		{
			name:  "wave",
			event: &gametypes.WaveStartedEvent{Wave: 3, Count: 9},
			want:  eventEffect{Text: "wave 3", TTL: 2000, Overlay: true},
			ok:    true,
		},
		{
			name:  "death",
			event: &gametypes.PlayerKilledEvent{},
			want:  eventEffect{Text: "you died", Overlay: true},
			ok:    true,
		},
		{
			name:  "shots have no text",
			event: &gametypes.ShotFiredEvent{},
		},
		{
			name:  "unknown",
			event: "nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := describeEvent(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
