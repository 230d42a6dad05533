package state

import (
	"context"

	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
)

// StateManager provides shared access to the latest game state snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current game state.
	// It returns nil when no session is live.
	Get(ctx context.Context) (*gametypes.GameState, error)
	// Set replaces the current game state.
	Set(ctx context.Context, gameState *gametypes.GameState) error
	// Clear forgets the current game state, e.g. when a session ends.
	Clear(ctx context.Context) error
}
