package state

import (
	"context"
	"fmt"
	"sync"

	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
)

type InMemoryStateManager struct {
	lock      sync.RWMutex
	gameState *gametypes.GameState
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*gametypes.GameState, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.gameState == nil {
		return nil, nil
	}
	return m.gameState.Copy(), nil
}

// Set stores a copy of gameState, so the caller may keep mutating its own.
func (m *InMemoryStateManager) Set(ctx context.Context, gameState *gametypes.GameState) error {
	if gameState == nil {
		return fmt.Errorf("game state is nil")
	}

	c := gameState.Copy()
	m.lock.Lock()
	defer m.lock.Unlock()
	m.gameState = c
	return nil
}

func (m *InMemoryStateManager) Clear(ctx context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.gameState = nil
	return nil
}
