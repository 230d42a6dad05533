package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	mocks "github.com/cbodonnell/isozombie/mocks/github.com/cbodonnell/isozombie/pkg/repositories"
	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/cbodonnell/isozombie/pkg/savegame"
	"github.com/cbodonnell/isozombie/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func liveGameState() *gametypes.GameState {
	gs := gametypes.NewGameState(3, nil)
	gs.Player = gametypes.NewPlayerState(kinematic.Vector{X: 10, Y: 10}, 24, 100, 12)
	gs.Score = 40
	gs.PlayerName = "ash"
	return gs
}

func runWorker(t *testing.T, opts NewSaveWorkerOptions) (context.CancelFunc, *SaveWorker) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := NewSaveWorker(opts)
	go w.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-w.Done()
	})
	return cancel, w
}

func TestSaveWorker_saveScore(t *testing.T) {
	tests := []struct {
		name      string
		remote    bool
		localErr  error
		remoteErr error
	}{
		{name: "local only"},
		{name: "local and remote", remote: true},
		{name: "local fails, remote still tried", remote: true, localErr: errors.New("disk full")},
		{name: "remote fails", remote: true, remoteErr: errors.New("offline")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := &models.Score{Name: "ash", Points: 40}
			saved := make(chan struct{}, 2)

			repository := mocks.NewRepository(t)
			repository.EXPECT().SaveScore(mock.Anything, score).
				Run(func(ctx context.Context, s *models.Score) { saved <- struct{}{} }).
				Return(&models.Score{ID: 1, Name: "ash", Points: 40}, tt.localErr)

			opts := NewSaveWorkerOptions{Repository: repository}
			ch := make(chan SaveScoreRequest, 1)
			opts.SaveScoreChan = ch
			if tt.remote {
				remote := mocks.NewRepository(t)
				remote.EXPECT().SaveScore(mock.Anything, score).
					Run(func(ctx context.Context, s *models.Score) { saved <- struct{}{} }).
					Return(&models.Score{ID: 9}, tt.remoteErr)
				opts.Remote = remote
			}

			runWorker(t, opts)
			ch <- SaveScoreRequest{Score: score}

			want := 1
			if tt.remote {
				want = 2
			}
			for i := 0; i < want; i++ {
				select {
				case <-saved:
				case <-time.After(time.Second):
					t.Fatal("score was not saved")
				}
			}
		})
	}
}

func TestSaveWorker_flushOnStop(t *testing.T) {
	score := &models.Score{Name: "ash", Points: 10}
	repository := mocks.NewRepository(t)
	repository.EXPECT().SaveScore(mock.Anything, score).Return(score, nil).Times(3)

	ch := make(chan SaveScoreRequest, 3)
	for i := 0; i < 3; i++ {
		ch <- SaveScoreRequest{Score: score}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := NewSaveWorker(NewSaveWorkerOptions{Repository: repository, SaveScoreChan: ch})
	w.Start(ctx)

	select {
	case <-w.Done():
	default:
		t.Fatal("worker is not done")
	}
	assert.Empty(t, ch)
}

func TestSaveWorker_autosave(t *testing.T) {
	ctx := context.Background()
	stateManager := state.NewInMemoryStateManager()
	store := savegame.NewStore(nil)

	runWorker(t, NewSaveWorkerOptions{
		Repository:    mocks.NewRepository(t),
		SaveScoreChan: make(chan SaveScoreRequest),
		StateManager:  stateManager,
		Store:         store,
		Interval:      10 * time.Millisecond,
	})

	require.NoError(t, stateManager.Set(ctx, liveGameState()))
	assert.Eventually(t, func() bool {
		f, err := store.Load()
		return err == nil && f.State.Score == 40 && f.Name == "ash"
	}, time.Second, 10*time.Millisecond)
}

func TestSaveWorker_autosaveSkipsFinishedSessions(t *testing.T) {
	ctx := context.Background()
	stateManager := state.NewInMemoryStateManager()
	store := savegame.NewStore(nil)

	over := liveGameState()
	over.Over = true
	require.NoError(t, stateManager.Set(ctx, over))

	w := NewSaveWorker(NewSaveWorkerOptions{
		StateManager: stateManager,
		Store:        store,
	})
	gs, err := stateManager.Get(ctx)
	require.NoError(t, err)
	w.autosave(store.Generation(), gs)
	w.autosave(store.Generation(), nil)

	_, err = store.Load()
	assert.ErrorIs(t, err, savegame.ErrNoSave)
}

// endingStateManager ends the session right after handing out a snapshot,
// the way GameScene.End does from the game loop.
type endingStateManager struct {
	*state.InMemoryStateManager
	store *savegame.Store
}

func (m *endingStateManager) Get(ctx context.Context) (*gametypes.GameState, error) {
	gs, err := m.InMemoryStateManager.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.InMemoryStateManager.Clear(ctx); err != nil {
		return nil, err
	}
	if err := m.store.Clear(); err != nil {
		return nil, err
	}
	return gs, nil
}

func TestSaveWorker_autosaveSkipsSessionEndedDuringSnapshot(t *testing.T) {
	ctx := context.Background()
	store := savegame.NewStore(nil)
	stateManager := &endingStateManager{
		InMemoryStateManager: state.NewInMemoryStateManager(),
		store:                store,
	}
	require.NoError(t, stateManager.Set(ctx, liveGameState()))

	w := NewSaveWorker(NewSaveWorkerOptions{
		StateManager: stateManager,
		Store:        store,
	})
	w.autosaveLive(ctx)

	_, err := store.Load()
	assert.ErrorIs(t, err, savegame.ErrNoSave)
}
