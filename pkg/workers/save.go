package workers

import (
	"context"
	"errors"
	"time"

	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/cbodonnell/isozombie/pkg/savegame"
	"github.com/cbodonnell/isozombie/pkg/state"
)

// flushTimeout bounds how long queued scores may take to store on shutdown.
const flushTimeout = 2 * time.Second

type SaveWorker struct {
	repository    repositories.Repository
	remote        repositories.Repository
	saveScoreChan <-chan SaveScoreRequest
	stateManager  state.StateManager
	store         *savegame.Store
	interval      time.Duration
	done          chan struct{}
}

type NewSaveWorkerOptions struct {
	Repository repositories.Repository
	// Remote is an optional shared scoreboard every score is also sent to
	Remote        repositories.Repository
	SaveScoreChan <-chan SaveScoreRequest
	StateManager  state.StateManager
	// Store receives autosaves when set
	Store    *savegame.Store
	Interval time.Duration
}

type SaveScoreRequest struct {
	Score *models.Score
}

// NewSaveWorker creates a new SaveWorker.
// The worker stores finished scores sent by the game loop and
// periodically autosaves the live session.
func NewSaveWorker(opts NewSaveWorkerOptions) *SaveWorker {
	return &SaveWorker{
		repository:    opts.Repository,
		remote:        opts.Remote,
		saveScoreChan: opts.SaveScoreChan,
		stateManager:  opts.StateManager,
		store:         opts.Store,
		interval:      opts.Interval,
		done:          make(chan struct{}),
	}
}

// Start runs the worker until ctx is cancelled. Scores still queued at
// that point are stored before it returns.
func (w *SaveWorker) Start(ctx context.Context) {
	defer close(w.done)

	var tick <-chan time.Time
	if w.interval > 0 && w.store != nil && w.stateManager != nil {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return
		case saveRequest := <-w.saveScoreChan:
			w.saveScore(ctx, saveRequest)
		case <-tick:
			w.autosaveLive(ctx)
		}
	}
}

// Done is closed once Start has returned.
func (w *SaveWorker) Done() <-chan struct{} {
	return w.done
}

func (w *SaveWorker) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	for {
		select {
		case saveRequest := <-w.saveScoreChan:
			w.saveScore(ctx, saveRequest)
		default:
			return
		}
	}
}

func (w *SaveWorker) saveScore(ctx context.Context, saveRequest SaveScoreRequest) {
	if saveRequest.Score == nil {
		return
	}

	saved, err := w.repository.SaveScore(ctx, saveRequest.Score)
	if err != nil {
		log.Error("Failed to save score: %v", err)
	} else {
		log.Info("Saved score %d for %s", saved.Points, saved.Name)
	}

	if w.remote == nil {
		return
	}
	if _, err := w.remote.SaveScore(ctx, saveRequest.Score); err != nil {
		log.Warn("Failed to submit score to scoreboard: %v", err)
	}
}

// autosaveLive saves the shared snapshot. The slot generation is read
// before the snapshot, so a session ended in between is not written back.
func (w *SaveWorker) autosaveLive(ctx context.Context) {
	generation := w.store.Generation()
	gameState, err := w.stateManager.Get(ctx)
	if err != nil {
		log.Error("Failed to get current game state: %v", err)
		return
	}
	w.autosave(generation, gameState)
}

// autosave writes the live session to the save slot. Finished sessions
// are not saved.
func (w *SaveWorker) autosave(generation uint64, gameState *types.GameState) {
	if gameState == nil || gameState.Over {
		return
	}
	err := w.store.SaveAt(generation, gameState.PlayerName, gameState)
	switch {
	case errors.Is(err, savegame.ErrStaleSave):
		log.Debug("Skipped autosave of an ended session")
	case err != nil:
		log.Error("Failed to autosave: %v", err)
	}
}
