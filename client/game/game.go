package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cbodonnell/isozombie/client/input"
	"github.com/cbodonnell/isozombie/client/scenes"
	"github.com/cbodonnell/isozombie/client/ui"
	"github.com/cbodonnell/isozombie/pkg/api/handlers"
	"github.com/cbodonnell/isozombie/pkg/config"
	"github.com/cbodonnell/isozombie/pkg/game"
	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/perf"
	"github.com/cbodonnell/isozombie/pkg/repositories"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/cbodonnell/isozombie/pkg/savegame"
	"github.com/cbodonnell/isozombie/pkg/settings"
	"github.com/cbodonnell/isozombie/pkg/state"
	"github.com/cbodonnell/isozombie/pkg/workers"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// repositoryTimeout bounds the scoreboard lookups made between scenes.
const repositoryTimeout = 2 * time.Second

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	cfg *config.Config
	// debug toggles the debug overlay
	debug bool
	// seed is the terrain seed used for the first new session
	seed int64

	settings      *settings.Manager
	repository    repositories.Repository
	store         *savegame.Store
	stateManager  state.StateManager
	saveScoreChan chan<- workers.SaveScoreRequest
	recorder      *perf.Recorder

	// mode is the current game mode.
	mode GameMode
	// scene is the current scene.
	scene scenes.Scene
	// gameScene is the current scene while playing
	gameScene *scenes.GameScene
	// next switches scenes once the current scene is done updating
	next func() error
}

type GameMode int

const (
	GameModeMenu GameMode = iota
	GameModePlay
	GameModeOver
	GameModeError
)

func (m GameMode) String() string {
	switch m {
	case GameModeMenu:
		return "Menu"
	case GameModePlay:
		return "Play"
	case GameModeOver:
		return "Over"
	case GameModeError:
		return "Error"
	}
	return "Unknown"
}

type NewGameOptions struct {
	Config   *config.Config
	Settings *settings.Manager
	// Repository serves the menu scoreboard and personal bests
	Repository   repositories.Repository
	Store        *savegame.Store
	StateManager state.StateManager
	// SaveScoreChan receives every finished session
	SaveScoreChan chan<- workers.SaveScoreRequest
	// Recorder times Update and Draw when set
	Recorder *perf.Recorder
	Debug    bool
	Seed     int64
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewManager(nil)
	}
	if opts.Store == nil {
		opts.Store = savegame.NewStore(nil)
	}

	g := &Game{
		cfg:           opts.Config,
		debug:         opts.Debug,
		seed:          opts.Seed,
		settings:      opts.Settings,
		repository:    opts.Repository,
		store:         opts.Store,
		stateManager:  opts.StateManager,
		saveScoreChan: opts.SaveScoreChan,
		recorder:      opts.Recorder,
	}

	if err := g.loadMenu(); err != nil {
		return nil, fmt.Errorf("failed to load menu scene: %v", err)
	}

	return g, nil
}

func (g *Game) Mode() GameMode {
	return g.mode
}

func (g *Game) SetScene(scene scenes.Scene) error {
	if g.scene != nil {
		if err := g.scene.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy previous scene: %v", err)
		}
	}

	g.scene = scene
	if err := g.scene.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene: %v", err)
	}

	return nil
}

// switchTo schedules a scene change for the end of the current update.
func (g *Game) switchTo(load func() error) {
	g.next = load
}

func (g *Game) topScores() []*models.Score {
	if g.repository == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), repositoryTimeout)
	defer cancel()
	scores, err := g.repository.TopScores(ctx, g.cfg.Scores.Top)
	if err != nil {
		log.Warn("Failed to get top scores: %v", err)
		return nil
	}
	return scores
}

func (g *Game) bestScore(name string) *models.Score {
	if g.repository == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), repositoryTimeout)
	defer cancel()
	best, err := g.repository.BestScore(ctx, name)
	if err != nil {
		if !repositories.IsNotFound(err) {
			log.Warn("Failed to get best score for %s: %v", name, err)
		}
		return nil
	}
	return best
}

func (g *Game) hasSave() bool {
	if g.store == nil {
		return false
	}
	if _, err := g.store.Load(); err != nil {
		if !errors.Is(err, savegame.ErrNoSave) {
			log.Warn("Ignoring unreadable saved game: %v", err)
		}
		return false
	}
	return true
}

func (g *Game) loadMenu() error {
	opts := scenes.MenuSceneOptions{
		Title:     g.cfg.Screen.Title,
		Name:      g.settings.Get().PlayerName,
		TopScores: g.topScores(),
		OnStart:   g.start,
	}
	if g.hasSave() {
		opts.OnContinue = g.resume
	}

	menu, err := scenes.NewMenuScene(opts)
	if err != nil {
		return fmt.Errorf("failed to create menu scene: %v", err)
	}
	if err := g.SetScene(menu); err != nil {
		return fmt.Errorf("failed to set menu scene: %v", err)
	}
	g.gameScene = nil
	g.mode = GameModeMenu
	return nil
}

// start begins a new session as name.
func (g *Game) start(name string) error {
	name = strings.TrimSpace(name)
	if err := handlers.ValidateName(name); err != nil {
		return ui.NewActionableError(capitalize(err.Error()), err)
	}

	g.settings.SetPlayerName(name)
	if err := g.settings.Save(); err != nil {
		log.Warn("Failed to save settings: %v", err)
	}

	// a new session replaces whatever was saved
	if g.store != nil {
		if err := g.store.Clear(); err != nil {
			log.Warn("Failed to clear saved game: %v", err)
		}
	}

	seed := g.seed
	if seed == 0 {
		seed = game.PickSeed(g.cfg, time.Now())
	}
	// only the first session uses a fixed seed
	g.seed = 0

	g.switchTo(func() error {
		return g.loadGame(name, seed, nil)
	})
	return nil
}

// resume continues the saved session.
func (g *Game) resume() error {
	if g.store == nil {
		return ui.NewActionableError("There is no saved game", savegame.ErrNoSave)
	}
	f, err := g.store.Load()
	if err != nil {
		return ui.NewActionableError("The saved game could not be loaded", err)
	}

	name := f.Name
	if handlers.ValidateName(name) != nil {
		name = g.settings.Get().PlayerName
	}
	g.switchTo(func() error {
		return g.loadGame(name, f.State.Seed, f.State)
	})
	return nil
}

func (g *Game) loadGame(name string, seed int64, snapshot *gametypes.GameState) error {
	gameScene, err := scenes.NewGameScene(scenes.GameSceneOptions{
		Config:       g.cfg,
		Name:         name,
		Seed:         seed,
		Snapshot:     snapshot,
		StateManager: g.stateManager,
		Store:        g.store,
		Settings:     g.settings,
		Debug:        g.debug,
		OnEnd: func(result game.Result) {
			g.onEnd(name, result)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create game scene: %v", err)
	}
	if err := g.SetScene(gameScene); err != nil {
		return fmt.Errorf("failed to set game scene: %v", err)
	}
	g.gameScene = gameScene
	g.mode = GameModePlay
	log.Info("Started game as %s with seed %d", name, seed)
	return nil
}

func (g *Game) onEnd(name string, result game.Result) {
	// the best score is read before this session is stored
	best := g.bestScore(name)

	if g.saveScoreChan != nil {
		saveRequest := workers.SaveScoreRequest{
			Score: &models.Score{
				Name:       name,
				Points:     result.Score,
				Kills:      result.Kills,
				Wave:       result.Wave,
				DurationMS: result.Duration.Milliseconds(),
			},
		}
		select {
		case g.saveScoreChan <- saveRequest:
		default:
			log.Error("Save score queue is full, dropping score for %s", name)
		}
	}

	g.switchTo(func() error {
		return g.loadGameOver(name, result, best)
	})
}

func (g *Game) loadGameOver(name string, result game.Result, best *models.Score) error {
	gameOver, err := scenes.NewGameOverScene(scenes.GameOverSceneOptions{
		Name:   name,
		Result: result,
		Best:   best,
	})
	if err != nil {
		return fmt.Errorf("failed to create game over scene: %v", err)
	}
	if err := g.SetScene(gameOver); err != nil {
		return fmt.Errorf("failed to set game over scene: %v", err)
	}
	g.gameScene = nil
	g.mode = GameModeOver
	return nil
}

func (g *Game) loadError(msg string) error {
	errorScene, err := scenes.NewErrorScene(msg)
	if err != nil {
		return fmt.Errorf("failed to create error scene: %v", err)
	}
	if err := g.SetScene(errorScene); err != nil {
		return fmt.Errorf("failed to set error scene: %v", err)
	}
	g.gameScene = nil
	g.mode = GameModeError
	return nil
}

func (g *Game) Update() (err error) {
	if g.recorder != nil {
		g.recorder.Time(perf.Update, func() {
			err = g.update()
		})
		return err
	}
	return g.update()
}

func (g *Game) update() error {
	if input.IsDebugJustPressed() {
		g.debug = !g.debug
	}

	// Handle input
	if err := g.handleInput(); err != nil {
		return err
	}

	// Update the current scene
	if err := g.scene.Update(); err != nil {
		log.Error("Failed to update %s scene: %v", g.mode, err)
		if err := g.loadError("Something went wrong"); err != nil {
			return fmt.Errorf("failed to load error scene: %v", err)
		}
		return nil
	}

	if g.next != nil {
		next := g.next
		g.next = nil
		if err := next(); err != nil {
			log.Error("Failed to switch scenes: %v", err)
			if err := g.loadError("Something went wrong"); err != nil {
				return fmt.Errorf("failed to load error scene: %v", err)
			}
		}
	}

	return nil
}

func (g *Game) handleInput() error {
	switch g.mode {
	case GameModeMenu:
		if input.IsNegativeJustPressed() {
			return ebiten.Termination
		}
	case GameModePlay:
		if input.IsNegativeJustPressed() && g.gameScene != nil {
			g.gameScene.End()
		}
	case GameModeOver, GameModeError:
		if input.IsPositiveJustPressed() {
			if err := g.loadMenu(); err != nil {
				return fmt.Errorf("failed to load menu scene: %v", err)
			}
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.recorder != nil {
		g.recorder.Time(perf.Draw, func() {
			g.draw(screen)
		})
		return
	}
	g.draw(screen)
}

func (g *Game) draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

// DebugLines returns the lines of the debug overlay.
func (g *Game) DebugLines() []string {
	lines := []string{
		fmt.Sprintf("FPS: %0.1f", ebiten.ActualFPS()),
		fmt.Sprintf("TPS: %0.1f", ebiten.ActualTPS()),
		fmt.Sprintf("Mode: %s", g.mode),
	}
	if statser, ok := g.scene.(scenes.DebugStatser); ok {
		lines = append(lines, statser.DebugStats()...)
	}
	if g.recorder != nil {
		for _, name := range []string{perf.Update, perf.Draw} {
			summary := g.recorder.Summary(name)
			lines = append(lines, fmt.Sprintf("%s: %0.2fms (p95 %0.2fms)", name, summary.Mean, summary.P95))
		}
	}
	return lines
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	var b strings.Builder
	for _, line := range g.DebugLines() {
		b.WriteString("\n   ")
		b.WriteString(line)
	}
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
