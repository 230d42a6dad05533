package scenes

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/cbodonnell/isozombie/client/camera"
	"github.com/cbodonnell/isozombie/client/input"
	"github.com/cbodonnell/isozombie/client/objects"
	"github.com/cbodonnell/isozombie/pkg/config"
	"github.com/cbodonnell/isozombie/pkg/game"
	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/queue"
	"github.com/cbodonnell/isozombie/pkg/savegame"
	"github.com/cbodonnell/isozombie/pkg/settings"
	"github.com/cbodonnell/isozombie/pkg/state"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// EventQueueSize bounds the events buffered between two updates.
	EventQueueSize = 256
	// StateShareInterval is how many ticks pass between state snapshots
	// handed to the autosave worker.
	StateShareInterval = 30
	// DeathLinger is how long the scene keeps running after the player died.
	DeathLinger = 2 * time.Second
)

type GameScene struct {
	*BaseScene

	cfg          *config.Config
	name         string
	debug        bool
	stateManager state.StateManager
	store        *savegame.Store
	settings     *settings.Manager
	onEnd        func(result game.Result)

	simulation *game.Simulation
	events     *queue.InMemoryQueue
	camera     *camera.Camera
	sprites    *objects.Sprites

	terrainObject *objects.Terrain
	entities      *objects.DepthSortedObject
	effects       *objects.SortedZIndexObject
	zombies       map[uint32]*objects.Zombie
	bullets       map[uint32]*objects.Bullet
	shapes        []*objects.Shape

	ticks       int
	deathTicks  int
	ended       bool
	deathBanner objects.GameObject
}

type GameSceneOptions struct {
	Config *config.Config
	// Name is the player name scores are recorded under
	Name string
	// Seed is the terrain seed of a new session
	Seed int64
	// Snapshot resumes a saved session when set; its seed wins over Seed
	Snapshot     *gametypes.GameState
	StateManager state.StateManager
	Store        *savegame.Store
	Settings     *settings.Manager
	Debug        bool
	// OnEnd is called once when the session is over, from the scene's Update
	OnEnd func(result game.Result)
}

var _ Scene = &GameScene{}

func NewGameScene(opts GameSceneOptions) (*GameScene, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}

	seed := opts.Seed
	if opts.Snapshot != nil {
		seed = opts.Snapshot.Seed
	}

	cam := camera.NewCamera(camera.NewCameraOptions{
		ViewportW: float64(opts.Config.Screen.Width),
		ViewportH: float64(opts.Config.Screen.Height),
		Zoom:      opts.Config.Camera.Zoom,
		MinZoom:   opts.Config.Camera.MinZoom,
		MaxZoom:   opts.Config.Camera.MaxZoom,
		ZoomStep:  opts.Config.Camera.ZoomStep,
		Follow:    opts.Config.Camera.Follow,
	})
	if opts.Settings != nil {
		if zoom := opts.Settings.Get().Zoom; zoom > 0 {
			cam.SetZoom(zoom)
		}
	}

	s := &GameScene{
		BaseScene:    NewBaseScene(objects.NewSortedZIndexObject("game-root", nil)),
		cfg:          opts.Config,
		name:         opts.Name,
		debug:        opts.Debug,
		stateManager: opts.StateManager,
		store:        opts.Store,
		settings:     opts.Settings,
		onEnd:        opts.OnEnd,
		events:       queue.NewInMemoryQueue(EventQueueSize),
		camera:       cam,
		zombies:      make(map[uint32]*objects.Zombie),
		bullets:      make(map[uint32]*objects.Bullet),
	}
	s.simulation = s.newSimulation(seed)

	if opts.Snapshot != nil {
		if err := s.simulation.Restore(opts.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to restore saved game: %v", err)
		}
		log.Info("Resumed game at wave %d with score %d", opts.Snapshot.Wave.Number, opts.Snapshot.Score)
	}
	s.state().PlayerName = s.name
	cam.SnapTo(s.simulation.State().Player.Position)

	return s, nil
}

func (s *GameScene) newSimulation(seed int64) *game.Simulation {
	return game.NewSimulation(game.NewSimulationOptions{
		Config:     s.cfg,
		Terrain:    game.GenerateTerrain(s.cfg, seed),
		Seed:       seed,
		EventQueue: s.events,
	})
}

func (s *GameScene) state() *gametypes.GameState {
	return s.simulation.State()
}

func (s *GameScene) Init() error {
	s.sprites = objects.NewSprites(s.cfg.Zombie.Variants, s.cfg.World.TileSize)
	root := s.GetRoot()

	s.terrainObject = objects.NewTerrain("terrain", s.simulation.Terrain(), s.sprites, s.camera)
	if err := root.AddChild(s.terrainObject.GetID(), s.terrainObject); err != nil {
		return fmt.Errorf("failed to add terrain: %v", err)
	}

	s.entities = objects.NewDepthSortedObject("entities", nil)
	if err := root.AddChild(s.entities.GetID(), s.entities); err != nil {
		return fmt.Errorf("failed to add entities: %v", err)
	}
	player := objects.NewPlayer("player", objects.NewPlayerOptions{
		State:      func() *gametypes.PlayerState { return s.state().Player },
		Camera:     s.camera,
		Sprites:    s.sprites,
		ReloadTime: s.cfg.Player.ReloadTime,
		Debug:      s.debug,
	})
	if err := s.entities.AddChild(player.GetID(), player); err != nil {
		return fmt.Errorf("failed to add player: %v", err)
	}
	if err := s.addShapes(); err != nil {
		return err
	}

	s.effects = objects.NewSortedZIndexObject("effects", &objects.NewBaseObjectOpts{ZIndex: 10})
	if err := root.AddChild(s.effects.GetID(), s.effects); err != nil {
		return fmt.Errorf("failed to add effects: %v", err)
	}

	hud := objects.NewHUD("hud", s.name, s.state)
	if err := root.AddChild(hud.GetID(), hud); err != nil {
		return fmt.Errorf("failed to add hud: %v", err)
	}

	if err := s.syncEntities(); err != nil {
		return err
	}

	return s.BaseScene.Init()
}

func (s *GameScene) Destroy() error {
	err := s.BaseScene.Destroy()
	if s.sprites != nil {
		s.sprites.Dispose()
	}
	return err
}

func (s *GameScene) addShapes() error {
	for _, shape := range s.simulation.Terrain().Shapes() {
		o := objects.NewShape(shape, s.sprites, s.camera)
		if err := s.entities.AddChild(o.GetID(), o); err != nil {
			return fmt.Errorf("failed to add shape: %v", err)
		}
		s.shapes = append(s.shapes, o)
	}
	return nil
}

func (s *GameScene) removeShapes() error {
	for _, o := range s.shapes {
		if err := s.entities.RemoveChild(o.GetID()); err != nil {
			return fmt.Errorf("failed to remove shape: %v", err)
		}
	}
	s.shapes = nil
	return nil
}

func (s *GameScene) Update() error {
	s.handleControls()

	if !s.ended {
		in := input.Read(s.cfg.Screen.Width, s.cfg.Screen.Height).PlayerInput(s.camera)
		s.simulation.Tick(in)
		s.ticks++
	}

	if err := s.processEvents(); err != nil {
		return fmt.Errorf("failed to process events: %v", err)
	}

	if err := s.syncEntities(); err != nil {
		return fmt.Errorf("failed to sync entities: %v", err)
	}

	s.camera.Follow(s.state().Player.Position, s.cfg.TickSeconds())

	if s.ticks%StateShareInterval == 0 {
		s.shareState()
	}

	if err := s.BaseScene.Update(); err != nil {
		return fmt.Errorf("failed to update base scene: %v", err)
	}

	if s.state().Over && !s.ended {
		s.deathTicks++
		if float64(s.deathTicks)*s.cfg.TickSeconds() >= DeathLinger.Seconds() {
			s.End()
		}
	}

	return nil
}

func (s *GameScene) handleControls() {
	if input.IsZoomInJustPressed() {
		s.camera.ZoomIn()
		s.rememberZoom()
	}
	if input.IsZoomOutJustPressed() {
		s.camera.ZoomOut()
		s.rememberZoom()
	}
	if input.IsQuickSaveJustPressed() {
		s.quickSave()
	}
	if input.IsQuickLoadJustPressed() {
		s.quickLoad()
	}
}

func (s *GameScene) rememberZoom() {
	if s.settings != nil {
		s.settings.SetZoom(s.camera.Zoom())
	}
}

func (s *GameScene) quickSave() {
	if s.store == nil || s.state().Over {
		return
	}
	if err := s.store.Save(s.name, s.simulation.Snapshot()); err != nil {
		log.Error("Failed to save game: %v", err)
		s.showOverlay("save failed", 1500)
		return
	}
	s.showOverlay("game saved", 1000)
}

func (s *GameScene) quickLoad() {
	if s.store == nil {
		return
	}
	f, err := s.store.Load()
	if err != nil {
		if !errors.Is(err, savegame.ErrNoSave) {
			log.Error("Failed to load game: %v", err)
		}
		s.showOverlay("no saved game", 1500)
		return
	}
	if err := s.restore(f.State); err != nil {
		log.Error("Failed to restore game: %v", err)
		s.showOverlay("load failed", 1500)
		return
	}
	s.showOverlay("game loaded", 1000)
}

// restore loads a snapshot, regenerating the terrain when it was saved on
// another map.
func (s *GameScene) restore(snapshot *gametypes.GameState) error {
	simulation := s.simulation
	if snapshot.Seed != s.state().Seed {
		simulation = s.newSimulation(snapshot.Seed)
	}
	if err := simulation.Restore(snapshot); err != nil {
		return err
	}
	if simulation != s.simulation {
		s.simulation = simulation
		if err := s.removeShapes(); err != nil {
			return err
		}
		s.terrainObject.SetTerrain(s.simulation.Terrain())
		if err := s.addShapes(); err != nil {
			return err
		}
	}
	s.state().PlayerName = s.name
	s.events.ClearQueue()
	if s.deathBanner != nil {
		if err := s.effects.RemoveChild(s.deathBanner.GetID()); err != nil {
			log.Warn("Failed to remove death banner: %v", err)
		}
		s.deathBanner = nil
	}
	s.deathTicks = 0
	s.ended = false
	s.camera.SnapTo(s.state().Player.Position)
	return s.syncEntities()
}

// shareState hands a snapshot of a live session to the autosave worker.
func (s *GameScene) shareState() {
	if s.stateManager == nil || s.ended || s.state().Over {
		return
	}
	if err := s.stateManager.Set(context.Background(), s.simulation.Snapshot()); err != nil {
		log.Error("Failed to share game state: %v", err)
	}
}

// End finishes the session. The score is reported once, and the saved
// session is discarded since it can no longer be continued.
func (s *GameScene) End() {
	if s.ended {
		return
	}
	s.ended = true
	result := game.ResultFromState(s.state())
	log.Info("Session over: score %d, %d kills, wave %d in %s", result.Score, result.Kills, result.Wave, result.Duration.Round(time.Second))

	// clearing the store bumps its generation, so an autosave of a snapshot
	// taken before this point is discarded
	if s.stateManager != nil {
		if err := s.stateManager.Clear(context.Background()); err != nil {
			log.Error("Failed to clear game state: %v", err)
		}
	}
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			log.Error("Failed to clear saved game: %v", err)
		}
	}
	if s.settings != nil {
		if err := s.settings.Save(); err != nil {
			log.Warn("Failed to save settings: %v", err)
		}
	}

	if s.onEnd != nil {
		s.onEnd(result)
	}
}

func (s *GameScene) processEvents() error {
	events, err := s.events.ReadAllMessages()
	if err != nil {
		return fmt.Errorf("failed to read events: %v", err)
	}
	for _, event := range events {
		effect, ok := describeEvent(event)
		if !ok {
			continue
		}
		if effect.Overlay {
			o := s.showOverlay(effect.Text, effect.TTL)
			if _, ok := event.(*gametypes.PlayerKilledEvent); ok {
				s.deathBanner = o
			}
			continue
		}
		position := effect.Position
		if effect.AtPlayer {
			position = s.state().Player.Position
		}
		id := uuid.New().String()
		textEffect := objects.NewTextEffect(id, objects.NewTextEffectOptions{
			Text:     effect.Text,
			Position: position,
			Camera:   s.camera,
			Color:    effect.Color,
			Scroll:   true,
			TTL:      effect.TTL,
		})
		if err := s.effects.AddChild(id, textEffect); err != nil {
			return fmt.Errorf("failed to add text effect: %v", err)
		}
	}
	return nil
}

func (s *GameScene) showOverlay(text string, ttl int) objects.GameObject {
	id := uuid.New().String()
	o := objects.NewTimedTextOverlayObject(id, text, ttl)
	if err := s.effects.AddChild(id, o); err != nil {
		log.Error("Failed to add overlay: %v", err)
	}
	return o
}

// syncEntities adds an object for every new zombie and bullet and removes
// the objects of those gone from the state.
func (s *GameScene) syncEntities() error {
	gs := s.state()

	for id, z := range gs.Zombies {
		if o, ok := s.zombies[id]; ok {
			o.SetState(z)
			continue
		}
		o := objects.NewZombie(fmt.Sprintf("zombie-%d", id), objects.NewZombieOptions{
			State:        z,
			MaxHitpoints: s.cfg.Zombie.HitPoints,
			Camera:       s.camera,
			Sprites:      s.sprites,
			Debug:        s.debug,
		})
		if err := s.entities.AddChild(o.GetID(), o); err != nil {
			return fmt.Errorf("failed to add zombie: %v", err)
		}
		s.zombies[id] = o
	}
	for id, o := range s.zombies {
		if _, ok := gs.Zombies[id]; ok {
			continue
		}
		if err := s.entities.RemoveChild(o.GetID()); err != nil {
			return fmt.Errorf("failed to remove zombie: %v", err)
		}
		delete(s.zombies, id)
	}

	for id, b := range gs.Bullets {
		if o, ok := s.bullets[id]; ok {
			o.SetState(b)
			continue
		}
		o := objects.NewBullet(fmt.Sprintf("bullet-%d", id), b, s.camera)
		if err := s.entities.AddChild(o.GetID(), o); err != nil {
			return fmt.Errorf("failed to add bullet: %v", err)
		}
		s.bullets[id] = o
	}
	for id, o := range s.bullets {
		if _, ok := gs.Bullets[id]; ok {
			continue
		}
		if err := s.entities.RemoveChild(o.GetID()); err != nil {
			return fmt.Errorf("failed to remove bullet: %v", err)
		}
		delete(s.bullets, id)
	}

	return nil
}

var backgroundColor = color.RGBA{20, 24, 28, 255}

func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.BaseScene.Draw(screen)
}

func (s *GameScene) DebugStats() []string {
	gs := s.state()
	return []string{
		fmt.Sprintf("Seed: %d", gs.Seed),
		fmt.Sprintf("Zombies: %d (%d alive)", len(gs.Zombies), gs.LiveZombies()),
		fmt.Sprintf("Bullets: %d", len(gs.Bullets)),
		fmt.Sprintf("Tiles drawn: %d", s.terrainObject.Drawn()),
		fmt.Sprintf("Zoom: %.2f", s.camera.Zoom()),
	}
}
