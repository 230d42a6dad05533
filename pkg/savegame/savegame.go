// Package savegame stores a single quick-save slot of a running session.
// Saves are JSON compressed with zstd.
package savegame

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/version"
	"github.com/klauspost/compress/zstd"
	"github.com/quasilyte/gdata/v2"
)

const (
	saveObject   = "save"
	saveProperty = "slot"
)

var (
	ErrNoSave = errors.New("no saved game")
	// ErrStaleSave is returned by SaveAt when the slot was cleared after
	// the generation was read.
	ErrStaleSave = errors.New("save slot was cleared")
)

// File is what goes into the save slot.
type File struct {
	Version string               `json:"version"`
	SavedAt int64                `json:"savedAt"`
	Name    string               `json:"name"`
	State   *gametypes.GameState `json:"state"`
}

func Encode(f *File) ([]byte, error) {
	if f == nil || f.State == nil {
		return nil, fmt.Errorf("save has no game state")
	}

	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save: %v", err)
	}

	compressed := bytes.NewBuffer(nil)
	compWriter, err := zstd.NewWriter(compressed, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd writer: %v", err)
	}
	if _, err := compWriter.Write(b); err != nil {
		return nil, fmt.Errorf("failed to compress save: %v", err)
	}
	if err := compWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zstd writer: %v", err)
	}

	return compressed.Bytes(), nil
}

func Decode(data []byte) (*File, error) {
	compReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %v", err)
	}
	defer compReader.Close()

	b, err := io.ReadAll(compReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read decompressed save: %v", err)
	}

	f := &File{}
	if err := json.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save: %v", err)
	}
	if f.State == nil || f.State.Player == nil {
		return nil, fmt.Errorf("save has no game state")
	}
	if f.State.Zombies == nil {
		f.State.Zombies = make(map[uint32]*gametypes.ZombieState)
	}
	if f.State.Bullets == nil {
		f.State.Bullets = make(map[uint32]*gametypes.BulletState)
	}
	return f, nil
}

// Store keeps one save slot in the user's data directory.
// A Store with a nil gdata manager keeps the slot in memory.
type Store struct {
	mu     sync.Mutex
	data   *gdata.Manager
	memory []byte
	// generation goes up on every Clear
	generation uint64
}

func NewStore(data *gdata.Manager) *Store {
	return &Store{data: data}
}

// Generation identifies the slot between two calls to Clear.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Save writes the game state to the slot, replacing any previous save.
func (s *Store) Save(name string, gameState *gametypes.GameState) error {
	b, err := encodeState(name, gameState)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(b)
}

// SaveAt is Save for a snapshot taken at generation. It writes nothing and
// returns ErrStaleSave when the slot was cleared since.
func (s *Store) SaveAt(generation uint64, name string, gameState *gametypes.GameState) error {
	b, err := encodeState(name, gameState)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return ErrStaleSave
	}
	return s.store(b)
}

func encodeState(name string, gameState *gametypes.GameState) ([]byte, error) {
	return Encode(&File{
		Version: version.Get(),
		SavedAt: time.Now().UnixMilli(),
		Name:    name,
		State:   gameState,
	})
}

func (s *Store) store(b []byte) error {
	if err := s.write(b); err != nil {
		return fmt.Errorf("failed to save game: %v", err)
	}
	log.Debug("Saved game (%d bytes)", len(b))
	return nil
}

// Load reads the slot. It returns ErrNoSave when the slot is empty.
func (s *Store) Load() (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %v", err)
	}
	if len(b) == 0 {
		return nil, ErrNoSave
	}
	return Decode(b)
}

// Clear empties the slot. Snapshots taken before it can no longer be
// written with SaveAt.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.write(nil); err != nil {
		return fmt.Errorf("failed to clear save: %v", err)
	}
	return nil
}

func (s *Store) write(b []byte) error {
	if s.data == nil {
		s.memory = b
		return nil
	}
	if b == nil {
		b = []byte{}
	}
	return s.data.SaveObjectProp(saveObject, saveProperty, b)
}

func (s *Store) read() ([]byte, error) {
	if s.data == nil {
		return s.memory, nil
	}
	if !s.data.ObjectPropExists(saveObject, saveProperty) {
		return nil, nil
	}
	return s.data.LoadObjectProp(saveObject, saveProperty)
}
