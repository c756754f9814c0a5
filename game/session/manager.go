package session

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/config"
	"github.com/wricardo/mcp-training/pipeworks/game/engine"
	"github.com/wricardo/mcp-training/pipeworks/game/view"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoConfigs       = errors.New("no map configurations available")
)

// BuiltinID keys the session of the built-in map, used when the config
// directory has no valid files
const BuiltinID = "default"

// Session is one open map: its engine plus the view state the front ends
// keep for it.
type Session struct {
	ID             string
	ConfigID       string
	Config         *engine.MapConfig
	Catalog        *catalog.Catalog
	Engine         *engine.GameEngine
	Camera         *view.Camera
	Controls       *view.Controls
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Manager handles session lifecycle, holding at most one session per map
// configuration.
type Manager struct {
	configs  *config.Manager
	sessions map[string]*Session // by session id
	byConfig map[string]*Session
	debug    bool
	mu       sync.RWMutex
}

// NewManager creates a new session manager over a config manager
func NewManager(configs *config.Manager) *Manager {
	return &Manager{
		configs:  configs,
		sessions: make(map[string]*Session),
		byConfig: make(map[string]*Session),
	}
}

// SetDebug turns on engine debug logging for sessions opened afterwards
func (m *Manager) SetDebug(debug bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debug = debug
}

// Open returns the session for a map config, creating it on first use.
// Names with and without a file extension share a session. An empty
// configID opens the default config.
func (m *Manager) Open(configID string) (*Session, error) {
	name := configID
	if name == "" {
		name = m.configs.DefaultID()
		if name == "" {
			name = BuiltinID
		}
	}
	key := config.ID(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.byConfig[key]; ok {
		s.LastAccessedAt = time.Now()
		return s, nil
	}

	cfg, err := m.loadConfig(name)
	if err != nil {
		return nil, err
	}
	// The cached config is shared; the session owns a copy
	own := *cfg

	cat, err := m.configs.LoadCatalog(&own)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for %s: %w", key, err)
	}

	eng, err := engine.NewEngine(&own, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	eng.SetDebug(m.debug)

	cam := view.NewCamera(own.Camera)
	cam.CenterOn(own.Size(), own.TileSize)

	now := time.Now()
	s := &Session{
		ID:             uuid.NewString(),
		ConfigID:       key,
		Config:         &own,
		Catalog:        cat,
		Engine:         eng,
		Camera:         cam,
		Controls:       view.NewControls(&own),
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[s.ID] = s
	m.byConfig[key] = s

	log.Printf("Opened session %s for map %q (%dx%d, %d tiles in catalog)", s.ID, own.Name, own.Width, own.Height, cat.Len())
	return s, nil
}

func (m *Manager) loadConfig(name string) (*engine.MapConfig, error) {
	if name == BuiltinID && m.configs.DefaultID() == "" {
		return m.configs.GetDefault(), nil
	}
	cfg, err := m.configs.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", name, err)
	}
	return cfg, nil
}

// Next opens the session of the map config after the current one, in
// config id order, wrapping around.
func (m *Manager) Next(current *Session) (*Session, error) {
	infos, err := m.configs.ListConfigs()
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		if current != nil {
			return current, nil
		}
		return nil, ErrNoConfigs
	}

	next := infos[0].ConfigID
	if current != nil {
		for i, info := range infos {
			if info.ConfigID == current.ConfigID {
				next = infos[(i+1)%len(infos)].ConfigID
				break
			}
		}
	}
	return m.Open(next)
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// List returns all sessions, oldest first
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

// Delete removes a session. Opening its map again starts from a fresh map.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, s.ID)
	delete(m.byConfig, s.ConfigID)
	return nil
}

// Count returns the number of open sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
