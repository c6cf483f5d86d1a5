// Package theme owns the light/dark display preference. A Manager is created
// once per rendering context, reads the persisted value on construction and
// writes it back on every toggle; nothing needs tearing down.
package theme

import (
	"sync"

	"github.com/Zachkp/portfolio/internal/logger"
)

// Key is the storage key the preference lives under.
const Key = "theme"

const (
	Dark  = "dark"
	Light = "light"
)

// Store is durable key/value storage for the preference.
type Store interface {
	Load() (string, error)
	Save(value string) error
}

// Manager holds the current preference and keeps it in sync with its Store.
type Manager struct {
	mu    sync.RWMutex
	dark  bool
	store Store
	log   *logger.Logger
}

// New reads the persisted preference. Anything other than "dark", including
// a failed read, starts in light mode.
func New(store Store, log *logger.Logger) *Manager {
	m := &Manager{store: store, log: log}
	if store == nil {
		return m
	}
	value, err := store.Load()
	if err != nil {
		log.Debug("theme preference unreadable, using light")
		return m
	}
	m.dark = value == Dark
	return m
}

// IsDark reports the current preference.
func (m *Manager) IsDark() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dark
}

// Value returns the persisted form of the current preference.
func (m *Manager) Value() string {
	return valueOf(m.IsDark())
}

// RootClass is the style marker applied to the root container: "dark" or empty.
func (m *Manager) RootClass() string {
	if m.IsDark() {
		return Dark
	}
	return ""
}

// Toggle flips the preference and persists it. Write failures are logged and
// do not undo the in-memory change.
func (m *Manager) Toggle() bool {
	m.mu.Lock()
	m.dark = !m.dark
	dark := m.dark
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Save(valueOf(dark)); err != nil {
			m.log.Error(err, "failed to persist theme preference")
		}
	}
	return dark
}

func valueOf(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}

// MemoryStore keeps the preference in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
	set   bool
}

// NewMemoryStore returns a store preloaded with value when value is non-empty.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value, set: value != ""}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", ErrNotSet
	}
	return s.value, nil
}

func (s *MemoryStore) Save(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value, s.set = value, true
	return nil
}
