package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	saves int
}

func (f *failingStore) Load() (string, error) { return "", errors.New("disk on fire") }
func (f *failingStore) Save(string) error {
	f.saves++
	return errors.New("disk on fire")
}

func TestNewDefaultsToLight(t *testing.T) {
	m := New(NewMemoryStore(""), nil)
	assert.False(t, m.IsDark())
	assert.Equal(t, Light, m.Value())
	assert.Equal(t, "", m.RootClass())
}

func TestNewReadsDark(t *testing.T) {
	m := New(NewMemoryStore(Dark), nil)
	assert.True(t, m.IsDark())
	assert.Equal(t, "dark", m.RootClass())
}

func TestNewTreatsUnknownValueAsLight(t *testing.T) {
	for _, v := range []string{"light", "DARK", "true", "midnight"} {
		m := New(NewMemoryStore(v), nil)
		assert.False(t, m.IsDark(), v)
	}
}

func TestNewTreatsReadFailureAsLight(t *testing.T) {
	m := New(&failingStore{}, nil)
	assert.False(t, m.IsDark())
}

func TestToggleTwiceRestoresPersistedValue(t *testing.T) {
	store := NewMemoryStore(Light)
	m := New(store, nil)

	require.True(t, m.Toggle())
	v, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Dark, v)

	require.False(t, m.Toggle())
	v, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Light, v)
}

func TestToggleKeepsStateWhenSaveFails(t *testing.T) {
	store := &failingStore{}
	m := New(store, nil)
	assert.True(t, m.Toggle())
	assert.True(t, m.IsDark())
	assert.Equal(t, 1, store.saves)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.yaml")
	store := NewFileStore(path)

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNotSet)

	m := New(store, nil)
	require.False(t, m.IsDark())
	m.Toggle()

	reloaded := New(NewFileStore(path), nil)
	assert.True(t, reloaded.IsDark())
}

func TestFileStorePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: vim\ntheme: light\n"), 0o600))

	require.NoError(t, NewFileStore(path).Save(Dark))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "editor: vim")
	assert.Contains(t, string(data), "theme: dark")
}

func TestFileStoreCorruptFileFallsBackToLight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [dark"), 0o600))

	m := New(NewFileStore(path), nil)
	assert.False(t, m.IsDark())
}
