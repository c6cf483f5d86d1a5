package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"
)

// ErrNotSet is returned by stores that hold no preference yet.
var ErrNotSet = errors.New("theme preference not set")

// FileStore persists preferences as a flat YAML map. Other keys in the file
// are preserved on save.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (string, error) {
	prefs, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := prefs[Key]
	if !ok {
		return "", ErrNotSet
	}
	return value, nil
}

func (s *FileStore) Save(value string) error {
	prefs, err := s.read()
	if err != nil && !errors.Is(err, ErrNotSet) {
		return err
	}
	if prefs == nil {
		prefs = make(map[string]string)
	}
	prefs[Key] = value

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotSet
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	prefs := make(map[string]string)
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, nil
}
