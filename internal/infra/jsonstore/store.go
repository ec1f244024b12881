// Package jsonstore provides a JSON file-based implementation of BoardStore.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/kanban-board/kanban/internal/domain"
)

// formatVersion is written to every store file.
const formatVersion = 1

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	domain.BoardState
	Meta meta `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version int `json:"version"`
}

// Store implements domain.BoardStore using a JSON file.
// Load takes a shared flock and Update an exclusive one held across the
// read-modify-write. Writes go through a temp file and rename so a crash
// never leaves a half-written board.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored board state.
// Returns domain.ErrNotInitialized if the file does not exist.
func (s *Store) Load() (*domain.BoardState, error) {
	var state *domain.BoardState
	err := s.withLock(syscall.LOCK_SH, func() error {
		data, err := s.read()
		if err != nil {
			return err
		}
		state = &data.BoardState
		state.Normalize()
		return nil
	})
	return state, err
}

// Update runs fn on the stored state and writes the state fn returns.
// Read, fn and write all happen under one exclusive lock, so concurrent
// updaters in this or other processes never overwrite each other.
// A nil result or an error from fn leaves the file untouched.
func (s *Store) Update(fn func(state *domain.BoardState) (*domain.BoardState, error)) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		data, err := s.read()
		if err != nil {
			return err
		}
		state := &data.BoardState
		state.Normalize()

		next, err := fn(state)
		if err != nil || next == nil {
			return err
		}
		return s.write(next)
	})
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize writes state if the store file doesn't exist.
// Returns true if the file was created.
func (s *Store) Initialize(state *domain.BoardState) (bool, error) {
	var created bool
	err := s.withLock(syscall.LOCK_EX, func() error {
		if s.IsInitialized() {
			return nil
		}
		if err := s.write(state); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// withLock runs fn while holding a flock of the given type.
func (s *Store) withLock(lockType int, fn func() error) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)
	return fn()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if data.Meta.Version > formatVersion {
		return nil, fmt.Errorf("store file version %d is newer than supported version %d", data.Meta.Version, formatVersion)
	}
	return &data, nil
}

func (s *Store) write(state *domain.BoardState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data := storeData{BoardState: *state, Meta: meta{Version: formatVersion}}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

var (
	_ domain.BoardStore       = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
