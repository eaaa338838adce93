// Package localstore persists client-local state (goal minutes and the active
// timer) in a JSON file guarded by an advisory file lock.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/worklog/internal/domain"
)

// Ensure Store implements domain.LocalStateStore.
var _ domain.LocalStateStore = (*Store)(nil)

// storeData represents the JSON file structure.
type storeData struct {
	State   domain.LocalState `json:"state"`
	Version int               `json:"version"`
}

const currentVersion = 1

// Store implements domain.LocalStateStore using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current state. A missing file yields an empty state.
func (s *Store) Load() (*domain.LocalState, error) {
	var state *domain.LocalState
	err := s.withLock(func(data *storeData) error {
		state = &data.State
		return nil
	})
	return state, err
}

// Update runs fn under an exclusive lock and writes the result.
func (s *Store) Update(fn func(*domain.LocalState) error) error {
	return s.withLockWrite(func(data *storeData) error {
		return fn(&data.State)
	})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
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
		if errors.Is(err, os.ErrNotExist) {
			return &storeData{
				Version: currentVersion,
				State:   domain.LocalState{Goals: domain.GoalMinutes{}},
			}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStateCorrupted, err)
	}

	if data.State.Goals == nil {
		data.State.Goals = domain.GoalMinutes{}
	}
	if data.Version == 0 {
		data.Version = currentVersion
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
