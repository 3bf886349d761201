// Package store persists ecoplate data in a single JSON file.
//
// The file is guarded by an in-process mutex and a cross-process PID
// lockfile. Every mutation reloads the file under the lock, applies the
// change and rewrites it atomically, so check-and-insert operations such as
// AddUserBadge stay unique across concurrent CLI invocations.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/rshade/ecoplate/internal/gamification"
)

// ErrStoreCorrupted indicates the data file exists but contains invalid data
// or an incompatible schema version. Callers should abort rather than start
// fresh.
var ErrStoreCorrupted = errors.New("data file corrupted")

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidRecord is returned when a record is missing required fields.
var ErrInvalidRecord = errors.New("invalid record")

// SchemaVersion is the data-file schema version written by this build.
const SchemaVersion = "1.1.0"

// compatibleSchemas are the schema versions this build can read.
const compatibleSchemas = "^1.0.0"

// DefaultFileName is the data file name inside the ecoplate home directory.
const DefaultFileName = "data.json"

// storeData is the serialized form of the store.
type storeData struct {
	Version        string                                 `json:"version"`
	Users          map[string]*User                       `json:"users"`
	Activities     map[string]*Activity                   `json:"activities"`
	Swaps          map[string]*Swap                       `json:"swaps"`
	Challenges     map[string]*gamification.Challenge     `json:"challenges"`
	UserChallenges map[string]*gamification.UserChallenge `json:"user_challenges"`
	UserBadges     map[string]*gamification.UserBadge     `json:"user_badges"`
}

func newStoreData() *storeData {
	return &storeData{
		Version:        SchemaVersion,
		Users:          make(map[string]*User),
		Activities:     make(map[string]*Activity),
		Swaps:          make(map[string]*Swap),
		Challenges:     make(map[string]*gamification.Challenge),
		UserChallenges: make(map[string]*gamification.UserChallenge),
		UserBadges:     make(map[string]*gamification.UserBadge),
	}
}

// fillNil replaces nil maps left by an older or hand-edited file.
func (d *storeData) fillNil() {
	empty := newStoreData()
	if d.Users == nil {
		d.Users = empty.Users
	}
	if d.Activities == nil {
		d.Activities = empty.Activities
	}
	if d.Swaps == nil {
		d.Swaps = empty.Swaps
	}
	if d.Challenges == nil {
		d.Challenges = empty.Challenges
	}
	if d.UserChallenges == nil {
		d.UserChallenges = empty.UserChallenges
	}
	if d.UserBadges == nil {
		d.UserBadges = empty.UserBadges
	}
}

// FileStore manages ecoplate state persisted as a JSON file.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	data     *storeData
	newID    func() string
}

// NewFileStore creates a FileStore backed by filePath without reading it.
// If filePath is empty, it defaults to ~/.ecoplate/data.json.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determining home directory: %w", err)
		}
		filePath = filepath.Join(homeDir, ".ecoplate", DefaultFileName)
	}

	return &FileStore{
		filePath: filePath,
		data:     newStoreData(),
		newID:    NewID,
	}, nil
}

// Open creates a FileStore and loads its file.
func Open(filePath string) (*FileStore, error) {
	s, err := NewFileStore(filePath)
	if err != nil {
		return nil, err
	}
	if loadErr := s.Load(); loadErr != nil {
		return nil, loadErr
	}
	return s, nil
}

// FilePath returns the path of the data file.
func (s *FileStore) FilePath() string {
	return s.filePath
}

// Load reads the data file. A missing file yields an empty store; an
// unreadable or incompatible file yields ErrStoreCorrupted.
func (s *FileStore) Load() error {
	release, lockErr := s.lock().acquire()
	if lockErr != nil {
		return lockErr
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked()
}

// readLocked replaces the in-memory state with the file contents. Callers
// hold both locks.
func (s *FileStore) readLocked() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = newStoreData()
			return nil
		}
		return fmt.Errorf("reading data file: %w", err)
	}

	data := &storeData{}
	if unmarshalErr := json.Unmarshal(raw, data); unmarshalErr != nil {
		return fmt.Errorf("%w: %w", ErrStoreCorrupted, unmarshalErr)
	}

	if versionErr := checkSchema(data.Version); versionErr != nil {
		return versionErr
	}

	data.fillNil()
	data.Version = SchemaVersion
	s.data = data
	return nil
}

func checkSchema(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: invalid schema version %q: %w", ErrStoreCorrupted, version, err)
	}
	c, err := semver.NewConstraint(compatibleSchemas)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: unsupported schema version %s (want %s)",
			ErrStoreCorrupted, v, compatibleSchemas)
	}
	return nil
}

// writeLocked writes the in-memory state atomically. Callers hold both locks.
func (s *FileStore) writeLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling data: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(s.filePath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating data directory: %w", mkdirErr)
	}

	tmpPath := s.filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, raw, 0o600); writeErr != nil {
		return fmt.Errorf("writing data temp file: %w", writeErr)
	}

	if renameErr := os.Rename(tmpPath, s.filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming data temp file: %w", renameErr)
	}
	return nil
}

// mutate reloads the file, applies fn and writes the result, all under the
// file lock. When fn or the write fails nothing is written and the in-memory
// state is reloaded, so a partial change made by fn never becomes visible.
func (s *FileStore) mutate(fn func(d *storeData) error) error {
	release, lockErr := s.lock().acquire()
	if lockErr != nil {
		return lockErr
	}
	defer release()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.readLocked(); err != nil {
		return err
	}
	err := fn(s.data)
	if err == nil {
		err = s.writeLocked()
	}
	if err != nil {
		if reloadErr := s.readLocked(); reloadErr != nil {
			return errors.Join(err, reloadErr)
		}
		return err
	}
	return nil
}
