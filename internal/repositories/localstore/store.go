// Package localstore is the degraded-mode fallback for owner-created
// locations. It is consulted only when the primary store is unreachable or
// lacks the record, never as primary storage.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"venuehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store persists a single JSON array of locations on disk. Every operation
// is one read-modify-write under the lock, so concurrent callers within
// this process cannot interleave partial states. Separate processes can
// still race; acceptable for a fallback path.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create fallback store directory: %w", err)
	}

	return &Store{path: path}, nil
}

func (s *Store) List() ([]*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

func (s *Store) Get(id primitive.ObjectID) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations, err := s.read()
	if err != nil {
		return nil, err
	}

	for _, loc := range locations {
		if loc.ID == id {
			return loc, nil
		}
	}

	return nil, models.ErrNotFound
}

func (s *Store) Append(location *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations, err := s.read()
	if err != nil {
		return err
	}

	for i, loc := range locations {
		if loc.ID == location.ID {
			locations[i] = location
			return s.write(locations)
		}
	}

	return s.write(append(locations, location))
}

// Remove deletes the record with the given id. It reports whether a record
// was present; callers use the miss to keep walking the fallback chain.
func (s *Store) Remove(id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locations, err := s.read()
	if err != nil {
		return false, err
	}

	for i, loc := range locations {
		if loc.ID == id {
			locations = append(locations[:i], locations[i+1:]...)
			return true, s.write(locations)
		}
	}

	return false, nil
}

func (s *Store) read() ([]*models.Location, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read fallback store: %w", err)
	}

	var locations []*models.Location
	if err := json.Unmarshal(data, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode fallback store: %w", err)
	}

	return locations, nil
}

func (s *Store) write(locations []*models.Location) error {
	data, err := json.MarshalIndent(locations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fallback store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write fallback store: %w", err)
	}

	return os.Rename(tmp, s.path)
}
