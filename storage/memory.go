package storage

import (
	"context"
	"sync"
	"time"

	"github.com/CreativeUnicorns/vaultprefs"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// Nothing survives a restart; it suits tests and throwaway profiles.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]map[string]*vaultprefs.Entry // profileID -> key -> Entry
}

// NewMemoryStorage creates a new instance of MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]map[string]*vaultprefs.Entry),
	}
}

// Get retrieves the entry for a profile and key.
// It returns vaultprefs.ErrNotFound if the entry does not exist.
func (s *MemoryStorage) Get(_ context.Context, profileID, key string) (*vaultprefs.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.entries[profileID]
	if !ok {
		return nil, vaultprefs.ErrNotFound
	}

	e, ok := profile[key]
	if !ok {
		return nil, vaultprefs.ErrNotFound
	}

	entryCopy := *e
	return &entryCopy, nil
}

// Set stores a copy of the entry. A zero UpdatedAt is replaced with the current time.
func (s *MemoryStorage) Set(_ context.Context, e *vaultprefs.Entry) error {
	if e == nil || e.ProfileID == "" || e.Key == "" {
		return vaultprefs.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.ProfileID]; !ok {
		s.entries[e.ProfileID] = make(map[string]*vaultprefs.Entry)
	}

	toStore := *e
	if toStore.UpdatedAt.IsZero() {
		toStore.UpdatedAt = time.Now()
	}
	s.entries[e.ProfileID][e.Key] = &toStore
	return nil
}

// Delete removes the entry for a profile and key.
// It returns vaultprefs.ErrNotFound if there was nothing to remove.
func (s *MemoryStorage) Delete(_ context.Context, profileID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.entries[profileID]
	if !ok {
		return vaultprefs.ErrNotFound
	}
	if _, ok := profile[key]; !ok {
		return vaultprefs.ErrNotFound
	}

	delete(profile, key)
	if len(profile) == 0 {
		delete(s.entries, profileID)
	}
	return nil
}

// GetAll returns copies of every entry of a profile.
func (s *MemoryStorage) GetAll(_ context.Context, profileID string) (map[string]*vaultprefs.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile := s.entries[profileID]
	out := make(map[string]*vaultprefs.Entry, len(profile))
	for k, v := range profile {
		entryCopy := *v
		out[k] = &entryCopy
	}
	return out, nil
}

// Close is a no-op for MemoryStorage as there are no external resources to release.
func (s *MemoryStorage) Close() error {
	return nil
}
