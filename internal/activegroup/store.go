// Package activegroup holds the process's currently selected group: a
// single durable slot, re-synced whenever the backing storage changes
// underneath us.
package activegroup

import (
	"context"
	"encoding/json"
	"sync"

	"pact/internal/group"
)

// StorageKey is the fixed key the active group persists under.
const StorageKey = "active_group"

// Storage is the durable key-value primitive the store persists to.
// Read reports ok=false for a missing key.
type Storage interface {
	Read(key string) (value []byte, ok bool, err error)
	Write(key string, value []byte) error
	Delete(key string) error
}

// Store is the single-slot active group context. All methods are safe
// for concurrent use.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	current *group.Group
}

// New builds the store and immediately syncs the slot from storage.
func New(storage Storage) *Store {
	s := &Store{storage: storage}
	s.SyncFromStorage()
	return s
}

// Get returns the active group, if any.
func (s *Store) Get() (group.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return group.Group{}, false
	}
	return *s.current, true
}

// GroupID returns the active group's id, if any.
func (s *Store) GroupID() (uint64, bool) {
	g, ok := s.Get()
	if !ok {
		return 0, false
	}
	return g.ID, true
}

// Set persists the full group record and updates the slot.
func (s *Store) Set(g group.Group) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	if err := s.storage.Write(StorageKey, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &g
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted value and empties the slot.
func (s *Store) Clear() error {
	if err := s.storage.Delete(StorageKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// SyncFromStorage re-reads the persisted value into the slot. Missing
// or corrupt data resets to "no active group"; it never fails the
// caller. Re-running with an unchanged value is a no-op.
func (s *Store) SyncFromStorage() {
	var next *group.Group
	if raw, ok, err := s.storage.Read(StorageKey); err == nil && ok {
		var g group.Group
		if json.Unmarshal(raw, &g) == nil {
			next = &g
		}
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// Watch re-syncs the slot whenever an external change notification for
// the storage key arrives. Blocks until ctx is done or events closes.
func (s *Store) Watch(ctx context.Context, events <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-events:
			if !ok {
				return
			}
			if key == StorageKey {
				s.SyncFromStorage()
			}
		}
	}
}
