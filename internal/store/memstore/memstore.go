// Package memstore is an in-process profile store for tests, practice
// sessions without a database, and the acceptance suite.
package memstore

import (
	"context"
	"sync"

	"github.com/abhisek/literacyhub/internal/ledger"
	"github.com/abhisek/literacyhub/internal/store"
)

// Store keeps profiles in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	profiles map[string]ledger.Profile

	// Loads and Updates count calls, for assertions in tests.
	Loads   int
	Updates int

	// LoadErr and UpdateErr, when set, are returned as store failures.
	LoadErr   error
	UpdateErr error
}

var _ store.Backend = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{profiles: make(map[string]ledger.Profile)}
}

// LoadProfile implements store.ProfileStore.
func (s *Store) LoadProfile(_ context.Context, learnerID string) (*ledger.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Loads++
	if s.LoadErr != nil {
		return nil, store.Failure("load profile", s.LoadErr)
	}
	p, ok := s.profiles[learnerID]
	if !ok {
		return nil, nil
	}
	out := ledger.Sanitize(p)
	return &out, nil
}

// UpdateProfile implements store.ProfileStore.
func (s *Store) UpdateProfile(_ context.Context, learnerID string, p ledger.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Updates++
	if s.UpdateErr != nil {
		return store.Failure("update profile", s.UpdateErr)
	}
	s.profiles[learnerID] = p.Clone()
	return nil
}

// DeleteProfile implements store.Backend.
func (s *Store) DeleteProfile(_ context.Context, learnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, learnerID)
	return nil
}

// Put seeds a profile without counting as an update.
func (s *Store) Put(learnerID string, p ledger.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[learnerID] = p.Clone()
}

// Close implements store.Backend.
func (s *Store) Close() error { return nil }
