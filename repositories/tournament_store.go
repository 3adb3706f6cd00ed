package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/vmoreno/padel-showdown/models"
)

var (
	ErrNotFound = errors.New("tournament not found in store")
	ErrConflict = errors.New("tournament id already in store")
)

// TournamentStore holds live tournaments. The whole product is in-memory by
// design, so the only implementation is the memory store below; the
// interface keeps services decoupled from that choice.
type TournamentStore interface {
	Create(ctx context.Context, t *models.Tournament) error
	Get(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Delete(ctx context.Context, id string) error

	// Update runs fn on the live tournament under its lock. Mutating
	// operations must validate before touching state: an error from fn
	// aborts the update and the tournament is expected to be unchanged.
	Update(ctx context.Context, id string, fn func(*models.Tournament) error) error
}

// entry pairs a tournament with its own mutex, giving the single-writer
// guarantee per tournament instance without serializing the whole store.
type entry struct {
	mu sync.Mutex
	t  *models.Tournament
}

type memoryTournamentStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func NewMemoryTournamentStore() TournamentStore {
	return &memoryTournamentStore{
		entries: make(map[string]*entry),
	}
}

func (s *memoryTournamentStore) Create(_ context.Context, t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[t.ID]; exists {
		return ErrConflict
	}
	s.entries[t.ID] = &entry{t: t}
	return nil
}

func (s *memoryTournamentStore) Get(_ context.Context, id string) (*models.Tournament, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t.Clone(), nil
}

func (s *memoryTournamentStore) List(_ context.Context) ([]*models.Tournament, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]*models.Tournament, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.t.Clone())
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memoryTournamentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *memoryTournamentStore) Update(_ context.Context, id string, fn func(*models.Tournament) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.t)
}
