package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/vssouza/rankings-core/internal/domain/outcome"
)

// tournamentState is everything retained for one tournament between
// engine calls.
type tournamentState struct {
	roster     []string
	rosterSet  map[string]bool
	outcomes   []outcome.MatchOutcome
	retired    map[string]bool
	downfloats map[string]int
}

// MemStore implements Store in process memory, guarded by a single
// mutex. Engine calls are pure, so the store is the only shared state
// and the lock is held briefly.
type MemStore struct {
	mu          sync.RWMutex
	tournaments map[string]*tournamentState
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{tournaments: make(map[string]*tournamentState)}
}

func (s *MemStore) get(tournamentID string) (*tournamentState, error) {
	t, ok := s.tournaments[tournamentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTournament, tournamentID)
	}
	return t, nil
}

// Register creates a tournament with the given roster.
func (s *MemStore) Register(_ context.Context, tournamentID string, roster []string) error {
	if tournamentID == "" {
		return fmt.Errorf("%w: empty tournament id", ErrUnknownTournament)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tournaments[tournamentID]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, tournamentID)
	}
	t := &tournamentState{
		rosterSet:  make(map[string]bool, len(roster)),
		retired:    make(map[string]bool),
		downfloats: make(map[string]int),
	}
	for _, id := range roster {
		if id == "" || t.rosterSet[id] {
			return fmt.Errorf("%w: %q", ErrUnknownCompetitor, id)
		}
		t.rosterSet[id] = true
		t.roster = append(t.roster, id)
	}
	s.tournaments[tournamentID] = t
	return nil
}

// Roster returns the registered competitor ids in registration order.
func (s *MemStore) Roster(_ context.Context, tournamentID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.roster...), nil
}

// AppendOutcomes appends reported records to the ledger.
func (s *MemStore) AppendOutcomes(_ context.Context, tournamentID string, records []outcome.MatchOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return err
	}
	for i, rec := range records {
		if !t.rosterSet[rec.CompetitorID] {
			return fmt.Errorf("record %d: %w: %s", i, ErrUnknownCompetitor, rec.CompetitorID)
		}
		if rec.OpponentID != "" && !t.rosterSet[rec.OpponentID] {
			return fmt.Errorf("record %d: %w: %s", i, ErrUnknownCompetitor, rec.OpponentID)
		}
	}
	t.outcomes = append(t.outcomes, records...)
	return nil
}

// Outcomes returns the full reported ledger in report order.
func (s *MemStore) Outcomes(_ context.Context, tournamentID string) ([]outcome.MatchOutcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return nil, err
	}
	return append([]outcome.MatchOutcome(nil), t.outcomes...), nil
}

// Retire marks a competitor withdrawn.
func (s *MemStore) Retire(_ context.Context, tournamentID, competitorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return err
	}
	if !t.rosterSet[competitorID] {
		return fmt.Errorf("%w: %s", ErrUnknownCompetitor, competitorID)
	}
	t.retired[competitorID] = true
	return nil
}

// Retired returns the withdrawn set.
func (s *MemStore) Retired(_ context.Context, tournamentID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(t.retired))
	for id := range t.retired {
		out[id] = true
	}
	return out, nil
}

// SetDownfloats replaces the stored downfloat counters.
func (s *MemStore) SetDownfloats(_ context.Context, tournamentID string, counts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return err
	}
	t.downfloats = make(map[string]int, len(counts))
	for id, n := range counts {
		t.downfloats[id] = n
	}
	return nil
}

// Downfloats returns the stored downfloat counters.
func (s *MemStore) Downfloats(_ context.Context, tournamentID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.get(tournamentID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(t.downfloats))
	for id, n := range t.downfloats {
		out[id] = n
	}
	return out, nil
}
