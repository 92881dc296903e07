package game

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for hosts running without Redis and for
// tests. One mutex covers records and offers so Update stays atomic across
// both, matching the transactional guarantee of the Redis store.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint64
	games  map[uint64]*Record
	offers map[uint64]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:  make(map[uint64]*Record),
		offers: make(map[uint64]map[string]struct{}),
	}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) AllocateID(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID, nil
}

func (s *MemoryStore) Create(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.games[rec.ID]; exists {
		return ErrGameAlreadyExists
	}
	s.games[rec.ID] = rec.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uint64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotExist
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id uint64, fn UpdateFunc) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotExist
	}

	offers := make(map[string]struct{}, len(s.offers[id]))
	for p := range s.offers[id] {
		offers[p] = struct{}{}
	}

	// fn works on a copy; nothing is published until it succeeds
	rec := stored.Clone()
	ops, err := fn(rec, offers)
	if err != nil {
		return nil, err
	}

	s.games[id] = rec
	if ops.ClearOffers {
		delete(s.offers, id)
	} else if ops.AddOffer != "" {
		if s.offers[id] == nil {
			s.offers[id] = make(map[string]struct{})
		}
		s.offers[id][ops.AddOffer] = struct{}{}
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) HasOffer(ctx context.Context, id uint64, player string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.offers[id][player]
	return ok, nil
}

func (s *MemoryStore) RecordOffer(ctx context.Context, id uint64, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offers[id] == nil {
		s.offers[id] = make(map[string]struct{})
	}
	s.offers[id][player] = struct{}{}
	return nil
}

func (s *MemoryStore) ClearOffers(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offers, id)
	return nil
}
