package sessions

import (
	"context"
	"sync"
	"time"

	"contracheque/internal/domain/payroll"
)

type entry struct {
	session   payroll.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Expired entries are dropped lazily
// on access and by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (payroll.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return payroll.Session{}, payroll.ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return payroll.Session{}, payroll.ErrSessionNotFound
	}
	return cloneSession(e.session), nil
}

func (s *MemoryStore) Save(_ context.Context, session payroll.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = entry{
		session:   cloneSession(session),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func cloneSession(in payroll.Session) payroll.Session {
	out := in
	if in.UnionTypes != nil {
		out.UnionTypes = append([]payroll.UnionType(nil), in.UnionTypes...)
	}
	return out
}
