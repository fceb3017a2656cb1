package payroll

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	// mu serialises the read-compute-write cycle of a session so two
	// recomputes cannot race on the cap warning flag.
	mu       sync.Mutex
	calc     *Calculator
	sessions SessionStore
}

func NewService(calc *Calculator, sessions SessionStore) *Service {
	return &Service{calc: calc, sessions: sessions}
}

func (s *Service) Calculator() *Calculator {
	return s.calc
}

func (s *Service) NewSession(ctx context.Context) (Session, error) {
	session := Session{ID: uuid.NewString(), UpdatedAt: time.Now().UTC()}
	if err := s.sessions.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) Session(ctx context.Context, id string) (Session, error) {
	return s.sessions.Get(ctx, id)
}

func (s *Service) EndSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// Recompute evaluates the form against the session's cached state and stores
// the updated cap warning flag.
func (s *Service) Recompute(ctx context.Context, id string, in Input) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}
	res := s.calc.Compute(&session, in)
	session.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Calculate is a one-shot evaluation with an explicit union selection. The
// cap warning fires whenever the cap is reached.
func (s *Service) Calculate(in Input, unionTypes []string) (Result, error) {
	types, err := ParseUnionTypes(unionTypes)
	if err != nil {
		return Result{}, err
	}
	session := Session{UnionTypes: types}
	return s.calc.Compute(&session, in), nil
}

// ConfirmUnion stores the types picked in the selection dialog. The returned
// flag is false when nothing was picked, in which case the contribution
// toggle must be switched off.
func (s *Service) ConfirmUnion(ctx context.Context, id string, raw []string) (Session, bool, error) {
	types, err := ParseUnionTypes(raw)
	if err != nil {
		return Session{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, false, err
	}
	selected := session.ConfirmUnion(types)
	if err := s.sessions.Save(ctx, session); err != nil {
		return Session{}, false, err
	}
	return session, selected, nil
}

func (s *Service) ClearUnion(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	session.ClearUnion()
	if err := s.sessions.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (s *Service) Roles() []RoleOption {
	return s.calc.Salaries().Roles()
}

func (s *Service) Classes(role string) []string {
	return s.calc.Salaries().Classes(role)
}

func (s *Service) Steps(role, class string) []string {
	return s.calc.Salaries().Steps(role, class)
}

func (s *Service) TaxTable() TaxTable {
	return s.calc.Taxes()
}

func ParseUnionTypes(raw []string) ([]UnionType, error) {
	types := make([]UnionType, 0, len(raw))
	for _, value := range raw {
		t, ok := ParseUnionType(value)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownUnionType, value)
		}
		types = append(types, t)
	}
	return types, nil
}
