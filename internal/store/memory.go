package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"merch/internal/game"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrWeekNotFound    = errors.New("week not found")
	ErrWeekExists      = errors.New("week already ingested")
	ErrOutOfOrder      = errors.New("weeks must be ingested in order")
)

// Week pairs a committed snapshot with the ledger rows recorded for the
// transition into it.
type Week struct {
	State  game.GameWeekState
	Ledger []game.LedgerEntry
}

type session struct {
	weeks map[int]Week
}

// SessionStore keeps per-session week history in memory. Snapshots are
// immutable once ingested and must arrive in week order.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

func (s *SessionStore) CreateSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{weeks: make(map[int]Week)}
	s.mu.Unlock()
	return id
}

func (s *SessionStore) PutWeek(sessionID string, state game.GameWeekState, ledger []game.LedgerEntry) error {
	if err := game.ValidateWeekNumber(state.WeekNumber); err != nil {
		return err
	}
	if err := game.ValidateLedger(ledger, state.WeekNumber); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if _, ok := sess.weeks[state.WeekNumber]; ok {
		return fmt.Errorf("%w: week %d", ErrWeekExists, state.WeekNumber)
	}
	if len(sess.weeks) == 0 {
		if state.WeekNumber > 1 {
			return fmt.Errorf("%w: first ingest must be week 0 or 1, got %d", ErrOutOfOrder, state.WeekNumber)
		}
	} else if _, ok := sess.weeks[state.WeekNumber-1]; !ok {
		return fmt.Errorf("%w: week %d before week %d", ErrOutOfOrder, state.WeekNumber, state.WeekNumber-1)
	}

	sess.weeks[state.WeekNumber] = Week{State: state, Ledger: ledger}
	return nil
}

func (s *SessionStore) GetWeek(sessionID string, week int) (Week, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return Week{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	w, ok := sess.weeks[week]
	if !ok {
		return Week{}, fmt.Errorf("%w: week %d", ErrWeekNotFound, week)
	}
	return w, nil
}

// History returns all ingested states in week order.
func (s *SessionStore) History(sessionID string) ([]*game.GameWeekState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	out := make([]*game.GameWeekState, 0, len(sess.weeks))
	for _, w := range sess.weeks {
		state := w.State
		out = append(out, &state)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekNumber < out[j].WeekNumber })
	return out, nil
}
