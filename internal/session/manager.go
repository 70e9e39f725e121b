package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Akhil21232123/hirematrix/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired signals that the countdown hit zero before the event
	// could be accepted; the accompanying commands carry the termination.
	ErrSessionExpired = errors.New("session deadline expired")
)

// Manager holds every live session behind a mutex. All event application
// goes through Apply so the countdown is checked before any other input.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uint]*Session
	now      func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[uint]*Session),
		now:      time.Now,
	}
}

// Create registers a fresh session for a candidate who just passed
// registration. The session starts at round 1 in REGISTRATION state.
func (m *Manager) Create(candidateID uint, name, role, seniority, difficulty string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		CandidateID:  candidateID,
		Name:         name,
		Role:         role,
		Seniority:    seniority,
		Difficulty:   difficulty,
		State:        StateRegistration,
		CurrentRound: 1,
		Integrity:    models.IntegrityStart,
	}
	m.sessions[candidateID] = s
	return *s
}

// Get returns a copy of the session, never the live pointer.
func (m *Manager) Get(candidateID uint) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[candidateID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Apply runs one event through the state machine under the lock. If the
// countdown has already expired the expiry wins: the event is discarded, the
// session is terminated with TIME_EXPIRED, and ErrSessionExpired is returned
// together with the termination commands the caller must still execute.
func (m *Manager) Apply(candidateID uint, event Event) (Session, []Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[candidateID]
	if !ok {
		return Session{}, nil, ErrSessionNotFound
	}

	if _, isExpiry := event.(DeadlineExpired); !isExpiry && m.expiredLocked(s) {
		next, cmds, err := Transition(*s, DeadlineExpired{})
		if err != nil {
			return *s, nil, err
		}
		*s = next
		return next, cmds, ErrSessionExpired
	}

	next, cmds, err := Transition(*s, event)
	if err != nil {
		return *s, nil, err
	}
	*s = next
	return next, cmds, nil
}

// Expired lists candidates whose countdown has run out, for the reaper.
func (m *Manager) Expired() []uint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var expired []uint
	for id, s := range m.sessions {
		if m.expiredLocked(s) {
			expired = append(expired, id)
		}
	}
	return expired
}

// Terminal lists candidates whose session has reached a terminal state, for
// the reaper to evict.
func (m *Manager) Terminal() []uint {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var terminal []uint
	for id, s := range m.sessions {
		if s.State.Terminal() {
			terminal = append(terminal, id)
		}
	}
	return terminal
}

// Remove drops a session, typically once it reaches a terminal state and the
// client has seen the outcome.
func (m *Manager) Remove(candidateID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, candidateID)
}

func (m *Manager) expiredLocked(s *Session) bool {
	if s.State != StateRoundActive && s.State != StateInterrogation {
		return false
	}
	return !s.Deadline.IsZero() && !m.now().Before(s.Deadline)
}
