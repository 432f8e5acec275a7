package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"alcyxob/fitness-center/internal/domain"
)

var ErrSessionClosed = errors.New("admin session is closed or unknown")

// AdminRepositories are the stores the admin screens write to.
type AdminRepositories struct {
	Trainers    CRUD[domain.Trainer]
	Schedules   CRUD[domain.ClassSchedule]
	MealPlans   CRUD[domain.MealPlan]
	Memberships CRUD[domain.MembershipPlan]
}

// AdminConsole is the state of one admin session: one workflow per screen.
type AdminConsole struct {
	ID        string
	UserID    string
	OpenedAt  time.Time
	ExpiresAt time.Time

	Trainers    *Workflow[domain.Trainer]
	Schedules   *Workflow[domain.ClassSchedule]
	MealPlans   *Workflow[domain.MealPlan]
	Memberships *Workflow[domain.MembershipPlan]
}

// AdminSessions tracks the open admin sessions of this process. Sessions do
// not survive a restart.
type AdminSessions struct {
	repos AdminRepositories
	now   func() time.Time

	mu       sync.RWMutex
	sessions map[string]*AdminConsole
}

func NewAdminSessions(repos AdminRepositories) *AdminSessions {
	return &AdminSessions{
		repos:    repos,
		now:      time.Now,
		sessions: make(map[string]*AdminConsole),
	}
}

// Open starts a session for an administrator and returns its console. The
// session ends at expiresAt, together with the token that carries it.
func (s *AdminSessions) Open(userID string, expiresAt time.Time) *AdminConsole {
	console := &AdminConsole{
		ID:          uuid.NewString(),
		UserID:      userID,
		OpenedAt:    s.now().UTC(),
		ExpiresAt:   expiresAt.UTC(),
		Trainers:    NewWorkflow("trainers", s.repos.Trainers),
		Schedules:   NewWorkflow("schedules", s.repos.Schedules),
		MealPlans:   NewWorkflow("meal plans", s.repos.MealPlans),
		Memberships: NewWorkflow("memberships", s.repos.Memberships),
	}
	s.mu.Lock()
	s.sessions[console.ID] = console
	s.mu.Unlock()
	return console
}

// Get returns the console of an open session owned by userID. An expired
// session is dropped and reported as closed.
func (s *AdminSessions) Get(sid, userID string) (*AdminConsole, error) {
	s.mu.RLock()
	console, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok || console.UserID != userID {
		return nil, ErrSessionClosed
	}
	if console.expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	return console, nil
}

// Close ends a session. Closing an unknown session is an error.
func (s *AdminSessions) Close(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sid]; !ok {
		return ErrSessionClosed
	}
	delete(s.sessions, sid)
	return nil
}

// CloseExpired drops every session whose token has expired and reports how
// many were dropped.
func (s *AdminSessions) CloseExpired() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sid, console := range s.sessions {
		if console.expired(now) {
			delete(s.sessions, sid)
			n++
		}
	}
	return n
}

func (c *AdminConsole) expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

func (s *AdminSessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
