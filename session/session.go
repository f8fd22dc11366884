// Package session holds the authenticated identity for one process. It is
// injected where needed (the API client reads the token from it) rather than
// read ambiently, and it touches persistent storage only at explicit
// process-boundary hooks: Restore on startup, Persist on login, Clear on
// logout.
package session

import (
	"fmt"
	"sync"

	"humordrop/feed"
)

// Storage persists a session across runs. *store.Store implements it.
type Storage interface {
	SaveSession(user feed.User, token string) error
	LoadSession() (*feed.User, string, error)
	ClearSession() error
}

// Session is the current user plus bearer token. The zero state is logged
// out. Safe for concurrent reads while a login/logout happens elsewhere.
type Session struct {
	mu    sync.RWMutex
	user  *feed.User
	token string
}

// New returns a logged-out session.
func New() *Session {
	return &Session{}
}

// Restore loads the persisted session, if any, into a new Session.
func Restore(st Storage) (*Session, error) {
	s := New()
	user, token, err := st.LoadSession()
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	if user != nil && token != "" {
		s.user = user
		s.token = token
	}
	return s, nil
}

// Begin replaces the session identity after a successful login or signup.
func (s *Session) Begin(user feed.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.token = token
}

// End clears the in-memory identity.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// Persist writes the current identity through st. Call after Begin.
func (s *Session) Persist(st Storage) error {
	s.mu.RLock()
	user, token := s.user, s.token
	s.mu.RUnlock()
	if user == nil || token == "" {
		return st.ClearSession()
	}
	if err := st.SaveSession(*user, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user, if any.
func (s *Session) User() (feed.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return feed.User{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a token is present.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
