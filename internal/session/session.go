// Package session holds the client's belief about who is logged in.
//
// State changes go through an enumerated set of transitions; there is no
// ambient mutation. Every transition that changes the authenticated
// identity writes a subset of the state through to durable storage, so a
// later process start can rehydrate without asking the server first. The
// invariant IsAuthenticated == (User != nil) holds after every transition.
package session

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/api"
)

// Session is a snapshot of the authentication state.
type Session struct {
	IsAuthenticated bool
	User            *api.User
	IsLoading       bool

	// SkipRevalidation is a one-shot flag set by LoginSuccess and consumed
	// by the next guard activation, so a just-established session is not
	// immediately re-checked against the server.
	SkipRevalidation bool
}

// Record is the persisted subset of a Session.
type Record struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *api.User `json:"user"`
}

// Persister stores and retrieves the persisted session record.
type Persister interface {
	Load() (*Record, error)
	Save(Record) error
	Clear() error
}

// Store is the process-wide session state.
type Store struct {
	mu        sync.Mutex
	state     Session
	persister Persister
	logger    *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for storage failures, which are
// non-fatal and only ever reported at debug level.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store rehydrated from the persister. A missing,
// unreadable, or malformed record yields the zero session; rehydration
// never fails.
func NewStore(p Persister, opts ...StoreOption) *Store {
	s := &Store{
		persister: p,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = rehydrate(p, s.logger)
	return s
}

// rehydrate maps a persisted record (or its absence) to an initial session.
func rehydrate(p Persister, logger *log.Logger) Session {
	if p == nil {
		return Session{}
	}
	rec, err := p.Load()
	if err != nil {
		logger.Debug("session rehydrate failed, starting logged out", "err", err)
		return Session{}
	}
	if rec == nil {
		return Session{}
	}
	// A record claiming authentication without a user (or vice versa) is
	// corrupt; treat it as no session.
	if rec.IsAuthenticated != (rec.User != nil) {
		logger.Debug("session record inconsistent, starting logged out")
		return Session{}
	}
	return Session{
		IsAuthenticated: rec.IsAuthenticated,
		User:            rec.User,
	}
}

// persistedSubset maps a full session to the record written to storage.
func persistedSubset(s Session) Record {
	return Record{
		IsAuthenticated: s.IsAuthenticated,
		User:            s.User,
	}
}

// Get returns a snapshot of the current session.
func (s *Store) Get() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetLoading marks a revalidation as in flight (or finished).
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = loading
}

// LoginSuccess installs a freshly authenticated user and arms the one-shot
// revalidation skip.
func (s *Store) LoginSuccess(u *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsAuthenticated = true
	s.state.User = u
	s.state.IsLoading = false
	s.state.SkipRevalidation = true
	s.persistLocked()
}

// SetUser replaces the current user. A nil user demotes the session to
// logged out, but unlike Logout the demotion itself is persisted: storage
// ends up holding an explicit not-authenticated record.
func (s *Store) SetUser(u *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = u
	s.state.IsAuthenticated = u != nil
	s.state.IsLoading = false
	s.persistLocked()
}

// Logout resets the session to its zero value and removes the persisted
// record entirely.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Session{}
	if s.persister == nil {
		return
	}
	if err := s.persister.Clear(); err != nil {
		s.logger.Debug("session clear failed", "err", err)
	}
}

// ClearSkipRevalidation consumes the one-shot skip flag.
func (s *Store) ClearSkipRevalidation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SkipRevalidation = false
}

// persistLocked writes the persisted subset through to storage. Failures
// are swallowed: losing persistence degrades to a revalidation on next
// start, never to a broken session.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(persistedSubset(s.state)); err != nil {
		s.logger.Debug("session persist failed", "err", err)
	}
}
