package storage

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/pouch-estimator/internal/wizard"
)

const (
	// DefaultTTL is how long an untouched session survives.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxSessions caps the number of sessions held in memory.
	DefaultMaxSessions = 10_000
)

var (
	// ErrNotFound indicates the session does not exist or has expired.
	ErrNotFound = errors.New("wizard session not found")
	// ErrCapacity indicates no further sessions can be created.
	ErrCapacity = errors.New("wizard session capacity reached")
)

// Storage keeps wizard sessions. Work on one session is serialized; distinct
// sessions never share state.
type Storage interface {
	Create(w *wizard.Controller) (string, error)
	With(id string, fn func(w *wizard.Controller) error) error
	Delete(id string) error
	Len() int
}

type session struct {
	mu       sync.Mutex
	wizard   *wizard.Controller
	lastSeen atomic.Int64
}

// MemoryStorage keeps sessions in a map guarded by a RWMutex.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]*session

	ttl         time.Duration
	maxSessions int
	clock       func() time.Time
	newID       func() string
	onResize    func(int)
}

// Option configures MemoryStorage.
type Option func(*MemoryStorage)

// WithTTL sets the idle expiry. Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *MemoryStorage) {
		s.ttl = ttl
	}
}

// WithMaxSessions caps the number of live sessions. Zero or negative means
// unlimited.
func WithMaxSessions(n int) Option {
	return func(s *MemoryStorage) {
		s.maxSessions = n
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStorage) {
		s.clock = clock
	}
}

// WithIDGenerator overrides session id generation, primarily for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *MemoryStorage) {
		s.newID = fn
	}
}

// WithResizeObserver is called with the session count after it changes.
func WithResizeObserver(fn func(int)) Option {
	return func(s *MemoryStorage) {
		s.onResize = fn
	}
}

// NewMemoryStorage creates an empty store.
func NewMemoryStorage(opts ...Option) *MemoryStorage {
	s := &MemoryStorage{
		sessions:    make(map[string]*session),
		ttl:         DefaultTTL,
		maxSessions: DefaultMaxSessions,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: func() string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores w under a fresh id.
func (s *MemoryStorage) Create(w *wizard.Controller) (string, error) {
	now := s.clock()

	s.mu.Lock()
	s.sweepLocked(now)
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.mu.Unlock()
		return "", ErrCapacity
	}
	id := s.newID()
	sess := &session{wizard: w}
	sess.lastSeen.Store(now.UnixNano())
	s.sessions[id] = sess
	size := len(s.sessions)
	s.mu.Unlock()

	s.resized(size)
	return id, nil
}

// With runs fn with exclusive access to the session's wizard.
func (s *MemoryStorage) With(id string, fn func(w *wizard.Controller) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	now := s.clock()
	if s.expired(sess, now) {
		_ = s.Delete(id)
		return ErrNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen.Store(now.UnixNano())
	return fn(sess.wizard)
}

// Delete removes a session.
func (s *MemoryStorage) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.sessions, id)
	size := len(s.sessions)
	s.mu.Unlock()

	s.resized(size)
	return nil
}

// Len returns the number of stored sessions, expired ones included until
// the next sweep.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStorage) Sweep() int {
	s.mu.Lock()
	removed := s.sweepLocked(s.clock())
	size := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.resized(size)
	}
	return removed
}

func (s *MemoryStorage) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryStorage) expired(sess *session, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	return now.Sub(time.Unix(0, sess.lastSeen.Load())) > s.ttl
}

func (s *MemoryStorage) resized(size int) {
	if s.onResize != nil {
		s.onResize(size)
	}
}
