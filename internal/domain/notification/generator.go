// Package notification keeps per-session views over the notices derived by
// the store. Dismissing a notice only hides it in the session that dismissed
// it; opening a new session shows every notice again.
package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"github.com/vriksha-lab/backend/internal/domain/broadcast"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/pkg/errorx"
)

type Source interface {
	GetNotificationsForUser(userID string) []entity.Notification
	Subscribe(observer broadcast.Observer) func()
}

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 10000
)

type Generator struct {
	source      Source
	sessions    *xsync.MapOf[string, *Session]
	unsubscribe func()

	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time

	// Serializes creation so the size cap holds.
	createMu sync.Mutex
}

type Option func(*Generator)

// WithIdleTimeout closes sessions that were neither resumed nor held for d.
func WithIdleTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.idleTimeout = d
	}
}

// WithMaxSessions caps the number of stored sessions. When the cap is hit the
// least recently used session that is not held is closed.
func WithMaxSessions(n int) Option {
	return func(g *Generator) {
		g.maxSessions = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func NewGenerator(source Source, opts ...Option) *Generator {
	g := &Generator{
		source:      source,
		sessions:    xsync.NewMapOf[*Session](),
		idleTimeout: DefaultIdleTimeout,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.unsubscribe = source.Subscribe(g.onChange)
	return g
}

// Stop detaches the generator from the store. Open sessions keep working but
// are no longer signalled.
func (g *Generator) Stop() {
	g.unsubscribe()
}

func (g *Generator) onChange() {
	g.sessions.Range(func(_ string, s *Session) bool {
		s.signal()
		return true
	})
}

func (g *Generator) OpenSession(userID string) *Session {
	return g.store(uuid.NewString(), userID)
}

// Transient returns a session that is never stored. Its dismissals are lost
// when the caller drops it.
func (g *Generator) Transient(userID string) *Session {
	return newSession(g.source, "", userID, g.now())
}

// Resume returns the session with the given id, creating it when it does not
// exist yet. A session is bound to one user: resuming it for another user
// starts a fresh session under the same id.
func (g *Generator) Resume(sessionID, userID string) *Session {
	if sessionID == "" {
		return g.OpenSession(userID)
	}

	if s, ok := g.sessions.Load(sessionID); ok && s.userID == userID && s.touch(g.now()) {
		return s
	}
	return g.store(sessionID, userID)
}

// store creates the session under id, replacing one of another user. A
// concurrent creation of the same id for the same user wins.
func (g *Generator) store(id, userID string) *Session {
	g.createMu.Lock()
	defer g.createMu.Unlock()

	now := g.now()
	if existing, ok := g.sessions.Load(id); ok {
		if existing.userID == userID && existing.touch(now) {
			return existing
		}
		g.sessions.Delete(id)
		existing.close()
	}

	g.evict(now)

	s := newSession(g.source, id, userID, now)
	g.sessions.Store(id, s)
	return s
}

// evict closes idle sessions, then the least recently used ones until there
// is room for one more. Held sessions are skipped.
func (g *Generator) evict(now time.Time) {
	var (
		lruID   string
		lruSeen time.Time
	)

	g.sessions.Range(func(id string, s *Session) bool {
		seen, held := s.usage()
		if held {
			return true
		}
		if g.idleTimeout > 0 && now.Sub(seen) >= g.idleTimeout {
			g.sessions.Delete(id)
			s.close()
			return true
		}
		if lruID == "" || seen.Before(lruSeen) {
			lruID, lruSeen = id, seen
		}
		return true
	})

	if g.maxSessions > 0 && g.sessions.Size() >= g.maxSessions && lruID != "" {
		if s, ok := g.sessions.LoadAndDelete(lruID); ok {
			s.close()
		}
	}
}

// Hold keeps s from being evicted until the returned release is called, for
// long lived consumers such as a websocket.
func (g *Generator) Hold(s *Session) (release func()) {
	s.mu.Lock()
	s.holders++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.holders--
			s.lastSeen = g.now()
			s.mu.Unlock()
		})
	}
}

func (g *Generator) Session(sessionID string) (*Session, error) {
	s, ok := g.sessions.Load(sessionID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found session %s", sessionID)
	}
	return s, nil
}

func (g *Generator) CloseSession(sessionID string) {
	if s, ok := g.sessions.LoadAndDelete(sessionID); ok {
		s.close()
	}
}

func (g *Generator) Len() int {
	return g.sessions.Size()
}

type Session struct {
	source Source
	id     string
	userID string

	mu        sync.Mutex
	dismissed map[string]bool
	changed   chan struct{}
	closed    bool
	lastSeen  time.Time
	holders   int
}

func newSession(source Source, id, userID string, now time.Time) *Session {
	return &Session{
		source:    source,
		id:        id,
		userID:    userID,
		dismissed: map[string]bool{},
		changed:   make(chan struct{}, 1),
		lastSeen:  now,
	}
}

// touch marks the session as used. It fails once the session is closed.
func (s *Session) touch(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.lastSeen = now
	return true
}

func (s *Session) usage() (lastSeen time.Time, held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen, s.holders > 0
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) UserID() string {
	return s.userID
}

// Pending returns the notices of the session's user that were not dismissed
// in this session, in the order the store derives them.
func (s *Session) Pending() []entity.Notification {
	all := s.source.GetNotificationsForUser(s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	result := []entity.Notification{}
	for _, n := range all {
		if !s.dismissed[n.ID] {
			result = append(result, n)
		}
	}
	return result
}

// Dismiss hides the notice with the given id. Dismissing an unknown or
// already dismissed id is a no-op.
func (s *Session) Dismiss(notificationID string) {
	s.mu.Lock()
	s.dismissed[notificationID] = true
	s.mu.Unlock()

	s.signal()
}

// Changed receives a value whenever the pending list may have changed.
// Signals coalesce: a slow reader sees one value for many changes.
func (s *Session) Changed() <-chan struct{} {
	return s.changed
}

func (s *Session) signal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.changed <- struct{}{}:
	default:
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.changed)
	}
}
