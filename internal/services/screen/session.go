package screen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"adminconsole/internal/core/listresource"
	"adminconsole/internal/domain/resource"
	"adminconsole/internal/notify"
)

var (
	ErrSessionNotFound = errors.New("screen session not found")
	ErrItemNotVisible  = errors.New("item is not on the visible page")
)

// Session is one mounted screen: a controller plus its toast inbox.
type Session struct {
	ID         string
	Screen     string
	Controller *listresource.Controller
	Inbox      *notify.Inbox
	CreatedAt  time.Time

	lastSeen atomic.Int64
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Item resolves a record on the visible page by identifier.
func (s *Session) Item(id string) (resource.Resource, error) {
	item, ok := s.Controller.ItemByID(id)
	if !ok {
		return resource.Resource{}, fmt.Errorf("%w: %s", ErrItemNotVisible, id)
	}
	return item, nil
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Deps wires sessions to the outside world.
type Deps struct {
	Catalog *Catalog
	// Endpoints builds the backend ports for a screen.
	Endpoints func(Definition) listresource.Endpoints
	// Notifiers returns extra toast sinks for a session. Optional.
	Notifiers func(def Definition, sessionID string) []listresource.Notifier
	// Observer returns the mutation observer for a session. Optional.
	Observer     func(sessionID string) listresource.MutationObserver
	DefaultLimit int
}

// Store owns every mounted session. Sessions share nothing with each other.
type Store struct {
	deps     Deps
	sessions map[string]*Session
	mu       sync.RWMutex
	now      func() time.Time
}

// NewStore creates an empty session store
func NewStore(deps Deps) *Store {
	if deps.DefaultLimit <= 0 {
		deps.DefaultLimit = 10
	}
	return &Store{deps: deps, sessions: make(map[string]*Session), now: time.Now}
}

// Mount creates a controller for screen and performs its first load.
func (s *Store) Mount(ctx context.Context, screen string, limit int) (*Session, error) {
	def, err := s.deps.Catalog.Get(screen)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	inbox := notify.NewInbox(notify.DefaultInboxSize)
	sinks := notify.Fanout{inbox}
	if s.deps.Notifiers != nil {
		sinks = append(sinks, s.deps.Notifiers(def, id)...)
	}

	opts := def.Options(limit, s.deps.DefaultLimit)
	if s.deps.Observer != nil {
		opts.Observer = s.deps.Observer(id)
	}

	ctrl, err := listresource.New(s.deps.Endpoints(def), sinks, opts)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", screen, err)
	}

	now := s.now()
	sess := &Session{ID: id, Screen: def.Name, Controller: ctrl, Inbox: inbox, CreatedAt: now}
	sess.touch(now)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info().Str("session", id).Str("screen", def.Name).Int("limit", opts.Limit).Msg("screen mounted")
	ctrl.Mount(ctx)
	return sess, nil
}

// Get returns a session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

// Unmount discards a session. In-flight calls on its controller still finish.
func (s *Store) Unmount(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	log.Info().Str("session", id).Str("screen", sess.Screen).Msg("screen unmounted")
	return nil
}

// List returns the mounted sessions, oldest first.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Len returns the number of mounted sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// UnmountIdle drops sessions unused for longer than ttl and returns how many went.
func (s *Store) UnmountIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			n++
			log.Info().Str("session", id).Str("screen", sess.Screen).Msg("idle screen unmounted")
		}
	}
	return n
}
