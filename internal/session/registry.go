// Package session owns all per-login state: the acting user, the list
// being viewed, the notification feed, and the item operations gated
// by access control. State is created at login and torn down at
// logout; nothing here is ambient or global.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mbeaulieu/courses/internal/auth"
	"github.com/mbeaulieu/courses/internal/notify"
	"github.com/mbeaulieu/courses/internal/store"
)

// ValidationError reports a user-facing input problem. Nothing is
// mutated when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// Broadcaster receives every mutation event for delivery beyond the
// in-process session set (the websocket hub implements this).
type Broadcaster interface {
	BroadcastMutation(ev notify.Event)
}

// Registry tracks active sessions and holds the gateway chosen at
// startup. The persisted-vs-ephemeral decision is made exactly once;
// only an explicit Retry re-evaluates it.
type Registry struct {
	mu       sync.RWMutex
	gw       store.Gateway
	mode     store.Mode
	sqlite   *store.SQLite // retained for retry re-probes; nil if the db never opened
	sessions map[string]*Session
	bc       Broadcaster
	log      *slog.Logger
}

// SelectGateway probes the SQLite store once and decides the mode for
// the rest of the app lifetime. A missing schema and a transient
// probe failure both degrade to the in-memory mirror, but they are
// logged as the distinct conditions they are; per-query errors later
// on never flip the mode.
func SelectGateway(ctx context.Context, sq *store.SQLite, log *slog.Logger) (store.Gateway, store.Mode) {
	if sq == nil {
		log.Warn("no database, running ephemeral")
		return store.NewMemory(), store.ModeEphemeral
	}

	err := sq.Probe(ctx)
	switch {
	case err == nil:
		return sq, store.ModePersistent
	case errors.Is(err, store.ErrSchemaAbsent):
		log.Warn("schema absent, falling back to in-memory store")
	default:
		log.Error("schema probe failed, falling back to in-memory store", "error", err)
	}
	return store.NewMemory(), store.ModeEphemeral
}

func NewRegistry(gw store.Gateway, mode store.Mode, sq *store.SQLite, bc Broadcaster, log *slog.Logger) *Registry {
	return &Registry{
		gw:       gw,
		mode:     mode,
		sqlite:   sq,
		sessions: make(map[string]*Session),
		bc:       bc,
		log:      log,
	}
}

func (r *Registry) Gateway() store.Gateway {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gw
}

func (r *Registry) Mode() store.Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Retry re-probes the SQLite store and switches back to persistent
// mode when the schema has appeared. It is the only path that can
// change the mode after startup.
func (r *Registry) Retry(ctx context.Context) (store.Mode, error) {
	r.mu.RLock()
	mode, sq := r.mode, r.sqlite
	r.mu.RUnlock()

	if mode == store.ModePersistent || sq == nil {
		return mode, nil
	}
	if err := sq.Probe(ctx); err != nil {
		return store.ModeEphemeral, err
	}

	r.mu.Lock()
	r.gw = sq
	r.mode = store.ModePersistent
	r.mu.Unlock()

	r.log.Info("schema probe succeeded, switched to persistent mode")
	return store.ModePersistent, nil
}

// Login checks credentials against the active gateway and creates a
// session. Username matching is case-insensitive, the password must
// match exactly (or verify against its hash).
func (r *Registry) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := r.Gateway().UserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, validationErr("Nom d'utilisateur ou mot de passe incorrect")
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(user.Password, password) {
		return nil, validationErr("Nom d'utilisateur ou mot de passe incorrect")
	}

	s := &Session{
		reg:       r,
		feed:      notify.NewFeed(),
		token:     newToken(),
		user:      *user,
		viewing:   user.ID,
		createdAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.sessions[s.token] = s
	r.mu.Unlock()

	r.log.Info("login", "user", user.ID)
	return s, nil
}

// Get resolves a session token.
func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[token]
	return s, ok
}

// Logout discards the session and everything scoped to it: current
// user, viewed list, notification feed. Persisted data is untouched.
func (r *Registry) Logout(token string) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()

	if ok {
		s.feed.Clear()
		r.log.Info("logout", "user", s.user.ID)
	}
}

// publish fans a mutation event out to the hub and to every other
// active session's feed. Each receiving feed applies the delivery
// predicate itself.
func (r *Registry) publish(ev notify.Event) {
	r.mu.RLock()
	bc := r.bc
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	if bc != nil {
		bc.BroadcastMutation(ev)
	}
	for _, s := range sessions {
		s.deliver(ev)
	}
}

func newToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return hex.EncodeToString(b)
}
