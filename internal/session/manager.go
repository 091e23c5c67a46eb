package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-signupform/internal/logging"
	"github.com/goliatone/go-signupform/pkg/formstate"
)

// Session is the per-request view of a form instance. Machine is only valid
// inside the callback passed to Manager.Do.
type Session struct {
	ID      string
	Token   string
	Machine *formstate.Machine
	Created bool
}

// Manager resolves tokens to machines and serialises access per session id.
type Manager struct {
	store   Store
	codec   *TokenCodec
	ttl     time.Duration
	logger  *zap.Logger
	newID   func() string
	machine []formstate.Option
	locks   *keyedMutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStore replaces the default in-memory store.
func WithStore(store Store) ManagerOption {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logging.OrNop(logger)
	}
}

// WithMachineOptions appends options applied to every machine the manager
// creates or restores.
func WithMachineOptions(options ...formstate.Option) ManagerOption {
	return func(m *Manager) {
		m.machine = append(m.machine, options...)
	}
}

// WithIDGenerator overrides the uuid-based session id generator.
func WithIDGenerator(fn func() string) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// NewManager builds a manager whose snapshots live for ttl after their last
// use.
func NewManager(codec *TokenCodec, ttl time.Duration, options ...ManagerOption) (*Manager, error) {
	if codec == nil {
		return nil, errors.New("session: token codec is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session: ttl must be positive")
	}
	m := &Manager{
		store:  NewMemoryStore(),
		codec:  codec,
		ttl:    ttl,
		logger: zap.NewNop(),
		newID:  func() string { return uuid.NewString() },
		locks:  newKeyedMutex(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Do runs fn against the machine addressed by token. An empty, invalid or
// expired token starts a fresh session. The machine is persisted after fn
// returns, even when fn fails, and the returned session carries a reissued
// token.
func (m *Manager) Do(ctx context.Context, token string, fn func(*Session) error) (*Session, error) {
	id, created := m.resolve(token)

	unlock := m.locks.lock(id)
	defer unlock()

	machine, fresh, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	created = created || fresh

	sess := &Session{ID: id, Machine: machine, Created: created}
	var fnErr error
	if fn != nil {
		fnErr = fn(sess)
	}

	if err := m.store.Save(ctx, id, machine.Snapshot(), m.ttl); err != nil {
		return nil, fmt.Errorf("session: save %s: %w", id, err)
	}
	issued, err := m.codec.Issue(id)
	if err != nil {
		return nil, err
	}
	sess.Token = issued
	if created {
		m.logger.Debug("session created", zap.String("session_id", id))
	}
	return sess, fnErr
}

// Discard drops the snapshot addressed by token. Invalid tokens are ignored.
func (m *Manager) Discard(ctx context.Context, token string) error {
	id, err := m.codec.Parse(token)
	if err != nil {
		return nil
	}
	unlock := m.locks.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// ID returns the session id carried by token.
func (m *Manager) ID(token string) (string, error) {
	return m.codec.Parse(token)
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

func (m *Manager) resolve(token string) (string, bool) {
	if token != "" {
		id, err := m.codec.Parse(token)
		if err == nil {
			return id, false
		}
		m.logger.Debug("discarding session token", zap.Error(err))
	}
	return m.newID(), true
}

func (m *Manager) load(ctx context.Context, id string) (*formstate.Machine, bool, error) {
	snapshot, err := m.store.Load(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return formstate.New(m.machine...), true, nil
	case err != nil:
		return nil, false, fmt.Errorf("session: load %s: %w", id, err)
	}
	options := append([]formstate.Option{formstate.WithSnapshot(snapshot)}, m.machine...)
	return formstate.New(options...), false, nil
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &refMutex{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
