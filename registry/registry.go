// Package registry is the authoritative core of the lost and found service. It owns
// the item lifecycle, who may see and act on an item, the per-item conversation and
// moderation. Every operation loads state from a Store, checks it, and commits one
// versioned write, so a failed operation never leaves a partial change behind.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
)

// Registry coordinates item and user operations over a Store
type Registry struct {
	store  Store
	gate   identity.Gate
	locks  *keyedMutex
	now    func() time.Time
	newID  func() string
	images ImageRemover
	log    *zap.SugaredLogger
}

// Option configures a Registry
type Option func(*Registry)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator overrides how item and message ids are minted
func WithIDGenerator(f func() string) Option {
	return func(r *Registry) { r.newID = f }
}

// WithImageRemover deletes hosted images after an item is removed
func WithImageRemover(ir ImageRemover) Option {
	return func(r *Registry) { r.images = ir }
}

// WithLogger sets the logger, zap.S() is used otherwise
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Registry) { r.log = l }
}

// New creates a Registry backed by store
func New(store Store, gate identity.Gate, opts ...Option) *Registry {
	r := &Registry{
		store: store,
		gate:  gate,
		locks: newKeyedMutex(),
		now:   time.Now,
		newID: uuid.NewString,
		log:   zap.S(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Gate returns the identity gate the registry checks privileges with
func (r *Registry) Gate() identity.Gate {
	return r.gate
}

// IsAdministrator reports whether the user is the administrator
func (r *Registry) IsAdministrator(u models.User) bool {
	return r.gate.IsAdministrator(u.Email)
}

// errNoChange lets a mutation finish without writing anything
var errNoChange = errors.New("no change")

// mutate loads the item, applies fn to a private copy and commits it with a
// version check. The item lock serializes writers in this process; the version
// check catches writers in other processes.
func (r *Registry) mutate(ctx context.Context, itemID string, fn func(item *models.Item) error) (models.Item, error) {
	unlock := r.locks.Lock(itemID)
	defer unlock()

	current, err := r.store.Item(ctx, itemID)
	if err != nil {
		return models.Item{}, err
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		if errors.Is(err, errNoChange) {
			return current, nil
		}
		return models.Item{}, err
	}

	next.Version = current.Version + 1
	next.UpdatedAt = r.now().UTC()
	if err := r.store.UpdateItem(ctx, next, current.Version); err != nil {
		return models.Item{}, err
	}
	return next, nil
}

// actor loads the acting user. An id with no record is treated as unauthorized.
func (r *Registry) actor(ctx context.Context, userID string) (models.User, error) {
	if userID == "" || userID == models.SystemSenderID {
		return models.User{}, unauthorizedf("unknown actor %q", userID)
	}
	u, err := r.store.User(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, unauthorizedf("unknown actor %q", userID)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to load actor: %w", err)
	}
	return u, nil
}

func (r *Registry) onboardedActor(ctx context.Context, userID string) (models.User, error) {
	u, err := r.actor(ctx, userID)
	if err != nil {
		return u, err
	}
	if !u.Onboarded {
		return models.User{}, unauthorizedf("user %s has not completed onboarding", userID)
	}
	return u, nil
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

// Lock blocks until key is free and returns the matching unlock
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refMutex{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
