package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/linesmerrill/lostfound-api/models"
)

// MemoryStore is a Store kept in process memory. Every read and write copies the
// records so callers never alias stored slices.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]models.Item
	users map[string]models.User
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]models.Item),
		users: make(map[string]models.User),
	}
}

// Item returns a copy of the stored item
func (m *MemoryStore) Item(_ context.Context, id string) (models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return models.Item{}, fmt.Errorf("%w: item %s", ErrNotFound, id)
	}
	return item.Clone(), nil
}

// Items returns a snapshot of every item
func (m *MemoryStore) Items(_ context.Context) ([]models.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item.Clone())
	}
	return out, nil
}

// InsertItem stores a new item
func (m *MemoryStore) InsertItem(_ context.Context, item models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; ok {
		return fmt.Errorf("%w: item %s already exists", ErrConcurrentModification, item.ID)
	}
	m.items[item.ID] = item.Clone()
	return nil
}

// UpdateItem replaces the item when the stored version matches expectedVersion
func (m *MemoryStore) UpdateItem(_ context.Context, item models.Item, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.items[item.ID]
	if !ok {
		return fmt.Errorf("%w: item %s", ErrNotFound, item.ID)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: item %s is at version %d, expected %d",
			ErrConcurrentModification, item.ID, current.Version, expectedVersion)
	}
	m.items[item.ID] = item.Clone()
	return nil
}

// DeleteItem removes the item together with its conversation
func (m *MemoryStore) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: item %s", ErrNotFound, id)
	}
	delete(m.items, id)
	return nil
}

// User returns the stored user
func (m *MemoryStore) User(_ context.Context, id string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return u, nil
}

// Users returns every stored user
func (m *MemoryStore) Users(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

// SaveUser inserts or updates a user, keeping the counters of an existing record
func (m *MemoryStore) SaveUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.users[user.ID]; ok {
		user.TrustScore = existing.TrustScore
		user.ResolvedCount = existing.ResolvedCount
		user.CreatedAt = existing.CreatedAt
	}
	m.users[user.ID] = user
	return nil
}

// DeleteUser removes a user record
func (m *MemoryStore) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	delete(m.users, id)
	return nil
}

// IncrementResolved adds one to the user's resolved case counter
func (m *MemoryStore) IncrementResolved(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	u.ResolvedCount++
	m.users[userID] = u
	return nil
}
