package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/lostfound-api/models"
)

func TestMemoryStore_UpdateItemChecksVersion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.InsertItem(ctx, models.Item{ID: "i1", Status: models.StatusNew}))

	err := s.UpdateItem(ctx, models.Item{ID: "i1", Status: models.StatusPendingClaim, Version: 1}, 0)
	require.NoError(t, err)

	err = s.UpdateItem(ctx, models.Item{ID: "i1", Status: models.StatusClaimed, Version: 1}, 0)
	assert.ErrorIs(t, err, ErrConcurrentModification)

	err = s.UpdateItem(ctx, models.Item{ID: "nope"}, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.Item(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingClaim, got.Status)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.InsertItem(ctx, models.Item{ID: "i1", Reports: []string{"a"}}))

	got, err := s.Item(ctx, "i1")
	require.NoError(t, err)
	got.Reports[0] = "mutated"

	again, err := s.Item(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Reports)
}

func TestMemoryStore_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.InsertItem(ctx, models.Item{ID: "i1"}))

	assert.ErrorIs(t, s.InsertItem(ctx, models.Item{ID: "i1"}), ErrConcurrentModification)
}

func TestMemoryStore_SaveUserKeepsCounters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveUser(ctx, models.User{ID: "u1", Name: "A", TrustScore: 100}))
	require.NoError(t, s.IncrementResolved(ctx, "u1"))

	require.NoError(t, s.SaveUser(ctx, models.User{ID: "u1", Name: "B"}))

	u, err := s.User(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "B", u.Name)
	assert.Equal(t, 1, u.ResolvedCount)
	assert.Equal(t, 100, u.TrustScore)
	assert.ErrorIs(t, s.IncrementResolved(ctx, "ghost"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, "ghost"), ErrNotFound)
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock("a")
	assert.Len(t, k.locks, 1)
	unlock()
	assert.Empty(t, k.locks)
}
