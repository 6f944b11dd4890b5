package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

const adminEmail = "warden@sastra.ac.in"

func setup(t *testing.T) (*registry.Registry, models.User, models.User) {
	t.Helper()
	reg := registry.New(
		registry.NewMemoryStore(),
		identity.NewGate("sastra.ac.in", adminEmail),
		registry.WithLogger(zap.NewNop().Sugar()),
	)
	ctx := context.Background()
	_, err := reg.CompleteOnboarding(ctx, registry.Identity{Email: adminEmail}, registry.Profile{Name: "Warden"})
	require.NoError(t, err)
	alice, err := reg.CompleteOnboarding(ctx, registry.Identity{Email: "111111111@sastra.ac.in"}, registry.Profile{Name: "Alice"})
	require.NoError(t, err)
	bob, err := reg.CompleteOnboarding(ctx, registry.Identity{Email: "222222222@sastra.ac.in"}, registry.Profile{Name: "Bob"})
	require.NoError(t, err)
	return reg, alice, bob
}

func TestRun_Usage(t *testing.T) {
	reg, _, _ := setup(t)
	adminID := identity.UserID(adminEmail)
	var out bytes.Buffer

	for _, args := range [][]string{nil, {"explode"}, {"remove-user"}, {"remove-item", "a", "b"}} {
		assert.ErrorIs(t, run(context.Background(), reg, adminID, args, &out), errUsage, "%v", args)
	}
}

func TestRun_FlaggedAndRemoveItem(t *testing.T) {
	reg, alice, bob := setup(t)
	ctx := context.Background()
	adminID := identity.UserID(adminEmail)

	var out bytes.Buffer
	require.NoError(t, run(ctx, reg, adminID, []string{"flagged"}, &out))
	assert.Equal(t, "No flagged items.\n", out.String())

	item, err := reg.CreateItem(ctx, alice.ID, registry.ItemDraft{Type: models.ItemTypeLost, Title: "keys"})
	require.NoError(t, err)
	_, err = reg.ReportItem(ctx, item.ID, bob.ID)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, run(ctx, reg, adminID, []string{"flagged"}, &out))
	assert.Equal(t, item.ID+"\t1 report(s)\tNEW\tLOST\tKeys\n", out.String())

	out.Reset()
	require.NoError(t, run(ctx, reg, adminID, []string{"remove-item", item.ID}, &out))
	assert.Contains(t, out.String(), "has been removed")

	_, err = reg.Item(ctx, item.ID)
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestRun_RemoveUser(t *testing.T) {
	reg, _, bob := setup(t)
	ctx := context.Background()
	adminID := identity.UserID(adminEmail)
	var out bytes.Buffer

	require.NoError(t, run(ctx, reg, adminID, []string{"remove-user", bob.ID}, &out))
	_, err := reg.User(ctx, bob.ID)
	assert.ErrorIs(t, err, registry.ErrNotFound)

	err = run(ctx, reg, adminID, []string{"remove-user", adminID}, &out)
	assert.ErrorIs(t, err, registry.ErrUnauthorized)

	err = run(ctx, reg, bob.ID, []string{"flagged"}, &out)
	assert.ErrorIs(t, err, registry.ErrUnauthorized)
}
