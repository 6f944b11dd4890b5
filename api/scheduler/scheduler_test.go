package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

const (
	adminEmail = "warden@sastra.ac.in"
	aliceEmail = "111111111@sastra.ac.in"
	bobEmail   = "222222222@sastra.ac.in"
)

type sentMail struct {
	to, subject, html, plain string
}

func setup(t *testing.T) (*registry.Registry, models.User, models.User) {
	t.Helper()
	reg := registry.New(
		registry.NewMemoryStore(),
		identity.NewGate("sastra.ac.in", adminEmail),
		registry.WithLogger(zap.NewNop().Sugar()),
	)
	ctx := context.Background()
	for _, email := range []string{adminEmail, aliceEmail, bobEmail} {
		_, err := reg.CompleteOnboarding(ctx, registry.Identity{Email: email}, registry.Profile{Name: email[:3]})
		require.NoError(t, err)
	}
	alice, err := reg.User(ctx, identity.UserID(aliceEmail))
	require.NoError(t, err)
	bob, err := reg.User(ctx, identity.UserID(bobEmail))
	require.NoError(t, err)
	return reg, alice, bob
}

func TestSendDigest(t *testing.T) {
	reg, alice, bob := setup(t)
	ctx := context.Background()
	item, err := reg.CreateItem(ctx, alice.ID, registry.ItemDraft{Type: models.ItemTypeLost, Title: "red bottle"})
	require.NoError(t, err)
	_, err = reg.ReportItem(ctx, item.ID, bob.ID)
	require.NoError(t, err)
	_, err = reg.CreateItem(ctx, alice.ID, registry.ItemDraft{Type: models.ItemTypeLost, Title: "unreported"})
	require.NoError(t, err)

	var got []sentMail
	s := NewScheduler(reg, config.Config{AdminEmail: adminEmail}, WithSender(func(to, _, subject, html, plain string) error {
		got = append(got, sentMail{to, subject, html, plain})
		return nil
	}))

	n, err := s.SendDigest(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, got, 1)
	assert.Equal(t, adminEmail, got[0].to)
	assert.Equal(t, "1 flagged item needs review", got[0].subject)
	assert.Contains(t, got[0].html, "Red Bottle")
	assert.NotContains(t, got[0].plain, "Unreported")
}

func TestSendDigest_NothingFlagged(t *testing.T) {
	reg, _, _ := setup(t)
	calls := 0
	s := NewScheduler(reg, config.Config{AdminEmail: adminEmail}, WithSender(func(_, _, _, _, _ string) error {
		calls++
		return nil
	}))

	n, err := s.SendDigest(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, calls)
}

func TestSendDigest_Skips(t *testing.T) {
	reg, _, _ := setup(t)

	n, err := NewScheduler(reg, config.Config{AdminEmail: adminEmail}).SendDigest(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)

	n, err = NewScheduler(reg, config.Config{}, WithSender(func(_, _, _, _, _ string) error {
		t.Fatal("sender should not be called")
		return nil
	})).SendDigest(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestSendDigest_SenderError(t *testing.T) {
	reg, alice, bob := setup(t)
	ctx := context.Background()
	item, err := reg.CreateItem(ctx, alice.ID, registry.ItemDraft{Type: models.ItemTypeLost, Title: "keys"})
	require.NoError(t, err)
	_, err = reg.ReportItem(ctx, item.ID, bob.ID)
	require.NoError(t, err)

	s := NewScheduler(reg, config.Config{AdminEmail: adminEmail}, WithSender(func(_, _, _, _, _ string) error {
		return errors.New("smtp down")
	}))

	_, err = s.SendDigest(ctx)
	assert.EqualError(t, err, "smtp down")
}

func TestStartStop(t *testing.T) {
	reg, _, _ := setup(t)
	s := NewScheduler(reg, config.Config{})
	s.Start()
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
