package registry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/identity"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

const (
	adminEmail = "admin@sastra.ac.in"
	aliceEmail = "111111111@sastra.ac.in"
	bobEmail   = "222222222@sastra.ac.in"
	carolEmail = "333333333@sastra.ac.in"
)

// stepClock advances one minute every time it is read
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

type imageRemover struct {
	mock.Mock
}

func (m *imageRemover) RemoveImages(ctx context.Context, refs []string) error {
	args := m.Called(ctx, refs)
	return args.Error(0)
}

type fixture struct {
	reg   *registry.Registry
	store *registry.MemoryStore
	admin models.User
	alice models.User
	bob   models.User
	carol models.User
}

func newFixture(t *testing.T, opts ...registry.Option) fixture {
	t.Helper()
	store := registry.NewMemoryStore()
	clock := &stepClock{t: time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)}
	opts = append([]registry.Option{
		registry.WithClock(clock.Now),
		registry.WithLogger(zap.NewNop().Sugar()),
	}, opts...)
	reg := registry.New(store, identity.NewGate("sastra.ac.in", adminEmail), opts...)

	f := fixture{reg: reg, store: store}
	f.admin = onboard(t, reg, adminEmail, "Warden")
	f.alice = onboard(t, reg, aliceEmail, "Alice")
	f.bob = onboard(t, reg, bobEmail, "Bob")
	f.carol = onboard(t, reg, carolEmail, "Carol")
	return f
}

func onboard(t *testing.T, reg *registry.Registry, email, name string) models.User {
	t.Helper()
	u, err := reg.CompleteOnboarding(context.Background(), registry.Identity{Email: email, Name: name}, registry.Profile{Name: name})
	require.NoError(t, err)
	return u
}

func (f fixture) foundItem(t *testing.T, reporter models.User) models.Item {
	t.Helper()
	item, err := f.reg.CreateItem(context.Background(), reporter.ID, registry.ItemDraft{
		Type:        models.ItemTypeFound,
		Title:       "black wallet",
		Category:    models.CategoryWallets,
		Description: "found near the library",
		Location:    "Central Library",
		ImagePaths:  []string{"https://img.example/wallet.jpg"},
	})
	require.NoError(t, err)
	return item
}
