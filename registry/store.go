package registry

import (
	"context"

	"github.com/linesmerrill/lostfound-api/models"
)

// Store persists items and users for the registry.
//
// Item and User return ErrNotFound for unknown ids. UpdateItem is a compare and
// set: it succeeds only when the stored item still carries expectedVersion and
// returns ErrConcurrentModification otherwise. SaveUser upserts the profile of a
// user; the counters of an existing record are left to IncrementResolved.
type Store interface {
	Item(ctx context.Context, id string) (models.Item, error)
	Items(ctx context.Context) ([]models.Item, error)
	InsertItem(ctx context.Context, item models.Item) error
	UpdateItem(ctx context.Context, item models.Item, expectedVersion int64) error
	DeleteItem(ctx context.Context, id string) error

	User(ctx context.Context, id string) (models.User, error)
	Users(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
	IncrementResolved(ctx context.Context, userID string) error
}

// ImageRemover deletes hosted images that belonged to a removed item
type ImageRemover interface {
	RemoveImages(ctx context.Context, refs []string) error
}
