package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lostfound-api/api"
	"github.com/linesmerrill/lostfound-api/models"
	"github.com/linesmerrill/lostfound-api/registry"
)

// RegistryStore keeps registry items and users in mongo
type RegistryStore struct {
	ItemDB ItemDatabase
	UserDB UserDatabase
}

// NewRegistryStore wires the item and user collections of db into a registry.Store
func NewRegistryStore(db DatabaseHelper) *RegistryStore {
	return &RegistryStore{
		ItemDB: NewItemDatabase(db),
		UserDB: NewUserDatabase(db),
	}
}

var _ registry.Store = (*RegistryStore)(nil)

// Item finds an item by id
func (s *RegistryStore) Item(ctx context.Context, id string) (models.Item, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	item, err := s.ItemDB.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Item{}, fmt.Errorf("%w: item %s", registry.ErrNotFound, id)
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to get item by ID: %w", err)
	}
	return *item, nil
}

// Items returns every item, newest first
func (s *RegistryStore) Items(ctx context.Context) ([]models.Item, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	items, err := s.ItemDB.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// InsertItem stores a new item
func (s *RegistryStore) InsertItem(ctx context.Context, item models.Item) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	_, err := s.ItemDB.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: item %s already exists", registry.ErrConcurrentModification, item.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// UpdateItem replaces the item only while it still carries expectedVersion
func (s *RegistryStore) UpdateItem(ctx context.Context, item models.Item, expectedVersion int64) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	matched, err := s.ItemDB.ReplaceOne(ctx, bson.M{"_id": item.ID, "version": expectedVersion}, item)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if matched > 0 {
		return nil
	}

	n, err := s.ItemDB.CountDocuments(ctx, bson.M{"_id": item.ID})
	if err != nil {
		return fmt.Errorf("failed to check item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: item %s", registry.ErrNotFound, item.ID)
	}
	return fmt.Errorf("%w: item %s changed since version %d", registry.ErrConcurrentModification, item.ID, expectedVersion)
}

// DeleteItem removes an item and the conversation embedded in it
func (s *RegistryStore) DeleteItem(ctx context.Context, id string) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	n, err := s.ItemDB.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: item %s", registry.ErrNotFound, id)
	}
	return nil
}

// User finds a user by id
func (s *RegistryStore) User(ctx context.Context, id string) (models.User, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	u, err := s.UserDB.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("%w: user %s", registry.ErrNotFound, id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return *u, nil
}

// Users returns every user
func (s *RegistryStore) Users(ctx context.Context) ([]models.User, error) {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	users, err := s.UserDB.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// SaveUser upserts the profile fields. Counters are only written when the record
// is first created.
func (s *RegistryStore) SaveUser(ctx context.Context, u models.User) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"email":              u.Email,
			"name":               u.Name,
			"profilePicture":     u.ProfilePicture,
			"registrationNumber": u.RegistrationNumber,
			"branch":             u.Branch,
			"yearOfStudy":        u.YearOfStudy,
			"residency":          u.Residency,
			"theme":              u.Theme,
			"onboarded":          u.Onboarded,
			"updatedAt":          u.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"trustScore":    u.TrustScore,
			"resolvedCount": u.ResolvedCount,
			"createdAt":     u.CreatedAt,
		},
	}
	_, err := s.UserDB.UpdateOne(ctx, bson.M{"_id": u.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// DeleteUser removes a user record
func (s *RegistryStore) DeleteUser(ctx context.Context, id string) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	n, err := s.UserDB.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s", registry.ErrNotFound, id)
	}
	return nil
}

// IncrementResolved bumps the resolved counter atomically in the database
func (s *RegistryStore) IncrementResolved(ctx context.Context, userID string) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	n, err := s.UserDB.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$inc": bson.M{"resolvedCount": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment resolved count: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %s", registry.ErrNotFound, userID)
	}
	return nil
}
