package databases

// go generate: mockery --name ItemDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/lostfound-api/models"
)

const itemName = "items"

// ItemDatabase contains the methods to use with the item database
type ItemDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Item, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Item, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	ReplaceOne(context.Context, interface{}, interface{}, ...*options.ReplaceOptions) (int64, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) (int64, error)
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
}

type itemDatabase struct {
	db DatabaseHelper
}

// NewItemDatabase initializes a new instance of item database with the provided db connection
func NewItemDatabase(db DatabaseHelper) ItemDatabase {
	return &itemDatabase{
		db: db,
	}
}

func (c *itemDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Item, error) {
	item := &models.Item{}
	err := c.db.Collection(itemName).FindOne(ctx, filter, opts...).Decode(&item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *itemDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Item, error) {
	var items []models.Item
	curr, err := c.db.Collection(itemName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *itemDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(itemName).InsertOne(ctx, document, opts...)
}

// ReplaceOne returns the number of documents the filter matched
func (c *itemDatabase) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (int64, error) {
	res, err := c.db.Collection(itemName).ReplaceOne(ctx, filter, replacement, opts...)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteOne returns the number of deleted documents
func (c *itemDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	res, err := c.db.Collection(itemName).DeleteOne(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *itemDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(itemName).CountDocuments(ctx, filter, opts...)
}
