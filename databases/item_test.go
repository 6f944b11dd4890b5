package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/lostfound-api/databases"
	"github.com/linesmerrill/lostfound-api/databases/mocks"
	"github.com/linesmerrill/lostfound-api/models"
)

func TestItemDatabase_FindOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(mongo.ErrNoDocuments)

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Item)
		(*arg).ID = "mocked-item"
		(*arg).Status = models.StatusNew
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "missing"}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "mocked-item"}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "items").Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper)

	item, err := itemDba.FindOne(context.Background(), bson.M{"_id": "missing"})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	item, err = itemDba.FindOne(context.Background(), bson.M{"_id": "mocked-item"})

	assert.Equal(t, &models.Item{ID: "mocked-item", Status: models.StatusNew}, item)
	assert.NoError(t, err)
}

func TestItemDatabase_Find(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorErr databases.CursorHelper
	var cursorCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorErr = &mocks.CursorHelper{}
	cursorCorrect = &mocks.CursorHelper{}

	cursorErr.(*mocks.CursorHelper).On("All", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))
	cursorErr.(*mocks.CursorHelper).On("Close", mock.Anything).Return(nil)
	cursorCorrect.(*mocks.CursorHelper).
		On("All", mock.Anything, mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Item)
		*arg = []models.Item{{ID: "mocked-item"}}
	})
	cursorCorrect.(*mocks.CursorHelper).On("Close", mock.Anything).Return(nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(cursorErr, nil)
	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorCorrect, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "items").Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper)

	items, err := itemDba.Find(context.Background(), bson.M{"error": true})
	assert.Empty(t, items)
	assert.EqualError(t, err, "mocked-error")

	items, err = itemDba.Find(context.Background(), bson.M{"error": false})
	assert.Equal(t, []models.Item{{ID: "mocked-item"}}, items)
	assert.NoError(t, err)

	cursorErr.(*mocks.CursorHelper).AssertCalled(t, "Close", mock.Anything)
}

func TestItemDatabase_ReplaceOneReturnsMatched(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	filter := bson.M{"_id": "i1", "version": int64(3)}
	collectionHelper.(*mocks.CollectionHelper).
		On("ReplaceOne", context.Background(), filter, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "items").Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper)

	n, err := itemDba.ReplaceOne(context.Background(), filter, models.Item{ID: "i1", Version: 4})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestItemDatabase_DeleteOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"_id": "i1"}).
		Return(&mongo.DeleteResult{DeletedCount: 1}, nil)
	collectionHelper.(*mocks.CollectionHelper).
		On("DeleteOne", context.Background(), bson.M{"_id": "broken"}).
		Return(nil, errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "items").Return(collectionHelper)

	itemDba := databases.NewItemDatabase(dbHelper)

	n, err := itemDba.DeleteOne(context.Background(), bson.M{"_id": "i1"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = itemDba.DeleteOne(context.Background(), bson.M{"_id": "broken"})
	assert.EqualError(t, err, "mocked-error")
}
