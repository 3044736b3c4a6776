package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/landauthority/dispute-api/databases"
	"github.com/landauthority/dispute-api/databases/mocks"
)

func TestSchedulerLockDatabase_TryAcquireLock(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)
	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil).Once()

	acquired, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "overdue_sweep", "web.1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	filter := collectionHelper.Calls[0].Arguments.Get(1).(bson.M)
	assert.Equal(t, "overdue_sweep", filter["_id"])
}

func TestSchedulerLockDatabase_TryAcquireLockHeldElsewhere(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, dup)

	acquired, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "overdue_sweep", "web.2", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}

func TestSchedulerLockDatabase_TryAcquireLockError(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)
	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	acquired, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "overdue_sweep", "web.2", time.Minute)
	assert.EqualError(t, err, "mocked-error")
	assert.False(t, acquired)
}

func TestSchedulerLockDatabase_ReleaseLock(t *testing.T) {
	collectionHelper := &mocks.CollectionHelper{}
	dbHelper := &mocks.DatabaseHelper{}
	dbHelper.On("Collection", "schedulerlocks").Return(collectionHelper)
	collectionHelper.On("DeleteOne", mock.Anything, bson.M{"_id": "overdue_sweep", "owner": "web.1"}).Return(nil)

	require.NoError(t, databases.NewSchedulerLockDatabase(dbHelper).ReleaseLock(context.Background(), "overdue_sweep", "web.1"))
	collectionHelper.AssertExpectations(t)
}
