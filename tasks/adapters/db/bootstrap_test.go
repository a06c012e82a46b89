package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"player-list/tasks/config"
	"player-list/tasks/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientOptions_AuthOnlyForExactTrue(t *testing.T) {
	for _, useAuth := range []string{"", "false", "TRUE", "True", "1", "yes", " true"} {
		opts := ClientOptions(config.MongoConfig{
			ConnStr:  "mongodb://localhost:27017",
			UseAuth:  useAuth,
			Username: "admin",
			Password: "secret",
		})
		assert.Nil(t, opts.Auth, "USE_DB_AUTH=%q must not attach credentials", useAuth)
	}

	opts := ClientOptions(config.MongoConfig{
		ConnStr:  "mongodb://localhost:27017",
		UseAuth:  "true",
		Username: "admin",
		Password: "secret",
	})
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "admin", opts.Auth.Username)
	assert.Equal(t, "secret", opts.Auth.Password)
}

func TestClientOptions_KeepsAuthSourceFromURI(t *testing.T) {
	opts := ClientOptions(config.MongoConfig{
		ConnStr:  "mongodb://localhost:27017/?authSource=admin",
		UseAuth:  "true",
		Username: "u",
		Password: "p",
	})
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "admin", opts.Auth.AuthSource)
	assert.Equal(t, "u", opts.Auth.Username)
}

func TestClientOptions_SeedsAuthFromURIWithoutUserInfo(t *testing.T) {
	opts := ClientOptions(config.MongoConfig{
		ConnStr:  "mongodb://localhost:27017/?authSource=playersdb",
		UseAuth:  "true",
		Username: "u",
		Password: "p",
	})
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "playersdb", opts.Auth.AuthSource)
	assert.Equal(t, "u", opts.Auth.Username)
	assert.True(t, opts.Auth.PasswordSet)
}

func TestClientOptions_Timeouts(t *testing.T) {
	opts := ClientOptions(config.MongoConfig{
		ConnStr:        "mongodb://localhost:27017",
		ConnectTimeout: 3 * time.Second,
	})
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
}

func TestBootstrap_AuthWithoutCredentials(t *testing.T) {
	storage := Bootstrap(context.Background(), discardLogger(), config.MongoConfig{
		ConnStr: "mongodb://localhost:27017",
		UseAuth: "true",
	})

	assert.False(t, storage.Connected())
	assert.ErrorIs(t, storage.err, ErrConnection)
}

func TestBootstrap_MalformedURI(t *testing.T) {
	storage := Bootstrap(context.Background(), discardLogger(), config.MongoConfig{
		ConnStr:        "://nope",
		ConnectTimeout: time.Second,
	})

	assert.False(t, storage.Connected())
	assert.ErrorIs(t, storage.err, ErrConnection)
}

func TestDegradedDB_EveryOperationUnavailable(t *testing.T) {
	storage := &DB{log: discardLogger(), err: ErrConnection}
	ctx := context.Background()

	err := storage.Ping(ctx)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	assert.ErrorIs(t, err, ErrConnection)

	_, err = storage.CreateTask(ctx, "Alice")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	_, err = storage.GetTask(ctx, "000000000000000000000001")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	_, err = storage.ListTasks(ctx, core.ListTasksFilter{})
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	done := true
	_, err = storage.UpdateTask(ctx, "000000000000000000000001", core.TaskPatch{Completed: &done})
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	_, err = storage.ToggleTask(ctx, "000000000000000000000001")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	err = storage.DeleteTask(ctx, "000000000000000000000001")
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	assert.ErrorIs(t, storage.EnsureIndexes(ctx), core.ErrStoreUnavailable)
	assert.NoError(t, storage.Close(ctx))
}

func TestMapErr(t *testing.T) {
	storage := &DB{log: discardLogger()}

	err := storage.mapErr("list tasks", context.DeadlineExceeded)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)

	other := errors.New("duplicate key")
	err = storage.mapErr("insert task", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, core.ErrStoreUnavailable)
}
