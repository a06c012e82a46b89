package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"player-list/tasks/config"
)

// ErrConnection marks a failed bootstrap. It never reaches API callers:
// they see core.ErrStoreUnavailable instead.
var ErrConnection = errors.New("mongo connection failed")

// ClientOptions builds the driver options for cfg. Credentials are attached
// only when cfg.AuthEnabled, on top of whatever the connection string carries.
func ClientOptions(cfg config.MongoConfig) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.ConnStr)

	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	if cfg.AuthEnabled() {
		cred := options.Credential{}
		if opts.Auth != nil {
			cred = *opts.Auth
		}
		// ApplyURI leaves Auth nil when the URI has no user info, which drops
		// authSource and authMechanism.
		if cs, err := connstring.ParseAndValidate(cfg.ConnStr); err == nil {
			if cred.AuthSource == "" {
				cred.AuthSource = cs.AuthSource
			}
			if cred.AuthMechanism == "" {
				cred.AuthMechanism = cs.AuthMechanism
			}
			if cred.AuthMechanismProperties == nil {
				cred.AuthMechanismProperties = cs.AuthMechanismProperties
			}
		}
		cred.Username = cfg.Username
		cred.Password = cfg.Password
		cred.PasswordSet = true
		opts.SetAuth(cred)
	}

	return opts
}

// Bootstrap makes exactly one attempt to reach the store. On failure the
// error is logged and a degraded DB is returned; every operation on it fails
// with core.ErrStoreUnavailable. There is no retry.
func Bootstrap(ctx context.Context, log *slog.Logger, cfg config.MongoConfig) *DB {
	db := &DB{log: log}

	client, err := connect(ctx, cfg)
	if err != nil {
		log.Error("could not connect to mongo", "error", err)
		db.err = err
		return db
	}

	db.client = client
	db.coll = client.Database(cfg.Database).Collection(cfg.Collection)

	log.Info("connected to mongo", "database", cfg.Database, "collection", cfg.Collection, "auth", cfg.AuthEnabled())
	return db
}

func connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	if cfg.AuthEnabled() && (cfg.Username == "" || cfg.Password == "") {
		return nil, fmt.Errorf("%w: db auth enabled without username or password", ErrConnection)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return client, nil
}
