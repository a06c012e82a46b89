package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by filtered listing.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	coll, err := db.collection()
	if err != nil {
		return err
	}

	db.log.Debug("ensuring tasks indexes")

	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "completed", Value: 1}},
		Options: options.Index().SetName("completed_1"),
	})
	if err != nil {
		return db.mapErr("create completed index", err)
	}

	db.log.Debug("tasks indexes ready")
	return nil
}
