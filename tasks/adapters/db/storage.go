package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"player-list/tasks/core"
)

type DB struct {
	log    *slog.Logger
	client *mongo.Client
	coll   *mongo.Collection
	err    error // bootstrap failure, nil when connected
}

type taskDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Task      string             `bson:"task"`
	Completed bool               `bson:"completed"`
}

func (d taskDoc) toCore() core.Task {
	return core.Task{
		ID:        d.ID.Hex(),
		Task:      d.Task,
		Completed: d.Completed,
		CreatedAt: d.ID.Timestamp(),
	}
}

// Connected reports whether the bootstrap succeeded.
func (db *DB) Connected() bool {
	return db.coll != nil
}

func (db *DB) Close(ctx context.Context) error {
	if db.client == nil {
		return nil
	}
	return db.client.Disconnect(ctx)
}

func (db *DB) Ping(ctx context.Context) error {
	if db.client == nil {
		if db.err != nil {
			return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, db.err)
		}
		return core.ErrStoreUnavailable
	}
	if err := db.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreUnavailable, err)
	}
	return nil
}

func (db *DB) CreateTask(ctx context.Context, label string) (core.Task, error) {
	coll, err := db.collection()
	if err != nil {
		return core.Task{}, err
	}

	doc := taskDoc{
		ID:   primitive.NewObjectID(),
		Task: label,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return core.Task{}, db.mapErr("insert task", err)
	}
	return doc.toCore(), nil
}

func (db *DB) GetTask(ctx context.Context, id string) (core.Task, error) {
	coll, err := db.collection()
	if err != nil {
		return core.Task{}, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.Task{}, core.ErrTaskNotFound
	}

	var doc taskDoc
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, db.mapErr("get task", err)
	}
	return doc.toCore(), nil
}

func (db *DB) ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	coll, err := db.collection()
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if f.Completed != nil {
		filter["completed"] = *f.Completed
	}

	// ObjectIDs grow with insertion time
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, db.mapErr("list tasks", err)
	}

	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, db.mapErr("list tasks", err)
	}

	out := make([]core.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toCore())
	}
	return out, nil
}

func (db *DB) UpdateTask(ctx context.Context, id string, p core.TaskPatch) (core.Task, error) {
	if p.Empty() {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	coll, err := db.collection()
	if err != nil {
		return core.Task{}, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.Task{}, core.ErrTaskNotFound
	}

	set := bson.M{}
	if p.Task != nil {
		set["task"] = *p.Task
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}

	return db.findAndUpdate(ctx, coll, "update task", oid, bson.M{"$set": set})
}

// ToggleTask negates completed with a pipeline update.
func (db *DB) ToggleTask(ctx context.Context, id string) (core.Task, error) {
	coll, err := db.collection()
	if err != nil {
		return core.Task{}, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.Task{}, core.ErrTaskNotFound
	}

	flip := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "completed", Value: bson.D{{Key: "$not", Value: "$completed"}}}}}},
	}
	return db.findAndUpdate(ctx, coll, "toggle task", oid, flip)
}

func (db *DB) DeleteTask(ctx context.Context, id string) error {
	coll, err := db.collection()
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrTaskNotFound
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return db.mapErr("delete task", err)
	}
	if res.DeletedCount == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

var _ core.DB = (*DB)(nil)

// mongo helpers

func (db *DB) findAndUpdate(ctx context.Context, coll *mongo.Collection, op string, oid primitive.ObjectID, update any) (core.Task, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDoc
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, db.mapErr(op, err)
	}
	return doc.toCore(), nil
}

func (db *DB) collection() (*mongo.Collection, error) {
	if db.coll == nil {
		return nil, core.ErrStoreUnavailable
	}
	return db.coll, nil
}

func (db *DB) mapErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, core.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded)
}
