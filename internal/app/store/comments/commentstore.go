package commentstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrEmpty is returned for a comment with no text.
var ErrEmpty = errors.New("comment is empty")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("task_comments")}
}

// Create appends a comment. Callers are responsible for checking that
// the task and author exist.
func (s *Store) Create(ctx context.Context, c models.TaskComment) (models.TaskComment, error) {
	c.Comment = strings.TrimSpace(c.Comment)
	if c.Comment == "" {
		return models.TaskComment{}, ErrEmpty
	}
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.TaskComment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

// ListForTask returns a task's comments with author name joined,
// newest first.
func (s *Store) ListForTask(ctx context.Context, taskID primitive.ObjectID) ([]models.TaskCommentView, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"task_id": taskID}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$author",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"task_id":    1,
			"comment":    1,
			"created_at": 1,
			"user": bson.M{"$cond": bson.A{
				bson.M{"$ifNull": bson.A{"$author._id", false}},
				bson.M{"_id": "$author._id", "name": "$author.name"},
				nil,
			}},
		}}},
	}

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.TaskCommentView{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountForTask returns how many comments a task has.
func (s *Store) CountForTask(ctx context.Context, taskID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"task_id": taskID})
}

// DeleteForTask removes every comment on a task and returns how many
// were removed.
func (s *Store) DeleteForTask(ctx context.Context, taskID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"task_id": taskID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
