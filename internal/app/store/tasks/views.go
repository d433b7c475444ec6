package taskstore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/system/normalize"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Filter narrows List and Count. Zero values match everything.
type Filter struct {
	AssignedTo *primitive.ObjectID
	Status     string
	Priority   string
	From       *time.Time // inclusive, on date
	To         *time.Time // inclusive, on date
	Search     string     // case-insensitive title substring
}

func (f Filter) match() bson.M {
	m := bson.M{}
	if f.AssignedTo != nil {
		m["assigned_to"] = *f.AssignedTo
	}
	if f.Status != "" {
		m["status"] = f.Status
	}
	if f.Priority != "" {
		m["priority"] = f.Priority
	}
	if f.From != nil || f.To != nil {
		rng := bson.M{}
		if f.From != nil {
			rng["$gte"] = f.From.UTC()
		}
		if f.To != nil {
			rng["$lte"] = f.To.UTC()
		}
		m["date"] = rng
	}
	if q := normalize.QueryParam(f.Search); q != "" {
		m["title_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(q))}
	}
	return m
}

// viewStages joins the assignee and shapes documents as TaskView.
func viewStages() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "assigned_to",
			"foreignField": "_id",
			"as":           "assignee",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$assignee",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"title":          1,
			"estimated_time": 1,
			"remaining_time": 1,
			"priority":       1,
			"status":         1,
			"date":           1,
			"created_by":     1,
			"created_at":     1,
			"updated_at":     1,
			"assigned_to": bson.M{"$cond": bson.A{
				bson.M{"$ifNull": bson.A{"$assignee._id", false}},
				bson.M{
					"_id":   "$assignee._id",
					"name":  "$assignee.name",
					"email": "$assignee.email",
				},
				nil,
			}},
		}}},
	}
}

// GetView loads one task with its assignee joined.
func (s *Store) GetView(ctx context.Context, id primitive.ObjectID) (*models.TaskView, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipe = append(pipe, viewStages()...)

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var v models.TaskView
	if err := cur.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns tasks matching f, newest first, with assignees joined.
func (s *Store) List(ctx context.Context, f Filter, skip, limit int64) ([]models.TaskView, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: f.match()}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
	}
	if skip > 0 {
		pipe = append(pipe, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipe = append(pipe, bson.D{{Key: "$limit", Value: limit}})
	}
	pipe = append(pipe, viewStages()...)

	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.TaskView{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of tasks matching f.
func (s *Store) Count(ctx context.Context, f Filter) (int64, error) {
	return s.c.CountDocuments(ctx, f.match())
}
