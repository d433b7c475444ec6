package taskstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/system/normalize"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no task matches.
	ErrNotFound = errors.New("task not found")
	// ErrStatusChanged is returned when the task's status moved between
	// read and write.
	ErrStatusChanged = errors.New("task status changed concurrently")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

// Create inserts t. ID, TitleCI and timestamps are assigned here; an
// empty Status becomes To-Do.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	t.ID = primitive.NewObjectID()
	t.Title = normalize.Name(t.Title)
	t.TitleCI = text.Fold(t.Title)
	if t.Status == "" {
		t.Status = models.StatusToDo
	}
	if t.Date != nil {
		d := t.Date.UTC()
		t.Date = &d
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// GetByID loads the raw task document.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Exists reports whether a task with id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Update holds the fields that may change on a task. Nil fields are left
// untouched.
type Update struct {
	Title         *string
	EstimatedTime *string
	RemainingTime *string
	AssignedTo    *primitive.ObjectID
	Priority      *string
	Status        *string
	Date          *time.Time
	ClearDate     bool

	// ExpectStatus, when set, makes the write conditional on the task
	// still being in that status.
	ExpectStatus string
}

func (u Update) doc(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if u.Title != nil {
		title := normalize.Name(*u.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if u.EstimatedTime != nil {
		set["estimated_time"] = *u.EstimatedTime
	}
	if u.RemainingTime != nil {
		set["remaining_time"] = *u.RemainingTime
	}
	if u.AssignedTo != nil {
		set["assigned_to"] = *u.AssignedTo
	}
	if u.Priority != nil {
		set["priority"] = *u.Priority
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}

	doc := bson.M{"$set": set}
	switch {
	case u.ClearDate:
		doc["$unset"] = bson.M{"date": ""}
	case u.Date != nil:
		set["date"] = u.Date.UTC()
	}
	return doc
}

// Update applies upd to the task and returns the stored result.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Task, error) {
	filter := bson.M{"_id": id}
	if upd.ExpectStatus != "" {
		filter["status"] = upd.ExpectStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t models.Task
	err := s.c.FindOneAndUpdate(ctx, filter, upd.doc(time.Now().UTC()), opts).Decode(&t)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if upd.ExpectStatus == "" {
		return nil, ErrNotFound
	}
	ok, xerr := s.Exists(ctx, id)
	if xerr != nil {
		return nil, xerr
	}
	if ok {
		return nil, ErrStatusChanged
	}
	return nil, ErrNotFound
}

// Delete removes the task. Returns ErrNotFound when nothing was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
