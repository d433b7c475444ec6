// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/tasktracker/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collection pairs a collection name with its JSON-Schema validator.
// A nil Schema only ensures the collection exists.
type Collection struct {
	Name   string
	Schema bson.M
}

// All lists the collections the application owns.
func All() []Collection {
	return []Collection{
		{"users", usersSchema()},
		{"tasks", tasksSchema()},
		{"task_comments", commentsSchema()},
		{"audit_events", auditSchema()},
	}
}

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	existing := map[string]bool{}
	if names, err := db.ListCollectionNames(ctx, bson.M{}); err == nil {
		for _, n := range names {
			existing[n] = true
		}
	}

	var problems []string
	for _, c := range All() {
		if !existing[c.Name] {
			if err := db.CreateCollection(ctx, c.Name); err != nil && !isNamespaceExistsErr(err) {
				logger.Warn("createCollection failed", zap.String("collection", c.Name), zap.Error(err))
				problems = append(problems, c.Name+": "+err.Error())
				continue
			}
			logger.Info("created collection", zap.String("collection", c.Name))
		}
		if c.Schema == nil {
			continue
		}
		if err := setValidator(ctx, db, c.Name, c.Schema); err != nil {
			if isUnsupported(err) {
				logger.Info("validator skipped (unsupported)", zap.String("collection", c.Name))
				continue
			}
			problems = append(problems, c.Name+": "+err.Error())
			continue
		}
		logger.Debug("validator ensured", zap.String("collection", c.Name))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	return db.RunCommand(ctx, cmd).Err()
}

/* ------------------------- error helpers ------------------------- */

func commandErr(err error) (mongo.CommandError, bool) {
	var ce mongo.CommandError
	ok := errors.As(err, &ce)
	return ce, ok
}

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := commandErr(err); ok && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

// isUnsupported matches "no such command" (59) and "not implemented" (115).
func isUnsupported(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := commandErr(err); ok && (ce.Code == 59 || ce.Code == 115) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "no such command") ||
		strings.Contains(s, "not implemented") ||
		strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enum(values []string) bson.A {
	out := make(bson.A, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "role"},
			"properties": bson.M{
				"name":          nonBlank,
				"name_ci":       bson.M{"bsonType": "string"},
				"email":         bson.M{"bsonType": "string", "minLength": 3, "pattern": "^[^A-Z\\s]+@[^A-Z\\s]+$"},
				"password_hash": bson.M{"bsonType": "string"},
				"role": bson.M{
					"bsonType": "array",
					"items":    bson.M{"bsonType": "string", "minLength": 1},
				},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func tasksSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "assigned_to", "priority", "status", "created_by"},
			"properties": bson.M{
				"title":          nonBlank,
				"title_ci":       bson.M{"bsonType": "string"},
				"estimated_time": bson.M{"bsonType": "string"},
				"remaining_time": bson.M{"bsonType": "string"},
				"assigned_to":    bson.M{"bsonType": "objectId"},
				"created_by":     bson.M{"bsonType": "objectId"},
				"priority":       bson.M{"enum": enum(models.Priorities)},
				"status":         bson.M{"enum": enum(models.Statuses)},
				"date":           bson.M{"bsonType": "date"},
				"created_at":     bson.M{"bsonType": "date"},
				"updated_at":     bson.M{"bsonType": "date"},
			},
		},
	}
}

func commentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"task_id", "user_id", "comment", "created_at"},
			"properties": bson.M{
				"task_id":    bson.M{"bsonType": "objectId"},
				"user_id":    bson.M{"bsonType": "objectId"},
				"comment":    nonBlank,
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func auditSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"timestamp", "category", "event_type", "success"},
			"properties": bson.M{
				"timestamp":  bson.M{"bsonType": "date"},
				"category":   bson.M{"bsonType": "string"},
				"event_type": bson.M{"bsonType": "string"},
				"success":    bson.M{"bsonType": "bool"},
			},
		},
	}
}
