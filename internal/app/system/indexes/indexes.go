// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each collection's set is reconciled
independently and problems are aggregated so startup can fail fast with
the full picture.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	var problems []string
	for _, set := range All() {
		r := reconciler{coll: db.Collection(set.Collection), log: logger}
		if err := r.ensure(ctx, set.Models); err != nil {
			problems = append(problems, set.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Set is the desired indexes for one collection.
type Set struct {
	Collection string
	Models     []mongo.IndexModel
}

// All returns every index the application relies on.
func All() []Set {
	return []Set{
		{"users", usersIndexes()},
		{"tasks", tasksIndexes()},
		{"task_comments", commentsIndexes()},
		{"audit_events", auditIndexes()},
	}
}

func named(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func usersIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_users_email").SetUnique(true),
		},
		named("idx_users_nameci__id", bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}),
		named("idx_users_role", bson.D{{Key: "role", Value: 1}}),
	}
}

func tasksIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// default list: own tasks, newest first
		named("idx_tasks_assigned_createdat", bson.D{{Key: "assigned_to", Value: 1}, {Key: "created_at", Value: -1}}),
		named("idx_tasks_createdat__id", bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
		named("idx_tasks_status_priority", bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: 1}}),
		named("idx_tasks_date", bson.D{{Key: "date", Value: 1}}),
		named("idx_tasks_createdby", bson.D{{Key: "created_by", Value: 1}}),
		named("idx_tasks_titleci", bson.D{{Key: "title_ci", Value: 1}}),
	}
}

func commentsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		named("idx_comments_task_createdat", bson.D{{Key: "task_id", Value: 1}, {Key: "created_at", Value: -1}}),
		named("idx_comments_user", bson.D{{Key: "user_id", Value: 1}}),
	}
}

func auditIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		named("idx_audit_timestamp", bson.D{{Key: "timestamp", Value: -1}}),
		named("idx_audit_user_timestamp", bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}),
		named("idx_audit_task_timestamp", bson.D{{Key: "task_id", Value: 1}, {Key: "timestamp", Value: -1}}),
		named("idx_audit_category_type_timestamp", bson.D{
			{Key: "category", Value: 1},
			{Key: "event_type", Value: 1},
			{Key: "timestamp", Value: -1},
		}),
	}
}

/* -------------------------------------------------------------------------- */
/* Reconciliation                                                              */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(p *bool) bool {
	return p != nil && *p
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

type reconciler struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func (r reconciler) existing(ctx context.Context) (map[string]existingIndex, error) {
	cur, err := r.coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			r.log.Warn("failed to decode existing index",
				zap.String("collection", r.coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensure makes the collection's indexes match models. An index with the
// same keys but a different name or uniqueness is dropped and recreated.
func (r reconciler) ensure(ctx context.Context, models []mongo.IndexModel) error {
	have, err := r.existing(ctx)
	if err != nil {
		// A collection that does not exist yet has no indexes.
		have = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := ""
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()
		fields := []zap.Field{
			zap.String("collection", r.coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", boolVal(unique)),
		}

		if ex, ok := have[sig]; ok {
			if boolVal(ex.Unique) == boolVal(unique) && (name == "" || ex.Name == name) {
				r.log.Debug("reusing existing index", fields...)
				continue
			}
			if _, err := r.coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				r.log.Warn("drop existing index failed", append(fields, zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", r.coll.Name(), name, err))
				continue
			}
		}

		if _, err := r.coll.Indexes().CreateOne(ctx, m); err != nil {
			r.log.Warn("index ensure failed", append(fields, zap.Error(err))...)
			if isDuplicateKeyErr(err) && boolVal(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", r.coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", r.coll.Name(), name, err))
			}
			continue
		}
		r.log.Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
