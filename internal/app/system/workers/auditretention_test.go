package workers_test

import (
	"testing"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/store/audit"
	"github.com/dalemusser/tasktracker/internal/app/system/workers"
	"github.com/dalemusser/tasktracker/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestNewAuditRetention_DisabledIsNil(t *testing.T) {
	w := workers.NewAuditRetention(nil, zap.NewNop(), time.Minute, 0)
	if w != nil {
		t.Fatal("expected nil worker for zero retention")
	}
	// nil worker is inert
	w.Start()
	w.Stop()
	if n := w.Purge(); n != 0 {
		t.Errorf("Purge() = %d, want 0", n)
	}
}

func TestAuditRetention_Purge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	for _, age := range []time.Duration{1 * time.Hour, 40 * 24 * time.Hour, 100 * 24 * time.Hour} {
		if err := store.Log(ctx, audit.Event{
			Timestamp: now.Add(-age),
			Category:  audit.CategoryTasks,
			EventType: audit.EventTaskCreated,
			Success:   true,
		}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	w := workers.NewAuditRetention(store, zap.NewNop(), time.Hour, 30*24*time.Hour)
	if n := w.Purge(); n != 2 {
		t.Errorf("Purge() = %d, want 2", n)
	}

	left, err := db.Collection("audit_events").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if left != 1 {
		t.Errorf("remaining events = %d, want 1", left)
	}
}

func TestAuditRetention_StartStop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	w := workers.NewAuditRetention(audit.New(db), zap.NewNop(), time.Hour, 24*time.Hour)
	w.Start()
	w.Stop()
	w.Stop()
}
