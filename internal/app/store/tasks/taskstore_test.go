package taskstore_test

import (
	"errors"
	"testing"
	"time"

	taskstore "github.com/dalemusser/tasktracker/internal/app/store/tasks"
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"github.com/dalemusser/tasktracker/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strp(s string) *string { return &s }

func TestStore_CreateAndGetView(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	due := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	created, err := store.Create(ctx, models.Task{
		Title:         "Write report",
		EstimatedTime: "2 hrs",
		RemainingTime: "1 hr",
		AssignedTo:    owner.ID,
		Priority:      models.PriorityHigh,
		Date:          &due,
		CreatedBy:     owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be assigned")
	}
	if created.Status != models.StatusToDo {
		t.Errorf("Status = %q, want %q", created.Status, models.StatusToDo)
	}

	v, err := store.GetView(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetView failed: %v", err)
	}
	if v.Title != "Write report" || v.EstimatedTime != "2 hrs" || v.RemainingTime != "1 hr" {
		t.Errorf("unexpected fields: %+v", v)
	}
	if v.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q", v.Priority)
	}
	if v.Date == nil || !v.Date.Equal(due) {
		t.Errorf("Date = %v, want %v", v.Date, due)
	}
	if v.AssignedTo == nil || v.AssignedTo.ID != owner.ID || v.AssignedTo.Name != "Owner" {
		t.Errorf("AssignedTo = %+v, want owner", v.AssignedTo)
	}
	if v.CreatedAt.IsZero() || v.UpdatedAt.IsZero() {
		t.Error("expected timestamps")
	}
}

func TestStore_GetView_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetView(ctx, primitive.NewObjectID()); !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListAndCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "Alice", "alice@example.com")
	bob := fixtures.CreateUser(ctx, "Bob", "bob@example.com")

	fixtures.CreateTask(ctx, "Alice one", alice.ID, alice.ID)
	fixtures.CreateTask(ctx, "Alice two", alice.ID, alice.ID)
	bobTask := fixtures.CreateTask(ctx, "Bob Budget", bob.ID, bob.ID)

	all, err := store.List(ctx, taskstore.Filter{}, 0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}
	if all[0].ID != bobTask.ID {
		t.Error("expected newest task first")
	}

	mine, err := store.List(ctx, taskstore.Filter{AssignedTo: &alice.ID}, 0, 0)
	if err != nil {
		t.Fatalf("List(assignee) failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 tasks for alice, got %d", len(mine))
	}
	for _, v := range mine {
		if v.AssignedTo == nil || v.AssignedTo.ID != alice.ID {
			t.Errorf("task %s not assigned to alice", v.ID.Hex())
		}
	}

	found, err := store.List(ctx, taskstore.Filter{Search: "budget"}, 0, 0)
	if err != nil {
		t.Fatalf("List(search) failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != bobTask.ID {
		t.Errorf("search returned %+v", found)
	}

	page, err := store.List(ctx, taskstore.Filter{}, 1, 1)
	if err != nil {
		t.Fatalf("List(page) failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("expected 1 task on page, got %d", len(page))
	}

	n, err := store.Count(ctx, taskstore.Filter{AssignedTo: &alice.ID})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestStore_List_DateRangeAndStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Dee", "dee@example.com")
	early := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	if _, err := store.Create(ctx, models.Task{Title: "Early", AssignedTo: u.ID, CreatedBy: u.ID, Priority: models.PriorityLow, Date: &early}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Task{Title: "Late", AssignedTo: u.ID, CreatedBy: u.ID, Priority: models.PriorityLow, Status: models.StatusCompleted, Date: &late}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	got, err := store.List(ctx, taskstore.Filter{From: &from}, 0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Late" {
		t.Errorf("date filter returned %+v", got)
	}

	got, err = store.List(ctx, taskstore.Filter{Status: models.StatusToDo}, 0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Early" {
		t.Errorf("status filter returned %+v", got)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Eve", "eve@example.com")
	task := fixtures.CreateTask(ctx, "Draft", u.ID, u.ID)

	got, err := store.Update(ctx, task.ID, taskstore.Update{
		Title:        strp("Final"),
		Status:       strp(models.StatusInProgress),
		ExpectStatus: models.StatusToDo,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Title != "Final" || got.Status != models.StatusInProgress {
		t.Errorf("unexpected result: %+v", got)
	}
	if got.RemainingTime != task.RemainingTime {
		t.Error("untouched fields must be preserved")
	}
	if !got.UpdatedAt.After(task.UpdatedAt) && !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Error("UpdatedAt went backwards")
	}

	// Stale expectation
	_, err = store.Update(ctx, task.ID, taskstore.Update{
		Status:       strp(models.StatusCompleted),
		ExpectStatus: models.StatusToDo,
	})
	if !errors.Is(err, taskstore.ErrStatusChanged) {
		t.Errorf("expected ErrStatusChanged, got %v", err)
	}

	_, err = store.Update(ctx, primitive.NewObjectID(), taskstore.Update{Title: strp("x")})
	if !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Update_ClearDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Fay", "fay@example.com")
	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	task, err := store.Create(ctx, models.Task{Title: "Dated", AssignedTo: u.ID, CreatedBy: u.ID, Priority: models.PriorityMedium, Date: &due})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Update(ctx, task.ID, taskstore.Update{ClearDate: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Date != nil {
		t.Errorf("Date = %v, want nil", got.Date)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateUser(ctx, "Gus", "gus@example.com")
	task := fixtures.CreateTask(ctx, "Temp", u.ID, u.ID)

	if err := store.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, taskstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	n, _ := db.Collection("tasks").CountDocuments(ctx, bson.M{})
	if n != 1 {
		t.Errorf("collection changed on missing delete: %d docs", n)
	}

	if err := store.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok, _ := store.Exists(ctx, task.ID); ok {
		t.Error("task still exists after delete")
	}
}
