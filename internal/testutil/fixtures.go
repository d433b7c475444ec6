package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/tasktracker/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plain-text password of every fixture user.
const FixturePassword = "password123"

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db   *mongo.Database
	t    *testing.T
	hash string
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// passwordHash hashes FixturePassword once per Fixtures at the cheapest cost.
func (f *Fixtures) passwordHash() string {
	if f.hash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
		if err != nil {
			f.t.Fatalf("hash fixture password: %v", err)
		}
		f.hash = string(h)
	}
	return f.hash
}

// CreateUserWithRoles inserts a user holding roles.
func (f *Fixtures) CreateUserWithRoles(ctx context.Context, name, email string, roles ...string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Email:        email,
		PasswordHash: f.passwordHash(),
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateUser creates a plain "user" account.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUserWithRoles(ctx, name, email, "user")
}

// CreateManager creates a manager account.
func (f *Fixtures) CreateManager(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUserWithRoles(ctx, name, email, "manager")
}

// CreateSuperAdmin creates a super admin account.
func (f *Fixtures) CreateSuperAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUserWithRoles(ctx, name, email, "superAdmin")
}

// CreateTask creates a Medium priority To-Do task.
func (f *Fixtures) CreateTask(ctx context.Context, title string, assignedTo, createdBy primitive.ObjectID) models.Task {
	f.t.Helper()
	return f.CreateTaskWithStatus(ctx, title, assignedTo, createdBy, models.StatusToDo)
}

// CreateTaskWithStatus creates a Medium priority task in status.
func (f *Fixtures) CreateTaskWithStatus(ctx context.Context, title string, assignedTo, createdBy primitive.ObjectID, status string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:            primitive.NewObjectID(),
		Title:         title,
		TitleCI:       text.Fold(title),
		EstimatedTime: "2 hrs",
		RemainingTime: "2 hrs",
		AssignedTo:    assignedTo,
		Priority:      models.PriorityMedium,
		Status:        status,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateComment appends a comment to a task.
func (f *Fixtures) CreateComment(ctx context.Context, taskID, userID primitive.ObjectID, body string) models.TaskComment {
	f.t.Helper()

	c := models.TaskComment{
		ID:        primitive.NewObjectID(),
		TaskID:    taskID,
		UserID:    userID,
		Comment:   body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("task_comments").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return c
}
