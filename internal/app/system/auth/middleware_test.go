package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestRequireBearer_NoToken_Returns401(t *testing.T) {
	tm := newTestTokens(t)
	rec := httptest.NewRecorder()

	tm.RequireBearer(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/tasks", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if msg := message(t, rec); msg != auth.MsgNoToken {
		t.Errorf("message = %q, want %q", msg, auth.MsgNoToken)
	}
}

func TestRequireBearer_NonBearerScheme_Returns401(t *testing.T) {
	tm := newTestTokens(t)
	req := httptest.NewRequest("GET", "/api/v1/tasks", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	tm.RequireBearer(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireBearer_InvalidToken_Returns403(t *testing.T) {
	tm := newTestTokens(t)
	req := httptest.NewRequest("GET", "/api/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()

	tm.RequireBearer(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if msg := message(t, rec); msg != auth.MsgInvalidToken {
		t.Errorf("message = %q, want %q", msg, auth.MsgInvalidToken)
	}
}

func TestRequireBearer_ValidToken_InjectsUser(t *testing.T) {
	tm := newTestTokens(t)
	u := testUser()
	tok, _, err := tm.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var seen *auth.SessionUser
	h := tm.RequireBearer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if seen == nil || seen.ID != u.ID {
		t.Errorf("expected user %s in context, got %+v", u.ID, seen)
	}
}

func TestRequireRole(t *testing.T) {
	tm := newTestTokens(t)

	tests := []struct {
		name  string
		user  *auth.SessionUser
		want  int
		roles []string
	}{
		{"no user", nil, http.StatusUnauthorized, []string{"manager"}},
		{"wrong role", &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Roles: []string{"user"}}, http.StatusForbidden, []string{"manager", "superAdmin"}},
		{"one of many", &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Roles: []string{"user", "superAdmin"}}, http.StatusOK, []string{"manager", "superAdmin"}},
		{"case differs", &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Roles: []string{"MANAGER"}}, http.StatusForbidden, []string{"manager"}},
		{"lowercased superAdmin", &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Roles: []string{"superadmin"}}, http.StatusForbidden, []string{"manager", "superAdmin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/auth/getAllUsers", nil)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			tm.RequireRole(tt.roles...)(okHandler()).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestSessionUser_HasAnyRole_ExactMatch(t *testing.T) {
	u := &auth.SessionUser{Roles: []string{"Manager", "superadmin"}}
	if u.HasAnyRole("manager", "superAdmin") {
		t.Error("roles must match case-sensitively")
	}
	if !u.HasAnyRole("Manager") {
		t.Error("exact role should match")
	}
}

func TestSessionUser_HasAnyRole_Nil(t *testing.T) {
	var u *auth.SessionUser
	if u.HasAnyRole("user") {
		t.Error("nil user should hold no roles")
	}
}
