// internal/app/system/auth/user.go
package auth

import (
	"context"
	"net/http"
	"slices"
)

// SessionUser is the identity carried by a verified token and injected
// into the request context by RequireBearer.
type SessionUser struct {
	ID    string // user ObjectID hex
	Email string
	Roles []string
}

// HasAnyRole reports whether u holds at least one of roles. Role names
// match exactly; "Manager" is not "manager".
func (u *SessionUser) HasAnyRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, have := range u.Roles {
		if slices.Contains(roles, have) {
			return true
		}
	}
	return false
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user set by RequireBearer, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects u into r's context without a token. Tests only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}
