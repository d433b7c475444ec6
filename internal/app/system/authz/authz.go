// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recognised roles.
const (
	RoleUser       = "user"
	RoleManager    = "manager"
	RoleSuperAdmin = "superAdmin"
)

// PrivilegedRoles see and manage every user's tasks.
var PrivilegedRoles = []string{RoleManager, RoleSuperAdmin}

// UserCtx returns the caller's roles, email, ObjectID and a found flag.
// A missing user or a malformed id yields ok=false so callers can trust
// that ok=true means a usable identity.
func UserCtx(r *http.Request) (roles []string, email string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return nil, "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, "", primitive.NilObjectID, false
	}
	return user.Roles, user.Email, userID, true
}

// HasAnyRole reports whether the caller holds any of roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.HasAnyRole(roles...)
}

// IsPrivileged reports whether the caller is a manager or super admin.
func IsPrivileged(r *http.Request) bool {
	return HasAnyRole(r, PrivilegedRoles...)
}
