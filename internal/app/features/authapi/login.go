package authapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	userstore "github.com/dalemusser/tasktracker/internal/app/store/users"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/auth"
	"github.com/dalemusser/tasktracker/internal/app/system/inputval"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/normalize"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
)

// Login failure messages.
const (
	MsgUserNotFound       = "User not found"
	MsgInvalidCredentials = "Invalid credentials"
)

// HandleLogin verifies credentials and issues a session token.
//
//	POST /auth/login {email, password}
//	200 {message, user, token, expiresAt}
//	400 unknown email, 401 wrong password
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, "Invalid request body"))
		return
	}
	in.Email = normalize.Email(in.Email)

	if res := inputval.Validate(in); res.HasErrors() {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, res.First()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		h.AuditLog.LoginFailedUserNotFound(ctx, r, in.Email)
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgUserNotFound))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, u.Email)
		apierr.Write(w, r, h.Log, apierr.Wrap(apierr.Unauthenticated, MsgInvalidCredentials, err))
		return
	}

	token, exp, err := h.Tokens.Issue(auth.SessionUser{ID: u.ID.Hex(), Email: u.Email, Roles: u.Roles})
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	h.AuditLog.LoginSuccess(ctx, r, u.ID, u.Email)

	jsonio.Write(w, http.StatusOK, sessionResponse{
		Message:   "Login successful",
		User:      toUserJSON(u),
		Token:     token,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
	})
}
