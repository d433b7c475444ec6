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
	"github.com/dalemusser/tasktracker/internal/domain/models"
	"go.uber.org/zap"
)

// MsgUserExists is returned when registering an email already in use.
const MsgUserExists = "User already exists"

// MsgPasswordTooLong is returned when the password exceeds bcrypt's byte limit.
const MsgPasswordTooLong = "Password must be at most 72 bytes."

// HandleRegister creates an account and signs the new user in.
//
//	POST /auth/register {name, email, password, role?}
//	201 {message, user, token, expiresAt}
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, "Invalid request body"))
		return
	}
	in.Name = normalize.Name(in.Name)
	in.Email = normalize.Email(in.Email)

	if res := inputval.Validate(in); res.HasErrors() {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, res.First()))
		return
	}
	if auth.PasswordTooLong(in.Password) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgPasswordTooLong))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, in.Email)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	if exists {
		h.AuditLog.RegisterFailedDuplicate(ctx, r, in.Email)
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgUserExists))
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        in.Role,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		// lost a race with a concurrent registration
		h.AuditLog.RegisterFailedDuplicate(ctx, r, in.Email)
		apierr.Write(w, r, h.Log, apierr.New(apierr.InvalidArgument, MsgUserExists))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	token, exp, err := h.Tokens.Issue(auth.SessionUser{ID: u.ID.Hex(), Email: u.Email, Roles: u.Roles})
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	h.AuditLog.UserRegistered(ctx, r, u.ID, u.Email, u.Roles)
	h.Log.Info("user registered", zap.String("user_id", u.ID.Hex()))

	jsonio.Write(w, http.StatusCreated, sessionResponse{
		Message:   "User registered successfully",
		User:      toUserJSON(&u),
		Token:     token,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
	})
}
