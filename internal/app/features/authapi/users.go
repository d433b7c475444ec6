package authapi

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/tasktracker/internal/app/store/users"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/authz"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeMe returns the caller's account.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		apierr.Write(w, r, h.Log, apierr.New(apierr.Unauthenticated, "Access denied. No token provided."))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, userstore.ErrNotFound) {
		apierr.Write(w, r, h.Log, apierr.New(apierr.NotFound, "User not found"))
		return
	}
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	jsonio.Write(w, http.StatusOK, meResponse{User: toUserJSON(u)})
}

// ServeAllUsers lists every account, optionally filtered by ?q=.
func (h *Handler) ServeAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx, query.Get(r, "q"))
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	out := make([]userJSON, 0, len(users))
	for i := range users {
		out = append(out, toUserJSON(&users[i]))
	}
	jsonio.Write(w, http.StatusOK, usersResponse{Users: out})
}
