// internal/app/system/auth/middleware.go
package auth

import (
	"net/http"
	"strings"

	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"go.uber.org/zap"
)

// Messages kept for client compatibility.
const (
	MsgNoToken      = "Access denied. No token provided."
	MsgInvalidToken = "Invalid token."
	MsgForbidden    = "Access denied. Insufficient role."
)

// bearerToken returns the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireBearer verifies the bearer token and injects the SessionUser.
//   - no token:      401
//   - invalid token: 403
func (m *TokenManager) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerToken(r)
		if tok == "" {
			apierr.Write(w, r, m.logger, apierr.New(apierr.Unauthenticated, MsgNoToken))
			return
		}
		u, err := m.Verify(tok)
		if err != nil {
			m.logger.Debug("token rejected",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			apierr.Write(w, r, m.logger, apierr.New(apierr.PermissionDenied, MsgInvalidToken))
			return
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireRole admits users holding at least one of allowed. It must run
// after RequireBearer.
//   - no user:        401
//   - no shared role: 403
func (m *TokenManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				apierr.Write(w, r, m.logger, apierr.New(apierr.Unauthenticated, MsgNoToken))
				return
			}
			if !u.HasAnyRole(allowed...) {
				apierr.Write(w, r, m.logger, apierr.New(apierr.PermissionDenied, MsgForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
