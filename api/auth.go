package api

import (
	"context"
	"net/http"
)

type contextKey string

const adminUserKey contextKey = "adminUser"

// requireAdminAuth guards the administrative routes with HTTP basic auth.
// Credentials are checked against the service's configured admin account.
// A failed check never touches active sessions.
func (s *Server) requireAdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !s.service.AdminAuthorized(username, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Admin Panel"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized admin access.")
			return
		}

		ctx := context.WithValue(r.Context(), adminUserKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminUser returns the authenticated admin name from the request context.
func adminUser(ctx context.Context) string {
	if name, ok := ctx.Value(adminUserKey).(string); ok {
		return name
	}
	return ""
}
