package httputil

import (
	"context"
	"net/http"
)

// contextKey is unexported so other packages cannot collide with our keys
type contextKey string

const userIDKey contextKey = "studymate.userID"

// WithUserID stores the verified user ID on the request context. Only the
// auth middleware calls this, after token verification.
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID returns the verified user ID, or "" on an unauthenticated
// request (the health endpoint is the only one that skips auth).
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
