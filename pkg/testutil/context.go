package testutil

import (
	"net/http"
	"time"

	"parlo/pkg/requestcontext"
)

// WithUserID adds a user id to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithUserID(req *http.Request, userID int64) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithTime pins the request-scoped clock, simulating the RequestTime
// middleware with a fixed instant.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
