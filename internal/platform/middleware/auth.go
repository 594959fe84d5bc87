package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"parlo/pkg/requestcontext"
)

// TokenValidator validates a bearer token and resolves the numeric user id it
// carries. The practice views only ever see the resolved id; how it was
// obtained is an auth-layer concern.
type TokenValidator interface {
	UserIDFromToken(tokenString string) (int64, error)
}

// RequireUser resolves the authenticated user id and injects it into the
// request context. Two resolution paths exist:
//
//   - trusted X-User-ID header, when the deployment runs behind a gateway
//     that authenticates and rewrites headers (trustHeader=true);
//   - Authorization: Bearer <jwt>, validated locally.
//
// Requests with no resolvable user id are rejected with 401 and no partial data.
func RequireUser(validator TokenValidator, trustHeader bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if trustHeader {
				if raw := r.Header.Get("X-User-ID"); raw != "" {
					userID, err := strconv.ParseInt(raw, 10, 64)
					if err != nil || userID <= 0 {
						unauthorized(w)
						return
					}
					next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
					return
				}
			}

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if token, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
				userID, err := validator.UserIDFromToken(token)
				if err != nil {
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", requestcontext.RequestID(ctx),
					)
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
				return
			}

			logger.WarnContext(ctx, "unauthorized access - missing credentials",
				"request_id", requestcontext.RequestID(ctx),
			)
			unauthorized(w)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
