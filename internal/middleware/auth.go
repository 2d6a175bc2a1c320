package middleware

import (
	"context"
	"net/http"
	"strings"

	"adventure-backend/internal/services"
)

type contextKey string

const participantIDKey contextKey = "participant_id"

// AuthMiddleware creates a middleware for JWT bearer authentication
func AuthMiddleware(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			participantID, err := tokens.ValidateAccess(parts[1])
			if err != nil {
				respondError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), participantIDKey, participantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetParticipantID extracts the authenticated participant ID from context
func GetParticipantID(ctx context.Context) string {
	participantID, ok := ctx.Value(participantIDKey).(string)
	if !ok {
		return ""
	}
	return participantID
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
