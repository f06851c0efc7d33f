package jwt

import (
	"context"
	"net/http"
	"strings"

	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
	"youapp/internal/pkg/resp"
)

// contextKey prevents key collisions with other packages storing request values.
type contextKey string

const (
	// ContextAuthPayloadKey stores the parsed Payload (user identity) in the request Context.
	ContextAuthPayloadKey contextKey = "auth_payload"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. It returns an empty string when the header is absent or
// malformed.
func BearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// RequireAuth validates the bearer credential on every request and injects the
// Payload into the Context. Requests with a missing, malformed, or invalid
// token are rejected with 401 before reaching business logic.
func RequireAuth(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := BearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			payload, err := ParseToken(tokenString, secretKey)
			if err != nil {
				logx.Warn("Invalid or expired JWT provided", "error", err)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), ContextAuthPayloadKey, payload)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPayloadFromContext extracts the authenticated Payload from the request
// Context. Behind RequireAuth the payload is always present; a nil return
// means the route was wired without the middleware.
func GetPayloadFromContext(r *http.Request) *Payload {
	payload, ok := r.Context().Value(ContextAuthPayloadKey).(*Payload)

	if !ok {
		return nil
	}

	return payload
}
