package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token. It runs after
// jwtauth.Verifier, which only parses the token.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
