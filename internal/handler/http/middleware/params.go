package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/terceiro-labs/provision-backend/internal/handler/http/response"
)

// UUIDParam rejects requests whose URL parameter name is not a UUID.
func UUIDParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := uuid.Validate(chi.URLParam(r, name)); err != nil {
				response.BadRequest(w, fmt.Sprintf("%s must be a valid UUID", name), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
