package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps next with cross-origin handling for the admin page and forms
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader, IdempotencyHeader},
		ExposedHeaders: []string{RequestIDHeader, IdempotencyHitHeader},
	}).Handler(next)
}
