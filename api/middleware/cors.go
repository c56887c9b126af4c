package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",        // local storefront dev
	"https://delegance.shop",       // production storefront
	"https://www.delegance.shop",   // production storefront (www)
	"https://delegance.vercel.app", // preview deployments
}

// CORS returns middleware that applies the API's allowed origin policy.
// Credentials stay enabled so the session cookie travels with requests.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
