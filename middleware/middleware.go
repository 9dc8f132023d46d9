package middleware

import (
	"log"
	"net/http"

	"qerplunk/garin-draw/auth"
)

type Middleware func(http.HandlerFunc) http.HandlerFunc

/*
Creates a middleware stack out of Middlewares located in this file.
Useful for reusing middleware stacks. The first middleware runs first.

Example:
stack := middleware.CreateStack(middleware.OriginCheck(origins), middleware.JWTCheck(secret))
*/
func CreateStack(middlewares ...Middleware) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

/*
Checks that the secret can decode the URL query value of "token".
An empty secret leaves the handshake open.
*/
func JWTCheck(secret string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			if !auth.JWTTokenValid(secret, r.URL.Query().Get("token")) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}

/*
Checks if the request origin is allowed.
Allowed origins are located in .env under ALLOWED_ORIGINS as a list; an empty list allows any origin.
*/
func OriginCheck(allowedOrigins []string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if len(allowedOrigins) == 0 {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, allowedOrigin := range allowedOrigins {
				if origin == allowedOrigin {
					next(w, r)
					return
				}
			}

			log.Printf("Origin %s NOT allowed\n", origin)
			http.Error(w, "origin not allowed", http.StatusForbidden)
		}
	}
}
