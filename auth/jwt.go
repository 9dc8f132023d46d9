package auth

import (
	"log"

	"github.com/golang-jwt/jwt/v5"
)

// Returns true if the token is an HMAC-signed JWT that the secret can verify.
// The decode secret comes from .env under JWT_DECODE_SECRET.
func JWTTokenValid(secret, token string) bool {
	if token == "" {
		log.Println("No authentication token provided")
		return false
	}

	tok, jwtError := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))

	if jwtError != nil {
		log.Println("Error trying to parse JWT:", jwtError)
		return false
	}

	if !tok.Valid {
		log.Println("Invalid token")
		return false
	}

	return true
}
