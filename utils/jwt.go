package utils

import (
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

// InitJWTSecret loads the signing secret once at startup.
func InitJWTSecret() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "smartpark-dev-secret"
		log.Println("JWT_SECRET not set, using development default")
	}
	JWTSecret = []byte(secret)
}

// GenerateToken issues an HS256 token carrying the principal, its
// display name and role. The role claim is advisory; the admin guard
// re-reads the role from the profile store on every request.
func GenerateToken(userID int, username, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"email":    email,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}
