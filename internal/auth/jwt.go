package auth

import (
	"os"
	"time"

	"github.com/Drasasse/gestion-commerce-sub002/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of an access token.
const TokenTTL = 24 * time.Hour

// Secret returns the JWT signing secret from the environment.
func Secret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only, never used in release mode
	}
	return []byte(secret)
}

// IssueToken signs an HS256 access token carrying the session identity.
func IssueToken(secret []byte, s Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  s.UserID.String(),
		"role": s.Role,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}
	if s.BoutiqueID != nil {
		claims["boutique_id"] = s.BoutiqueID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates a token string and rebuilds the session from its
// claims. Any failure is an authentication error.
func ParseToken(secret []byte, tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, apperror.Authentication("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, apperror.Authentication("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Session{}, apperror.Authentication("invalid token subject")
	}

	role, _ := claims["role"].(string)
	if !ValidRole(role) {
		return Session{}, apperror.Authentication("invalid session role")
	}

	session := Session{UserID: userID, Role: role}
	if raw, ok := claims["boutique_id"].(string); ok && raw != "" {
		boutiqueID, err := uuid.Parse(raw)
		if err != nil {
			return Session{}, apperror.Authentication("invalid token claims")
		}
		session.BoutiqueID = &boutiqueID
	}

	return session, nil
}
