package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSecret is the development placeholder. A deployment must override it;
// /health reports secret_configured=false while it is in effect.
const DefaultSecret = "default-secret-change-in-production"

// Verification failure categories surfaced to callers. The reason is
// diagnostic only; clients must not branch on it.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// SecretFromEnv returns the shared webhook secret from the environment
func SecretFromEnv() string {
	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" {
		return DefaultSecret // Fallback for development
	}
	return secret
}

// SecretConfigured reports whether the secret has been set to a real value
func SecretConfigured(secret string) bool {
	return secret != "" && secret != DefaultSecret
}

// GenerateToken mints a signed bearer token for a submission URL.
// The audience claim must equal the receiving gateway's webhook URL.
func GenerateToken(secret, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Audience:  jwt.ClaimStrings{audience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken validates a bearer token against the shared secret and the
// gateway's own submission URL. Failures unwrap to ErrTokenExpired or
// ErrTokenInvalid so the handler can report a distinguishable reason.
func VerifyToken(secret, audience, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithAudience(audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return ErrTokenInvalid
	}

	return nil
}
