package token

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	// Issuer identifies tokens minted by this service
	Issuer = "dayplan"
	// DefaultTTL is the default token lifetime
	DefaultTTL = 24 * time.Hour
)

// Mint creates a signed HS256 token for a user.
func Mint(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(Issuer).
		Subject(userID.String()).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte(secret)))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// Verify parses and validates a token, returning the user ID it was
// minted for.
func Verify(secret, tokenString string) (uuid.UUID, error) {
	tok, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, []byte(secret)),
		jwt.WithValidate(true),
		jwt.WithIssuer(Issuer),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token verification failed: %w", err)
	}

	userID, err := uuid.Parse(tok.Subject())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	return userID, nil
}
