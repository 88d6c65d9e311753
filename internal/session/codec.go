package session

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrBadCookie is returned for cookies that fail signature or expiry checks.
var ErrBadCookie = errors.New("session: invalid cookie")

// Codec signs session ids into cookie values so a client cannot guess or
// forge another session's id.
type Codec struct {
	secret []byte        // HMAC key
	ttl    time.Duration // Cookie lifetime
}

// NewCodec returns a Codec signing with secret
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Encode creates a signed token carrying the session id as its jti
func (c *Codec) Encode(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,                          // Session id
		IssuedAt:  jwt.NewNumericDate(now),            // Issued at current time
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)), // Expires with the session
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(c.secret)                        // Sign the token with the secret
}

// Decode verifies a cookie value and returns the session id
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.ID == "" {
		return "", ErrBadCookie // Tampered, expired or malformed
	}
	return claims.ID, nil
}
