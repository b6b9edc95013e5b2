package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed payload carried by every session cookie
// variant.
type SessionClaims struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	Role       string `json:"role,omitempty"`
	SystemRole string `json:"system_role"`
	jwt.RegisteredClaims
}

// TokenCodec encodes and decodes signed session tokens. It knows nothing
// about users or storage: one payload can be signed into independent
// artifacts by varying the salt, and a token signed under one salt never
// validates under another because the salt is mixed into the signing key.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec creates a codec for the given signing secret and token TTL.
func NewTokenCodec(secret, issuer string, ttl time.Duration) (*TokenCodec, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if strings.TrimSpace(issuer) == "" {
		issuer = "authcore"
	}
	return &TokenCodec{
		secret: []byte(trimmed),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// TTL returns the configured session token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// signingKey derives the per-salt HMAC key.
func (c *TokenCodec) signingKey(salt string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(salt))
	return mac.Sum(nil)
}

// Encode signs the claims under the given salt. Registered time claims are
// stamped here so callers only supply identity fields.
func (c *TokenCodec) Encode(claims *SessionClaims, salt string) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil")
	}

	now := time.Now().UTC()
	claims.Issuer = c.issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.signingKey(salt))
}

// Decode validates a token under the given salt and returns its claims, or
// nil on signature mismatch, malformed structure, or expiry. It fails closed
// and never panics or surfaces parse errors to the caller.
func (c *TokenCodec) Decode(raw, salt string) *SessionClaims {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var claims SessionClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return c.signingKey(salt), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	return &claims
}
