// Package auth provides password hashing and session token utilities.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
)

// Token format: fb_{prefix}_{secret}
// Example: fb_7a9x3k_4f8d2e1b9c7a5f3d2e1b9c7a5f3d2e1b
const (
	// TokenPrefixLen is the visible prefix length (hex encoded 3 bytes).
	TokenPrefixLen = 6
	// TokenSecretLen is the secret length (hex encoded 16 bytes).
	TokenSecretLen = 32
)

var (
	// ErrInvalidTokenFormat indicates the session token format is invalid.
	ErrInvalidTokenFormat = errors.New("invalid session token format")
	// tokenFormatRegex validates the token format.
	tokenFormatRegex = regexp.MustCompile(`^fb_([a-f0-9]{6})_([a-f0-9]{32})$`)
)

// SessionToken contains the parts of a newly issued session token.
type SessionToken struct {
	Plaintext string // Full token (handed to the client once)
	Prefix    string // 6-char visible prefix, kept for log correlation
}

// NewSessionToken creates a fresh opaque session token.
// The server stores only a SHA-256 derivation of the plaintext (see
// CacheKey); the plaintext itself never touches durable storage.
func NewSessionToken() (*SessionToken, error) {
	prefixBytes := make([]byte, 3)
	if _, err := rand.Read(prefixBytes); err != nil {
		return nil, fmt.Errorf("generate prefix: %w", err)
	}
	prefix := hex.EncodeToString(prefixBytes)

	secretBytes := make([]byte, 16)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	return &SessionToken{
		Plaintext: fmt.Sprintf("fb_%s_%s", prefix, secret),
		Prefix:    prefix,
	}, nil
}

// ParsedToken contains the parsed parts of a session token.
type ParsedToken struct {
	Prefix string
	Secret string
}

// ParseSessionToken extracts the components from a plaintext token.
// Returns an error if the format is invalid.
func ParseSessionToken(token string) (*ParsedToken, error) {
	matches := tokenFormatRegex.FindStringSubmatch(token)
	if matches == nil {
		return nil, ErrInvalidTokenFormat
	}

	return &ParsedToken{
		Prefix: matches[1],
		Secret: matches[2],
	}, nil
}

// ValidateTokenFormat checks if the token matches the expected format.
func ValidateTokenFormat(token string) bool {
	return tokenFormatRegex.MatchString(token)
}

// CacheKey derives the Redis lookup key for a session token.
func CacheKey(token string) string {
	return QuickHash(token)
}
