package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
)

// DefaultHeader is the request header carrying the shared API key.
const DefaultHeader = "X-API-Key"

// KeyBytes is the entropy of generated keys.
const KeyBytes = 32

var (
	ErrMissingAPIKey = errors.New("missing api key")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

// StaticKey validates credentials against one process-wide shared secret.
type StaticKey struct {
	header string
	secret []byte
}

// NewStaticKey returns a validator for secret read from header.
// An empty header falls back to DefaultHeader.
func NewStaticKey(header, secret string) (*StaticKey, error) {
	if secret == "" {
		return nil, ErrMissingAPIKey
	}
	if header == "" {
		header = DefaultHeader
	}
	return &StaticKey{
		header: http.CanonicalHeaderKey(header),
		secret: []byte(secret),
	}, nil
}

// Header returns the canonical credential header name.
func (k *StaticKey) Header() string {
	return k.header
}

// APIKeyFromRequest returns the credential and whether the header was sent at all.
// A header sent with an empty value counts as present.
func (k *StaticKey) APIKeyFromRequest(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	values, ok := r.Header[k.header]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Validate compares provided to the secret: exact, case-sensitive, constant time.
func (k *StaticKey) Validate(provided string) error {
	if subtle.ConstantTimeCompare([]byte(provided), k.secret) != 1 {
		return ErrInvalidAPIKey
	}
	return nil
}

// ValidateRequest extracts and validates the credential of r.
func (k *StaticKey) ValidateRequest(r *http.Request) error {
	provided, ok := k.APIKeyFromRequest(r)
	if !ok {
		return ErrMissingAPIKey
	}
	return k.Validate(provided)
}

// GenerateKey returns a new random URL-safe key suitable for API_KEY.
func GenerateKey() (string, error) {
	buf := make([]byte, KeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
