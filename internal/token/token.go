// Package token looks up credentials for cloning HTTPS sources.
//
// A token given on the command line is used for every HTTPS source.
// Otherwise the token is read from a GIT_TOKEN_* environment variable chosen
// by the source host:
//
//	export GIT_TOKEN_GITHUB="ghp_..."                  // github.com
//	export GIT_TOKEN_GITLAB='{"Value":"glpat-..."}'    // gitlab.*
//	export GIT_TOKEN_GIT_EXAMPLE_COM="..."             // any other host
//
// SSH and local sources never use a token.
package token

import (
	"errors"
	"time"

	"github.com/NicabarNimble/go-gitmulti/internal/urlutils"
)

// Common errors that may be returned by token operations
var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrTokenExpired  = errors.New("token has expired")
)

// Token represents an authentication token with metadata
type Token struct {
	// Value is the actual token string
	Value string `json:"Value"`

	// ExpiresAt indicates when the token will expire
	// Zero value means the token does not expire
	ExpiresAt time.Time `json:"ExpiresAt"`
}

// IsExpired checks if a token has expired
func IsExpired(token Token) bool {
	if token.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(token.ExpiresAt)
}

// IsValid performs basic validation of a token
func IsValid(token Token) bool {
	return token.Value != ""
}

// Resolver picks the token for a source
type Resolver struct {
	Explicit string
	Env      *EnvStorage
}

// NewResolver creates a resolver; explicit overrides the environment
func NewResolver(explicit string) *Resolver {
	return &Resolver{Explicit: explicit, Env: NewEnvStorage()}
}

// ForSource returns the token to use for source, or "" when none applies.
// An expired or malformed environment token is an error.
func (r *Resolver) ForSource(source string) (string, error) {
	if !urlutils.IsHTTPS(source) {
		return "", nil
	}
	if r.Explicit != "" {
		return r.Explicit, nil
	}
	if r.Env == nil {
		return "", nil
	}

	t, err := r.Env.Retrieve(ProviderForHost(urlutils.Host(source)))
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return t.Value, nil
}
