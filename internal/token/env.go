package token

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// EnvPrefix is the prefix used for all token environment variables
	EnvPrefix = "GIT_TOKEN_"
)

// EnvStorage reads tokens from GIT_TOKEN_* environment variables. Values are
// either the raw token or a JSON object {"Value": "...", "ExpiresAt": "..."}.
type EnvStorage struct {
	lookup func(string) (string, bool)
}

// NewEnvStorage creates a new environment variable-based token storage
func NewEnvStorage() *EnvStorage {
	return &EnvStorage{lookup: os.LookupEnv}
}

// Retrieve gets the token stored for a provider key
func (e *EnvStorage) Retrieve(key Provider) (Token, error) {
	envKey := e.FormatEnvKey(string(key))
	data, ok := e.lookup(envKey)
	data = strings.TrimSpace(data)
	if !ok || data == "" {
		return Token{}, ErrTokenNotFound
	}

	var token Token
	if strings.HasPrefix(data, "{") {
		if err := json.Unmarshal([]byte(data), &token); err != nil {
			return Token{}, fmt.Errorf("%s: failed to unmarshal token: %w", envKey, err)
		}
	} else {
		token.Value = data
	}

	if !IsValid(token) {
		return Token{}, fmt.Errorf("%s: %w", envKey, ErrTokenInvalid)
	}
	if IsExpired(token) {
		return Token{}, fmt.Errorf("%s: %w", envKey, ErrTokenExpired)
	}
	return token, nil
}

// FormatEnvKey converts a token key into an environment variable name
func (e *EnvStorage) FormatEnvKey(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToUpper(key))

	return EnvPrefix + sanitized
}
