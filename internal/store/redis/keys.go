package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixLink is the prefix for cached link keys
	KeyPrefixLink = "shorty:link:"
)

// LinkKey returns the Redis key for a cached link by short code.
// Codes are case-sensitive so the key keeps the original case.
func LinkKey(code string) string {
	return KeyPrefixLink + code
}

// ExtractCode extracts the short code from a Redis key
func ExtractCode(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefixLink) || len(key) == len(KeyPrefixLink) {
		return "", fmt.Errorf("invalid link key: %s", key)
	}
	return key[len(KeyPrefixLink):], nil
}
