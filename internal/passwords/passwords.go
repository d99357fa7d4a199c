// Package passwords hashes credentials and checks new passwords against a
// pluggable strength policy.
package passwords

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hash hashes the plain text password using bcrypt.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

// Check compares a bcrypt hash with a plain password. An empty hash never matches.
func Check(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
