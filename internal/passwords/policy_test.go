package passwords_test

import (
	"testing"

	"storefront/internal/passwords"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicyAcceptsStrongPassword(t *testing.T) {
	p := passwords.DefaultPolicy()
	assert.Empty(t, p.Validate("Tr0ub4dor&3-horse", passwords.Subject{Email: "jane@example.com"}))
}

func TestDefaultPolicyCollectsEveryViolation(t *testing.T) {
	p := passwords.DefaultPolicy()

	messages := p.Validate("12345", passwords.Subject{})

	assert.Contains(t, messages, "This password is too short. It must contain at least 8 characters.")
	assert.Contains(t, messages, "This password is too common.")
	assert.Contains(t, messages, "This password is entirely numeric.")
}

func TestNotSimilarToAttributes(t *testing.T) {
	v := passwords.NotSimilarToAttributes()
	subject := passwords.Subject{Email: "margaret@example.com", FirstName: "Ada", LastName: "Hamilton"}

	assert.Equal(t, []string{"The password is too similar to the email address."}, v.Validate("Margaret2024!", subject))
	assert.Equal(t, []string{"The password is too similar to the last name."}, v.Validate("hamilton", subject))
	assert.Empty(t, v.Validate("correct horse battery", subject))
}

func TestCustomPolicy(t *testing.T) {
	noSpaces := passwords.ValidatorFunc(func(password string, _ passwords.Subject) []string {
		for _, r := range password {
			if r == ' ' {
				return []string{"no spaces"}
			}
		}
		return nil
	})
	p := passwords.NewPolicy(passwords.MinimumLength(4), noSpaces)

	assert.Equal(t, []string{"no spaces"}, p.Validate("a b c d", passwords.Subject{}))
	assert.Empty(t, p.Validate("abcd", passwords.Subject{}))
}

func TestHashAndCheck(t *testing.T) {
	hash, err := passwords.Hash("s3cret-pass")
	assert.NoError(t, err)

	assert.True(t, passwords.Check(hash, "s3cret-pass"))
	assert.False(t, passwords.Check(hash, "wrong"))
	assert.False(t, passwords.Check("", "anything"))
}
