package passwords

import (
	"fmt"
	"strings"
	"unicode"
)

// Subject carries the user attributes a password is compared against.
type Subject struct {
	Email     string
	FirstName string
	LastName  string
}

// Validator inspects a password and returns zero or more violation messages.
type Validator interface {
	Validate(password string, subject Subject) []string
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(password string, subject Subject) []string

// Validate calls f.
func (f ValidatorFunc) Validate(password string, subject Subject) []string {
	return f(password, subject)
}

// Policy runs every validator and collects all messages.
type Policy struct {
	validators []Validator
}

// NewPolicy builds a policy from validators, run in the given order.
func NewPolicy(validators ...Validator) *Policy {
	return &Policy{validators: validators}
}

// DefaultPolicy mirrors the usual web framework defaults.
func DefaultPolicy() *Policy {
	return NewPolicy(
		NotSimilarToAttributes(),
		MinimumLength(8),
		NotCommon(),
		NotNumeric(),
	)
}

// Validate returns the violation messages; an empty slice means acceptable.
func (p *Policy) Validate(password string, subject Subject) []string {
	var messages []string
	for _, v := range p.validators {
		messages = append(messages, v.Validate(password, subject)...)
	}
	return messages
}

// MinimumLength rejects passwords shorter than n characters.
func MinimumLength(n int) Validator {
	return ValidatorFunc(func(password string, _ Subject) []string {
		if len([]rune(password)) < n {
			return []string{fmt.Sprintf("This password is too short. It must contain at least %d characters.", n)}
		}
		return nil
	})
}

// NotNumeric rejects passwords made only of digits.
func NotNumeric() Validator {
	return ValidatorFunc(func(password string, _ Subject) []string {
		if password == "" {
			return nil
		}
		for _, r := range password {
			if !unicode.IsDigit(r) {
				return nil
			}
		}
		return []string{"This password is entirely numeric."}
	})
}

var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		123456 123456789 12345678 12345 1234567 1234567890 111111 000000
		password password1 password123 passw0rd qwerty qwerty123 qwertyuiop
		abc123 iloveyou admin admin123 welcome welcome1 letmein monkey dragon
		sunshine princess football baseball master shadow superman trustno1
		login starwars whatever freedom hello123 changeme secret 1q2w3e4r
		zaq12wsx asdfghjkl 654321 666666 987654321 123123 aa123456 azerty
	`) {
		commonPasswords[p] = struct{}{}
	}
}

// NotCommon rejects passwords found in a list of frequently used ones.
func NotCommon() Validator {
	return ValidatorFunc(func(password string, _ Subject) []string {
		if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
			return []string{"This password is too common."}
		}
		return nil
	})
}

// NotSimilarToAttributes rejects passwords that contain, or are contained
// in, the email local part or the user's names.
func NotSimilarToAttributes() Validator {
	return ValidatorFunc(func(password string, subject Subject) []string {
		lower := strings.ToLower(password)
		if lower == "" {
			return nil
		}
		localPart := subject.Email
		if at := strings.Index(localPart, "@"); at >= 0 {
			localPart = localPart[:at]
		}
		attrs := map[string]string{
			"email address": localPart,
			"first name":    subject.FirstName,
			"last name":     subject.LastName,
		}
		for _, label := range []string{"email address", "first name", "last name"} {
			value := strings.ToLower(strings.TrimSpace(attrs[label]))
			if len(value) < 3 {
				continue
			}
			if strings.Contains(lower, value) || strings.Contains(value, lower) {
				return []string{fmt.Sprintf("The password is too similar to the %s.", label)}
			}
		}
		return nil
	})
}
