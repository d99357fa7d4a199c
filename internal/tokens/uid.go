// Package tokens implements the identifiers and stateless tokens embedded
// in password reset links.
package tokens

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidUID is returned by DecodeUID for any malformed input.
var ErrInvalidUID = errors.New("invalid uid")

// EncodeUID turns a user id into a URL-safe, unpadded base64 fragment.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID. Padding, non-numeric payloads, zero,
// values that overflow uint and non-canonical forms such as leading zeros
// are rejected with ErrInvalidUID.
func DecodeUID(fragment string) (uint, error) {
	if fragment == "" {
		return 0, ErrInvalidUID
	}
	raw, err := base64.RawURLEncoding.DecodeString(fragment)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidUID, err)
	}
	id, err := strconv.ParseUint(string(raw), 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidUID, err)
	}
	if id == 0 || EncodeUID(uint(id)) != fragment {
		return 0, ErrInvalidUID
	}
	return uint(id), nil
}
