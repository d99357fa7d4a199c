package tokens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"

	"github.com/dgrijalva/jwt-go"
)

const resetPurpose = "password_reset"

// DefaultResetTimeout is how long a reset token stays valid.
const DefaultResetTimeout = 72 * time.Hour

type resetClaims struct {
	Purpose string `json:"purpose"`
	jwt.StandardClaims
}

// ResetTokenGenerator issues and checks password reset tokens. Tokens are
// not stored: they are signed with a key derived from the user's current
// credential state, so changing the password or logging in invalidates
// every token issued before.
type ResetTokenGenerator struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

// NewResetTokenGenerator creates a generator. A non-positive timeout
// falls back to DefaultResetTimeout.
func NewResetTokenGenerator(secret string, timeout time.Duration) *ResetTokenGenerator {
	if timeout <= 0 {
		timeout = DefaultResetTimeout
	}
	return &ResetTokenGenerator{
		secret:  []byte(secret),
		timeout: timeout,
		now:     time.Now,
	}
}

// Issue produces a token bound to the user's current state.
func (g *ResetTokenGenerator) Issue(user *models.User) (string, error) {
	now := g.now()
	claims := resetClaims{
		Purpose: resetPurpose,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(g.timeout).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.keyFor(user))
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signed, nil
}

// Verify reports whether token was issued for user in its current state
// and has not expired. It never returns an error.
func (g *ResetTokenGenerator) Verify(user *models.User, token string) bool {
	if user == nil || token == "" {
		return false
	}

	claims := &resetClaims{}
	parser := &jwt.Parser{SkipClaimsValidation: true}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.keyFor(user), nil
	})
	if err != nil || !parsed.Valid {
		return false
	}

	now := g.now().Unix()
	if claims.Purpose != resetPurpose || claims.Subject != strconv.FormatUint(uint64(user.ID), 10) {
		return false
	}
	return claims.VerifyExpiresAt(now, true) && claims.VerifyIssuedAt(now, true)
}

// keyFor derives the signing key from the secret and the user state that
// must invalidate outstanding tokens when it changes.
func (g *ResetTokenGenerator) keyFor(user *models.User) []byte {
	lastLogin := ""
	if user.LastLogin != nil {
		lastLogin = strconv.FormatInt(user.LastLogin.Unix(), 10)
	}
	state := strings.Join([]string{
		strconv.FormatUint(uint64(user.ID), 10),
		user.Password,
		lastLogin,
		user.Email,
	}, "\x00")
	key := make([]byte, 0, len(g.secret)+1+len(state))
	key = append(key, g.secret...)
	key = append(key, 0)
	return append(key, state...)
}
