package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidPass = errors.New("invalid or expired access pass")
	ErrMissingPass = errors.New("access pass required")
)

// PassManager issues and validates access passes for private groups.
// A pass is handed out after the group secret was verified and lets the
// holder open the group detail without resending the secret.
type PassManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// PassClaims represents the JWT claims of an access pass.
type PassClaims struct {
	GroupID string `json:"group_id"`
	jwt.RegisteredClaims
}

// NewPassManager creates a new pass manager with the given signing key and lifetime.
func NewPassManager(secretKey string, ttl time.Duration) *PassManager {
	return &PassManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue creates a signed pass for the group.
func (m *PassManager) Issue(groupID string) (string, error) {
	now := m.now()
	claims := &PassClaims{
		GroupID: groupID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   groupID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign pass: %w", err)
	}

	return signed, nil
}

// Validate parses a pass and returns its claims if valid.
func (m *PassManager) Validate(pass string) (*PassClaims, error) {
	if pass == "" {
		return nil, ErrMissingPass
	}

	token, err := jwt.ParseWithClaims(
		pass,
		&PassClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPass, err)
	}

	claims, ok := token.Claims.(*PassClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidPass
	}

	return claims, nil
}

// Allows reports whether pass is a valid pass for the group.
// A nil manager allows nothing.
func (m *PassManager) Allows(pass, groupID string) bool {
	if m == nil {
		return false
	}
	claims, err := m.Validate(pass)
	if err != nil {
		return false
	}
	return claims.GroupID == groupID
}
