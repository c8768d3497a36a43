package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptySecret   = errors.New("secret must not be empty")
	ErrSecretTooLong = errors.New("secret must be at most 72 bytes")
)

// Ensure BcryptGate implements Gate
var _ Gate = (*BcryptGate)(nil)

// BcryptGate implements Gate using bcrypt.
type BcryptGate struct {
	cost int
}

// NewBcryptGate creates a gate hashing with the given bcrypt cost.
// Out of range costs fall back to bcrypt.DefaultCost.
func NewBcryptGate(cost int) *BcryptGate {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptGate{cost: cost}
}

// Hash hashes the secret with bcrypt.
func (g *BcryptGate) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if len(secret) > 72 {
		return "", ErrSecretTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), g.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}

	return string(hashed), nil
}

// Verify compares the candidate with the bcrypt hash. It fails closed.
func (g *BcryptGate) Verify(candidate, stored string) bool {
	if candidate == "" || stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
