package helpers

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash means the stored hash cannot be parsed as bcrypt. It is
// distinct from a wrong password, which Verify reports as (false, nil).
var ErrMalformedHash = errors.New("malformed password hash")

// ErrPlaintextInHash means every salt tried produced a hash containing the password.
var ErrPlaintextInHash = errors.New("password hash contains plaintext")

// hashAttempts bounds re-salting when a hash happens to contain the password.
const hashAttempts = 3

// PasswordHasher hashes passwords with bcrypt. The salt and cost are
// embedded in the returned hash.
type PasswordHasher struct {
	Cost int

	generate func(password []byte, cost int) ([]byte, error)
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost, generate: bcrypt.GenerateFromPassword}
}

// Hash hashes the plain text password using bcrypt. The result never contains
// plain as a substring; a fresh salt is drawn when it would.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	generate := h.generate
	if generate == nil {
		generate = bcrypt.GenerateFromPassword
	}
	for i := 0; i < hashAttempts; i++ {
		b, err := generate([]byte(plain), h.Cost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		if hash := string(b); plain == "" || !strings.Contains(hash, plain) {
			return hash, nil
		}
	}
	return "", ErrPlaintextInHash
}

// Verify compares a bcrypt hash with a plain password in constant time.
func (h *PasswordHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
