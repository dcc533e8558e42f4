package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns passwords into stored credentials and checks them.
// With plaintext set the stored credential is the password itself.
type Hasher struct {
	cost      int
	plaintext bool
}

// NewHasher returns a bcrypt hasher at the default cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewPlaintextHasher returns a hasher that stores and compares passwords verbatim.
func NewPlaintextHasher() *Hasher {
	return &Hasher{plaintext: true}
}

// SetCost changes the bcrypt cost for subsequent hashes.
func (h *Hasher) SetCost(cost int) {
	h.cost = cost
}

// Hash returns the credential to store for password.
func (h *Hasher) Hash(password string) (string, error) {
	if h.plaintext {
		return password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether password matches the stored credential.
func (h *Hasher) Check(password, stored string) bool {
	if h.plaintext {
		return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
