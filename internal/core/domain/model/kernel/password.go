package kernel

import (
	"fmt"

	"parcel/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt can hash.
const MaxPasswordLength = 72

// PasswordHash is a bcrypt hash of a customer's or staff member's password.
// Plaintext passwords are never stored.
type PasswordHash string

// HashPassword hashes plain with the given bcrypt cost. A cost below
// bcrypt.MinCost is raised to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (PasswordHash, error) {
	if plain == "" {
		return "", errs.NewValueIsRequiredError("password")
	}
	if len(plain) > MaxPasswordLength {
		return "", errs.NewValueIsOutOfRangeError("password length", len(plain), 1, MaxPasswordLength)
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return PasswordHash(hash), nil
}

// RestorePasswordHash checks that a stored value is a bcrypt hash.
func RestorePasswordHash(hash string) (PasswordHash, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("password hash", err)
	}
	return PasswordHash(hash), nil
}

// Matches reports whether plain is the password the hash was built from.
func (h PasswordHash) Matches(plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(h), []byte(plain))
	return err == nil
}

func (h PasswordHash) Validate() error {
	if h == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	if _, err := bcrypt.Cost([]byte(h)); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("password hash", err)
	}
	return nil
}
