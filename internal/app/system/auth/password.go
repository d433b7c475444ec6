// internal/app/system/auth/password.go
package auth

import (
	"errors"

	"github.com/dalemusser/tasktracker/internal/app/system/limits"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for new hashes.
const PasswordCost = 12

// ErrPasswordMismatch is returned by CheckPassword for a wrong password.
var ErrPasswordMismatch = errors.New("password does not match")

// ErrPasswordTooLong is returned by HashPassword when plain exceeds
// limits.MaxPasswordBytes.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordTooLong reports whether plain is longer than bcrypt accepts.
func PasswordTooLong(plain string) bool {
	return len(plain) > limits.MaxPasswordBytes
}

// HashPassword returns a bcrypt hash of plain.
func HashPassword(plain string) (string, error) {
	if PasswordTooLong(plain) {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares plain with a stored bcrypt hash.
func CheckPassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
