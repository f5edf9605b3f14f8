package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrMismatch = errors.New("password does not match")

// ComparePassword checks raw against a stored bcrypt hash. A mismatch returns
// ErrMismatch; anything else means the stored hash is malformed.
func ComparePassword(hashedPassword, raw string) error {
	if hashedPassword == "" || raw == "" {
		return ErrMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(raw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
