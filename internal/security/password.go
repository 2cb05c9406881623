package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password must not be empty")

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks password against a stored hash. Besides bcrypt it
// accepts the unsalted SHA-256 hex digests written by the first version of
// the app; for those, upgrade is true on a match and the caller should store
// a fresh bcrypt hash.
func VerifyPassword(storedHash string, password string) (ok bool, upgrade bool) {
	storedHash = strings.TrimSpace(storedHash)
	if storedHash == "" || password == "" {
		return false, false
	}

	if isLegacySHA256(storedHash) {
		sum := sha256.Sum256([]byte(password))
		candidate := hex.EncodeToString(sum[:])
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(strings.ToLower(storedHash))) == 1 {
			return true, true
		}
		return false, false
	}

	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil, false
}

func isLegacySHA256(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
