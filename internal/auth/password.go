package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
// Bcrypt is canonical; unsalted SHA-256 hex digests from the legacy
// scheme are still accepted so existing accounts keep working until
// their record is re-hashed on a successful login.
func VerifyPassword(hashed, plain string) bool {
	if isLegacyHash(hashed) {
		digest := sha256.Sum256([]byte(plain))
		expected := hex.EncodeToString(digest[:])
		return subtle.ConstantTimeCompare([]byte(hashed), []byte(expected)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// NeedsRehash reports whether the stored hash uses the legacy scheme
// and should be upgraded to bcrypt.
func NeedsRehash(hashed string) bool {
	return isLegacyHash(hashed)
}

func isLegacyHash(hashed string) bool {
	if len(hashed) != sha256.Size*2 {
		return false
	}
	for _, c := range hashed {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
