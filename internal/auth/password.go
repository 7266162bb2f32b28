package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPassword compares a stored credential against a candidate.
// Stored values are either bcrypt hashes (anything written through
// HashPassword) or legacy plaintext carried over from the seeded
// roster. The plaintext path exists for compatibility with the data
// the previous deployment left behind; every password written by this
// program is hashed.
func VerifyPassword(stored, candidate string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return stored == candidate
}

// HashPassword returns a bcrypt hash suitable for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
