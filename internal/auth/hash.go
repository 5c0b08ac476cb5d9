package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of the password's
// UTF-8 bytes. The digest is deterministic so stored credentials can be
// compared by recomputation.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword recomputes the digest and compares it to the stored one.
func CheckPassword(storedDigest, password string) bool {
	return storedDigest == HashPassword(password)
}
