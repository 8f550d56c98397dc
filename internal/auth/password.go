package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. Changing these invalidates stored hashes, so they
// are fixed for the lifetime of the users table.
const (
	saltLen  = 16
	keyLen   = 64
	scryptN  = 32768
	scryptR  = 8
	scryptP  = 1
	tokenLen = 32
)

// HashPassword derives a storable hash from a plaintext password using a
// fresh random salt. The result has the form "saltHex:derivedHex".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(derived), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
// Malformed stored values verify as false rather than erroring; the
// comparison of derived keys is constant time.
func VerifyPassword(password, stored string) bool {
	saltHex, derivedHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(derivedHex)
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return false
	}

	// ConstantTimeCompare returns 0 for unequal lengths without
	// examining contents.
	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// NewSessionToken returns a high-entropy opaque token suitable for use
// as a bearer credential.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
