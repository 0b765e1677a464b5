package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const minPasswordLength = 12

var (
	ErrPasswordTooShort  = errors.New("Password must be at least 12 characters long")
	ErrPasswordTooCommon = errors.New("Password is too common. Please choose a stronger password.")
)

// commonPasswords is the deny-list checked case-insensitively.
var commonPasswords = map[string]struct{}{
	"password1234":  {},
	"123456789012":  {},
	"qwerty123456":  {},
	"administrator": {},
	"letmeinplease": {},
	"iloveyou1234":  {},
	"welcome12345":  {},
	"passw0rd1234":  {},
	"changeme1234":  {},
	"superadmin123": {},
}

// ValidatePassword checks candidate against the password policy.
// It returns nil for an acceptable password.
func ValidatePassword(candidate string) error {
	if len(candidate) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if _, ok := commonPasswords[strings.ToLower(candidate)]; ok {
		return ErrPasswordTooCommon
	}
	return nil
}

// GenerateVerificationToken returns a 64-character lowercase hex token
// with 256 bits of entropy.
func GenerateVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// argon2id parameters
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16

	// maxVerifyMemory caps the memory cost (KiB) accepted from a stored
	// digest, a digest demanding more is treated as malformed.
	maxVerifyMemory = 1 << 21
)

// HashPassword hashes a password with argon2id and a random salt.
// Hashing the same password twice returns different digests.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	return digest, nil
}

// VerifyPassword reports whether password matches digest. It returns false
// for a malformed or empty digest, it never panics.
func VerifyPassword(digest, password string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	// parameters argon2 would refuse; a digest carrying them is malformed
	if time < 1 || threads < 1 || memory < 8*uint32(threads) || memory > maxVerifyMemory {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1
}
