// Package auth provides password hashing, token issuance, and request identity.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Fixed Argon2id parameters. The time cost is configurable per Hasher
// because it is the knob operators tune; the rest follow the OWASP
// recommended minimums.
const (
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16

	// DefaultTimeCost is used when no cost is configured.
	DefaultTimeCost = 3
)

var (
	// ErrInvalidHash indicates the stored hash is not in PHC format.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion indicates the hash was produced by an
	// unsupported argon2 version.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// Hasher produces Argon2id password hashes with a configured time cost.
type Hasher struct {
	timeCost uint32
}

// NewHasher creates a Hasher. A non-positive cost falls back to the default.
func NewHasher(timeCost int) *Hasher {
	if timeCost <= 0 {
		timeCost = DefaultTimeCost
	}
	return &Hasher{timeCost: uint32(timeCost)}
}

// Hash creates an Argon2id hash of the given password in PHC string format:
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.timeCost,
		argon2Memory,
		argon2Threads,
		argon2KeyLen,
	)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		h.timeCost,
		argon2Threads,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword checks the password against a stored PHC-format hash.
// The parameters are read back out of the hash, so hashes created under a
// previous cost setting keep verifying. A mismatch is (false, nil);
// only a malformed hash is an error.
func VerifyPassword(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidHash
	}

	computedHash := argon2.IDKey(
		[]byte(password),
		salt,
		time,
		memory,
		threads,
		uint32(len(expectedHash)),
	)

	// Constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1, nil
}
