package domain

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

// SaltSize is the length of the per-user random salt in bytes.
const SaltSize = 64

// Credential is a salted keyed-hash password digest. The salt doubles as the
// HMAC-SHA512 key; verification recomputes the digest under the stored salt.
type Credential struct {
	Salt []byte `json:"-"`
	Hash []byte `json:"-"`
}

// NewCredential derives a credential for plaintext under a fresh random salt.
func NewCredential(plaintext string) (Credential, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, fmt.Errorf("generate salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(plaintext))

	return Credential{Salt: salt, Hash: mac.Sum(nil)}, nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// stored credential (missing salt, truncated hash) verifies as false rather
// than failing.
func (c Credential) Verify(plaintext string) bool {
	if len(c.Salt) == 0 || len(c.Hash) != sha512.Size {
		return false
	}

	mac := hmac.New(sha512.New, c.Salt)
	mac.Write([]byte(plaintext))

	return hmac.Equal(mac.Sum(nil), c.Hash)
}
