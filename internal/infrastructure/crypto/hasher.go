// Package crypto holds the password hashing scheme.
package crypto

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

const (
	saltBytes = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Argon2Hasher derives password hashes with Argon2id. The zero value is ready
// to use.
type Argon2Hasher struct{}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// Derive hashes password with salt. When salt is empty a random one is
// generated. Equal inputs always yield equal hashes.
func (h *Argon2Hasher) Derive(password, salt string) (string, string) {
	if salt == "" {
		salt = newSalt()
	}
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return salt, base64.StdEncoding.EncodeToString(key)
}

func newSalt() string {
	b := make([]byte, saltBytes)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b)
	return base64.RawStdEncoding.EncodeToString(b)
}
