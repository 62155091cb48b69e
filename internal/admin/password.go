package admin

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Secret is the single shared admin credential, held either as plaintext or
// as a bcrypt hash.
type Secret struct {
	plain []byte
	hash  []byte
}

// NewSecret builds the credential. When hash is non-empty it is used and
// plain is ignored.
func NewSecret(plain, hash string) Secret {
	if hash != "" {
		return Secret{hash: []byte(hash)}
	}
	return Secret{plain: []byte(plain)}
}

// Matches compares password against the secret in constant time.
func (s Secret) Matches(password string) bool {
	if len(s.hash) > 0 {
		return bcrypt.CompareHashAndPassword(s.hash, []byte(password)) == nil
	}
	if len(s.plain) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s.plain, []byte(password)) == 1
}
