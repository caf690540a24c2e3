package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a password into its stored form and checks candidates against it.
type Hasher interface {
	Hash(password string) (string, error)
	Matches(stored, candidate string) bool
}

// PlainHasher stores passwords as given. It exists for tables shared with
// the legacy portal, which reads raw secrets.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Matches(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptHasher stores bcrypt hashes of the SHA-256 digest of the password,
// which lifts bcrypt's 72-byte input limit. Rows that are not bcrypt hashes
// were written by the legacy portal and are compared as plaintext.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Matches(stored, candidate string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), prehash(candidate)) == nil
	}
	return PlainHasher{}.Matches(stored, candidate)
}

// prehash returns the base64 SHA-256 digest of password: 44 bytes, no NULs.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
