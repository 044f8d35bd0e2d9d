package hash

import (
	"crypto/sha256"
	"fmt"
)

// CodeHasher provides hashing logic so issued one-time codes are never
// stored in plain text.
type CodeHasher interface {
	Hash(code string) (string, error)
}

// SHA256Hasher hashes codes with SHA256 and the provided salt.
type SHA256Hasher struct {
	salt string
}

func NewSHA256Hasher(salt string) *SHA256Hasher {
	return &SHA256Hasher{salt: salt}
}

func (h *SHA256Hasher) Hash(code string) (string, error) {
	hash := sha256.New()

	if _, err := hash.Write([]byte(code)); err != nil {
		return "", err
	}

	//nolint:perfsprint
	return fmt.Sprintf("%x", hash.Sum([]byte(h.salt))), nil
}
