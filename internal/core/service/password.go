package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces and verifies salted one-way password digests.
// bcrypt output is self-describing (cost and salt embedded), so a single
// process-wide hasher covers every stored hash.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// Hash returns a salted digest of plaintext. Two calls with the same input
// produce different output.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison
// is constant time. A malformed stored hash is a mismatch, never a panic.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
