package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for all password writes.
const HashCost = bcrypt.DefaultCost

// HashPassword derives a salted one-way hash of the plaintext. The plaintext
// is never stored or logged anywhere.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the claim matches the stored hash. bcrypt's
// compare is constant-time.
func CheckPassword(hash, claim string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(claim)) == nil
}
