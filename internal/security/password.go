package security

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plain text password with bcrypt.
// DefaultCost (10 rounds) keeps login latency tolerable while staying
// expensive enough for offline attacks.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
// A malformed stored hash comes back as an error, i.e. a mismatch;
// callers must never treat it as anything but failed credentials.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// Hasher is the method-set form of the two functions above, for handlers
// that take the hasher as a dependency.
type Hasher struct{}

func NewHasher() Hasher {
	return Hasher{}
}

func (Hasher) HashPassword(plain string) (string, error) {
	return HashPassword(plain)
}

func (Hasher) CheckPassword(hash, plain string) error {
	return CheckPassword(hash, plain)
}
