package auth

import "golang.org/x/crypto/bcrypt"

// HashProvider is the one-way password hashing contract consumed by the
// user service.
type HashProvider interface {
	Hash(password string) (string, error)
	Matches(password, hash string) bool
}

// BcryptHasher implements HashProvider with bcrypt at the default cost.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Matches(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
