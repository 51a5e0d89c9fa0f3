package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Role names carried in credentials.
const (
	RoleOperator = "operator"
	RoleBuyer    = "buyer"
	RoleProducer = "producer"
)

// ErrInvalidCredentials is returned by login flows for an unknown email or a
// wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Issuer mints credentials at login.
type Issuer interface {
	Issue(s Subject) (string, error)
}

// Hasher is the password hash/compare capability.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a Hasher using bcrypt at the given cost; zero means
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *bcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
