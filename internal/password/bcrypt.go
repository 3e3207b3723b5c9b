package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Divyansh8843/TaskMaster/internal/model"
)

// hashCost matches the cost factor the original deployment used.
const hashCost = 12

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt implements PasswordHasher with a fixed cost factor.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher with the default cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: hashCost}
}

// Hash returns the one-way hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare verifies password against a stored hash.
func (b *Bcrypt) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
