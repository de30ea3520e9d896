// Package password hashes and verifies user passwords with bcrypt and applies
// the provisioning-time complexity policy.
package password

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// Policy is the complexity rule applied when a user is created. Minimum length
// is the only rule; character classes are not enforced.
type Policy struct {
	MinLength int
}

// Validate returns domain.ErrPasswordTooShort when pw is shorter than MinLength runes.
func (p Policy) Validate(pw string) error {
	if utf8.RuneCountInString(pw) < p.MinLength {
		return fmt.Errorf("%w: minimum length is %d", domain.ErrPasswordTooShort, p.MinLength)
	}
	return nil
}

// Hasher wraps bcrypt with a fixed cost.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher returns a Hasher using cost, falling back to bcrypt.DefaultCost
// when cost is outside bcrypt's accepted range. The dummy hash used by
// CompareMissing is generated here, so no login ever pays for it.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// A uuid is well under bcrypt's 72 byte limit, so this cannot fail.
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	return &Hasher{cost: cost, dummy: dummy}
}

func (h *Hasher) Cost() int { return h.cost }

func (h *Hasher) Hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Compare reports whether pw matches hash. A malformed hash never matches.
func (h *Hasher) Compare(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// CompareMissing burns one comparison against a throwaway hash and always
// returns false. Stores call it for unknown usernames so the response time
// matches that of a wrong password.
func (h *Hasher) CompareMissing(pw string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(pw))
	return false
}
