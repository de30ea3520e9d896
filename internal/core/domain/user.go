package domain

import "time"

const (
	RoleAccountHolders = "ACCOUNT_HOLDERS"
	RoleAuditors       = "AUDITORS"
)

// Identity models a user that can log in to one of the stacks.
type Identity struct {
	ID           string    `json:"Id"`
	UserName     string    `json:"UserName"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"Roles"`
	CreatedAt    time.Time `json:"-"`
}

// HasRole reports whether the identity was assigned role.
func (i *Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}
