package domain

// Claim types understood by the authorization layer. Tokens may carry other
// claim types; they are kept verbatim on the principal.
const (
	ClaimTypeName = "name"
	ClaimTypeRole = "role"
)

// Claim is a single typed fact about the caller.
type Claim struct {
	Type  string
	Value string
}

// Principal is the caller of a single request, rebuilt from a validated token.
// It is never mutated after construction and never persisted.
type Principal struct {
	Name   string
	Claims []Claim
}

// Anonymous is the principal of requests that carried no token.
var Anonymous = &Principal{}

// NewPrincipal builds an authenticated principal. The name is also exposed as
// a ClaimTypeName claim so policies can query it like any other claim.
func NewPrincipal(name string, claims []Claim) *Principal {
	all := make([]Claim, 0, len(claims)+1)
	all = append(all, Claim{Type: ClaimTypeName, Value: name})
	for _, c := range claims {
		if c.Type == ClaimTypeName {
			continue
		}
		all = append(all, c)
	}
	return &Principal{Name: name, Claims: all}
}

func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.Name != ""
}

// HasClaim reports whether the principal carries a claim with the given type
// and value.
func (p *Principal) HasClaim(claimType, value string) bool {
	if p == nil {
		return false
	}
	for _, c := range p.Claims {
		if c.Type == claimType && c.Value == value {
			return true
		}
	}
	return false
}

// FindAll returns the values of every claim of claimType, in token order.
func (p *Principal) FindAll(claimType string) []string {
	if p == nil {
		return nil
	}
	var values []string
	for _, c := range p.Claims {
		if c.Type == claimType {
			values = append(values, c.Value)
		}
	}
	return values
}

// Roles is shorthand for FindAll(ClaimTypeRole).
func (p *Principal) Roles() []string {
	return p.FindAll(ClaimTypeRole)
}
