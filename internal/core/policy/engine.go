// Package policy evaluates named authorization policies against a request
// principal.
package policy

import (
	"errors"
	"fmt"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

const (
	OnlyForAccountHolders = "OnlyForAccountHolders"
	OnlyForAuditors       = "OnlyForAuditors"
)

var ErrUnknownPolicy = errors.New("unknown policy")

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Policy is a pure predicate over the caller's claims.
type Policy func(p *domain.Principal) bool

// RequireClaim allows principals holding a claimType claim whose value is any
// of allowed.
func RequireClaim(claimType string, allowed ...string) Policy {
	values := append([]string(nil), allowed...)
	return func(p *domain.Principal) bool {
		for _, v := range values {
			if p.HasClaim(claimType, v) {
				return true
			}
		}
		return false
	}
}

// RequireAuthenticatedUser allows any non-anonymous principal.
func RequireAuthenticatedUser() Policy {
	return func(p *domain.Principal) bool {
		return p.IsAuthenticated()
	}
}

// Engine holds a fixed set of named policies. It is never modified after
// construction.
type Engine struct {
	policies map[string]Policy
}

func NewEngine(policies map[string]Policy) *Engine {
	copied := make(map[string]Policy, len(policies))
	for name, p := range policies {
		if p != nil {
			copied[name] = p
		}
	}
	return &Engine{policies: copied}
}

// NewDefaultEngine returns the engine with the two role policies used by the API.
func NewDefaultEngine() *Engine {
	return NewEngine(map[string]Policy{
		OnlyForAccountHolders: RequireClaim(domain.ClaimTypeRole, domain.RoleAccountHolders),
		OnlyForAuditors:       RequireClaim(domain.ClaimTypeRole, domain.RoleAuditors),
	})
}

func (e *Engine) Has(name string) bool {
	_, ok := e.policies[name]
	return ok
}

// Evaluate runs the named policy. Anonymous principals are always denied, and
// an unknown name denies with ErrUnknownPolicy.
func (e *Engine) Evaluate(name string, p *domain.Principal) (Decision, error) {
	policy, ok := e.policies[name]
	if !ok {
		return Deny, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	if !p.IsAuthenticated() {
		return Deny, nil
	}
	if policy(p) {
		return Allow, nil
	}
	return Deny, nil
}
