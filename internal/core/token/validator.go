package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// inboundClaimTypes renames JWT claim names to the claim types policies query.
// Claims not listed keep their JWT name.
var inboundClaimTypes = map[string]string{
	"sub":  domain.ClaimTypeName,
	"role": domain.ClaimTypeRole,
}

// Validator verifies tokens minted by an Issuer sharing the same Config.
type Validator struct {
	secret []byte
	parser *jwt.Parser
}

// NewValidator returns domain.ErrConfiguration when cfg is incomplete.
func NewValidator(cfg Config, opts ...Option) (*Validator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(o.now),
	)
	return &Validator{secret: cfg.Secret, parser: parser}, nil
}

// Validate checks, in order, structure, signature, expiry, then issuer and
// audience. Expiry failures return domain.ErrTokenExpired; everything else
// wraps domain.ErrTokenInvalid.
func (v *Validator) Validate(raw string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return principalFromClaims(claims)
}

// principalFromClaims maps the subject to the principal name and copies every
// other claim through inboundClaimTypes.
func principalFromClaims(claims jwt.MapClaims) (*domain.Principal, error) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenInvalid)
	}

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []domain.Claim
	for _, k := range keys {
		claimType := k
		if mapped, ok := inboundClaimTypes[k]; ok {
			claimType = mapped
		}
		if claimType == domain.ClaimTypeName {
			continue
		}
		for _, v := range claimValues(claims[k]) {
			out = append(out, domain.Claim{Type: claimType, Value: v})
		}
	}
	return domain.NewPrincipal(sub, out), nil
}

// claimValues renders a decoded JSON value as claim strings. Arrays yield one
// value per element.
func claimValues(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case float64:
		return []string{strconv.FormatFloat(val, 'f', -1, 64)}
	case bool:
		return []string{strconv.FormatBool(val)}
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, claimValues(item)...)
		}
		return out
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil
		}
		return []string{string(b)}
	}
}
