package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/policy"
)

func principalWithRoles(name string, roles ...string) *domain.Principal {
	claims := make([]domain.Claim, 0, len(roles))
	for _, r := range roles {
		claims = append(claims, domain.Claim{Type: domain.ClaimTypeRole, Value: r})
	}
	return domain.NewPrincipal(name, claims)
}

func runWith(t *testing.T, mw echo.MiddlewareFunc, p *domain.Principal) (int, bool, string) {
	t.Helper()
	c, rec := newContext("")
	if p != nil {
		c.Set(principalKey, p)
	}
	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec.Code, called, rec.Header().Get(echo.HeaderWWWAuthenticate)
}

func TestRequireAuthenticated(t *testing.T) {
	code, called, challengeHeader := runWith(t, RequireAuthenticated(), nil)
	if code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 without calling next, got %d called=%v", code, called)
	}
	if challengeHeader != "Bearer" {
		t.Fatalf("expected bare Bearer challenge, got %q", challengeHeader)
	}

	code, called, _ = runWith(t, RequireAuthenticated(), principalWithRoles("TEST"))
	if code != http.StatusOK || !called {
		t.Fatalf("expected roleless user to pass, got %d", code)
	}
}

func TestRequirePolicy_AccountHolders(t *testing.T) {
	mw := RequirePolicy(policy.NewDefaultEngine(), policy.OnlyForAccountHolders, zerolog.Nop())

	tests := []struct {
		name     string
		p        *domain.Principal
		wantCode int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"holder", principalWithRoles("BILLY.JEAN@ME.COM", domain.RoleAccountHolders), http.StatusOK},
		{"both roles", principalWithRoles("JEAN.GREY@ME.COM", domain.RoleAccountHolders, domain.RoleAuditors), http.StatusOK},
		{"auditor only", principalWithRoles("AUDITOR@BANK.COM", domain.RoleAuditors), http.StatusForbidden},
		{"no roles", principalWithRoles("NOBODY"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, called, _ := runWith(t, mw, tt.p)
			if code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, code)
			}
			if called != (tt.wantCode == http.StatusOK) {
				t.Fatalf("next called=%v for status %d", called, code)
			}
		})
	}
}

func TestRequirePolicy_DenyBody(t *testing.T) {
	mw := RequirePolicy(policy.NewDefaultEngine(), policy.OnlyForAuditors, zerolog.Nop())

	c, rec := newContext("")
	c.Set(principalKey, principalWithRoles("BILLY.JEAN@ME.COM", domain.RoleAccountHolders))
	if err := mw(func(echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != MessageAccessDenied {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRequirePolicy_RoleMatchIsCaseSensitive(t *testing.T) {
	mw := RequirePolicy(policy.NewDefaultEngine(), policy.OnlyForAuditors, zerolog.Nop())
	code, _, _ := runWith(t, mw, principalWithRoles("X", "auditors"))
	if code != http.StatusForbidden {
		t.Fatalf("expected lowercase role to be denied, got %d", code)
	}
}

func TestRequirePolicy_UnknownPolicyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unregistered policy")
		}
	}()
	RequirePolicy(policy.NewDefaultEngine(), "OnlyForTellers", zerolog.Nop())
}
