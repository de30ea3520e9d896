package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": secret,
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || !cfg.SeedData {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Password.MinLength != 4 {
		t.Fatalf("expected password min length 4, got %d", cfg.Password.MinLength)
	}
	if cfg.Redis.RoleCacheTTL != 30*time.Second {
		t.Fatalf("unexpected role cache ttl: %v", cfg.Redis.RoleCacheTTL)
	}

	tc := cfg.JWT.TokenConfig()
	if tc.Issuer != "bank-api" || tc.Audience != "bank-api-clients" || tc.TTL != time.Hour {
		t.Fatalf("unexpected token config: %+v", tc)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         secret,
		"JWT_ISSUER":         "issuer",
		"JWT_AUDIENCE":       "aud",
		"JWT_EXPIRE_SECONDS": "120",
		"ENV":                "production",
		"MONGO_DB":           "bank_prod",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.TokenConfig().TTL != 2*time.Minute {
		t.Fatalf("unexpected ttl: %v", cfg.JWT.TokenConfig().TTL)
	}
	if cfg.IsDevelopment() || cfg.Mongo.Database != "bank_prod" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadWith_MissingSecretIsConfigurationError(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadWith_InvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"short secret":    {"JWT_SECRET": "short"},
		"zero ttl":        {"JWT_SECRET": secret, "JWT_EXPIRE_SECONDS": "0"},
		"zero min length": {"JWT_SECRET": secret, "PASSWORD_MIN_LENGTH": "0"},
		"ttl over a year": {"JWT_SECRET": secret, "JWT_EXPIRE_SECONDS": "31536001"},
		// Would wrap to a small positive duration if multiplied unchecked.
		"ttl overflow": {"JWT_SECRET": secret, "JWT_EXPIRE_SECONDS": "9223372037"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestLoadWith_MaxTTLAccepted(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         secret,
		"JWT_EXPIRE_SECONDS": "31536000",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.TokenConfig().TTL != 365*24*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.JWT.TokenConfig().TTL)
	}
}
