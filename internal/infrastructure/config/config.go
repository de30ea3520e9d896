package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/token"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	SeedData bool   `env:"SEED_DATA, default=true"`

	JWT      JWTConfig
	Password PasswordConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// MaxExpireSeconds caps token lifetime at one year.
const MaxExpireSeconds = 365 * 24 * 60 * 60

type JWTConfig struct {
	Secret        string `env:"JWT_SECRET"`
	Issuer        string `env:"JWT_ISSUER,         default=bank-api"`
	Audience      string `env:"JWT_AUDIENCE,       default=bank-api-clients"`
	ExpireSeconds int    `env:"JWT_EXPIRE_SECONDS, default=3600"`
}

type PasswordConfig struct {
	MinLength  int `env:"PASSWORD_MIN_LENGTH, default=4"`
	BcryptCost int `env:"BCRYPT_COST,         default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bank"`
}

type RedisConfig struct {
	Addr         string        `env:"REDIS_ADDR,     default=localhost:6379"`
	DB           int           `env:"REDIS_DB,       default=0"`
	RoleCacheTTL time.Duration `env:"ROLE_CACHE_TTL, default=30s"`
}

// Load reads configuration from the process environment and validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper. Tests pass a MapLookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service must not start with. Missing
// signing material is reported as domain.ErrConfiguration.
func (c *Config) Validate() error {
	if c.JWT.ExpireSeconds > MaxExpireSeconds {
		return fmt.Errorf("config: %w: JWT_EXPIRE_SECONDS must be at most %d", domain.ErrConfiguration, MaxExpireSeconds)
	}
	if err := c.JWT.TokenConfig().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Password.MinLength < 1 {
		return fmt.Errorf("config: %w: PASSWORD_MIN_LENGTH must be at least 1", domain.ErrConfiguration)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// TokenConfig converts the JWT settings into the issuer/validator config.
func (j JWTConfig) TokenConfig() token.Config {
	return token.Config{
		Secret:   []byte(j.Secret),
		Issuer:   j.Issuer,
		Audience: j.Audience,
		TTL:      time.Duration(j.ExpireSeconds) * time.Second,
	}
}
