// Package token issues and validates the HS256 bearer tokens handed out at
// login. Both Issuer and Validator are immutable after construction and safe
// for concurrent use.
package token

import (
	"fmt"
	"time"

	"github.com/bankdemo/bank-api/internal/core/domain"
)

// MinSecretLength is the shortest accepted HMAC key, matching the SHA-256 block output.
const MinSecretLength = 32

// Config is the signing material shared by the issuer and the validator.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Validate returns domain.ErrConfiguration describing the first missing field.
func (c Config) Validate() error {
	switch {
	case len(c.Secret) == 0:
		return fmt.Errorf("%w: signing secret is not set", domain.ErrConfiguration)
	case len(c.Secret) < MinSecretLength:
		return fmt.Errorf("%w: signing secret must be at least %d bytes", domain.ErrConfiguration, MinSecretLength)
	case c.Issuer == "":
		return fmt.Errorf("%w: issuer is not set", domain.ErrConfiguration)
	case c.Audience == "":
		return fmt.Errorf("%w: audience is not set", domain.ErrConfiguration)
	case c.TTL <= 0:
		return fmt.Errorf("%w: token lifetime must be positive", domain.ErrConfiguration)
	}
	return nil
}

type options struct {
	now func() time.Time
}

// Option customises an Issuer or Validator.
type Option func(*options)

// WithClock replaces time.Now. Used by tests to mint tokens in the past.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
