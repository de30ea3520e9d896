package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/api/metrics"
	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

const principalKey = "principal"

// Authenticate validates a Bearer token when one is present and stores the
// resulting principal on the context. Requests without a Bearer token proceed
// as anonymous; requests with a bad one are answered with a 401 challenge and
// never reach next. Expired and invalid tokens get the same response.
func Authenticate(validator ports.TokenValidator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				SetPrincipal(c, domain.Anonymous)
				return next(c)
			}

			p, err := validator.Validate(raw)
			if err != nil {
				result := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					result = "expired"
				}
				metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
				log.Debug().Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Request().URL.Path).
					Msg("bearer token rejected")
				return challenge(c, "invalid_token")
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			SetPrincipal(c, p)
			return next(c)
		}
	}
}

// SetPrincipal attaches p as the caller of the request.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// Principal returns the caller set by Authenticate, or domain.Anonymous.
func Principal(c echo.Context) *domain.Principal {
	if p, ok := c.Get(principalKey).(*domain.Principal); ok && p != nil {
		return p
	}
	return domain.Anonymous
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}
