package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bankdemo/bank-api/internal/api/metrics"
	"github.com/bankdemo/bank-api/internal/core/domain"
	"github.com/bankdemo/bank-api/internal/core/policy"
)

// PolicyEvaluator is satisfied by *policy.Engine.
type PolicyEvaluator interface {
	Has(name string) bool
	Evaluate(name string, p *domain.Principal) (policy.Decision, error)
}

// RequireAuthenticated rejects anonymous callers with a 401 challenge.
// Roles are not inspected.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Principal(c).IsAuthenticated() {
				metrics.AuthorizationDecisionsTotal.WithLabelValues("authenticated", "challenge").Inc()
				return challenge(c, "")
			}
			metrics.AuthorizationDecisionsTotal.WithLabelValues("authenticated", "allow").Inc()
			return next(c)
		}
	}
}

// RequirePolicy enforces a named policy: anonymous callers get 401, denied
// callers 403. It panics when name is not registered, so a misspelt policy
// fails at route registration instead of on the first request.
func RequirePolicy(engine PolicyEvaluator, name string, log zerolog.Logger) echo.MiddlewareFunc {
	if !engine.Has(name) {
		panic(fmt.Sprintf("middleware: %v: %q", policy.ErrUnknownPolicy, name))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if !p.IsAuthenticated() {
				metrics.AuthorizationDecisionsTotal.WithLabelValues(name, "challenge").Inc()
				return challenge(c, "")
			}

			decision, err := engine.Evaluate(name, p)
			if err != nil {
				log.Error().Err(err).Str("policy", name).Msg("policy evaluation failed")
			}
			metrics.AuthorizationDecisionsTotal.WithLabelValues(name, decision.String()).Inc()
			if decision != policy.Allow {
				log.Info().Str("policy", name).Str("principal", p.Name).Msg("access denied")
				return forbid(c)
			}
			return next(c)
		}
	}
}
