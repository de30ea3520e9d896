// Package metrics defines the custom Prometheus metrics of the bank API.
// HTTP request metrics come from echoprometheus; everything here is
// authentication and authorization specific.
//
// The collectors are not registered anywhere until Register is called. The
// router registers them on the same registry as the request metrics.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bank"

// LoginAttemptsTotal counts POST /auth outcomes.
// Labels:
//   - stack: "production" or "testing"
//   - result: "success", "rejected" (bad credentials) or "error"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by stack and result.",
	},
	[]string{"stack", "result"},
)

// TokenValidationsTotal counts bearer tokens seen by the authentication middleware.
// Label:
//   - result: "valid", "invalid" or "expired"
var TokenValidationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer tokens validated, by result.",
	},
	[]string{"result"},
)

// AuthorizationDecisionsTotal counts policy evaluations.
// Labels:
//   - policy: policy name, or "authenticated" for the plain authentication requirement
//   - decision: "allow", "deny" or "challenge" (anonymous caller)
var AuthorizationDecisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization decisions, by policy and decision.",
	},
	[]string{"policy", "decision"},
)

// Register adds every collector of this package to reg. Registering twice on
// the same registry is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		LoginAttemptsTotal,
		TokenValidationsTotal,
		AuthorizationDecisionsTotal,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("metrics: register: %w", err)
		}
	}
	return nil
}
