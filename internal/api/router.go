package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bankdemo/bank-api/docs"
	"github.com/bankdemo/bank-api/internal/api/handler"
	"github.com/bankdemo/bank-api/internal/api/metrics"
	"github.com/bankdemo/bank-api/internal/api/middleware"
	"github.com/bankdemo/bank-api/internal/core/policy"
	"github.com/bankdemo/bank-api/internal/core/ports"
)

const (
	StackProduction = "production"
	StackTesting    = "testing"

	PrefixProduction = "/api/v2"
	PrefixTesting    = "/testing/api/v2"
)

// Stack is one set of auth and account routes mounted under Prefix, backed by
// its own credential store.
type Stack struct {
	Name     string
	Prefix   string
	Auth     ports.AuthService
	Accounts ports.AccountService
}

// Deps carries everything the router needs. Tokens are validated and policies
// evaluated the same way for every stack.
type Deps struct {
	Stacks    []Stack
	Tokens    ports.TokenValidator
	Policies  middleware.PolicyEvaluator
	Readiness []handler.Pinger

	// Policies defaults to policy.NewDefaultEngine. Registerer and Gatherer
	// default to the prometheus default registry; both the request metrics
	// and the auth counters in package metrics are registered on Registerer.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// It panics if a route refers to an unregistered policy or the metrics
// cannot be registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if deps.Policies == nil {
		deps.Policies = policy.NewDefaultEngine()
	}

	if err := metrics.Register(deps.Registerer); err != nil {
		panic(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bank",
		Registerer: deps.Registerer,
	}))

	// --- Stacks ---
	authn := middleware.Authenticate(deps.Tokens, deps.Log)
	for _, s := range deps.Stacks {
		registerStack(e, s, authn, deps.Policies, deps.Log)
	}

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func registerStack(e *echo.Echo, s Stack, authn echo.MiddlewareFunc, policies middleware.PolicyEvaluator, log zerolog.Logger) {
	log = log.With().Str("stack", s.Name).Logger()
	authHandler := handler.NewAuthHandler(s.Auth, s.Name, log)
	accountHandler := handler.NewAccountHandler(s.Accounts)

	g := e.Group(s.Prefix)
	// Login stays reachable with a stale token in the header.
	g.POST("/auth", authHandler.Login)
	g.GET("/info", authHandler.Info, authn, middleware.RequireAuthenticated())
	g.GET("/account", accountHandler.Get, authn, middleware.RequirePolicy(policies, policy.OnlyForAccountHolders, log))
	g.GET("/accounts", accountHandler.List, authn, middleware.RequirePolicy(policies, policy.OnlyForAuditors, log))
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
