// @title        Bank API
// @version      2.0
// @description  Demo banking backend: password login, bearer tokens and role policies.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bankdemo/bank-api/internal/api"
	"github.com/bankdemo/bank-api/internal/api/handler"
	"github.com/bankdemo/bank-api/internal/core/policy"
	"github.com/bankdemo/bank-api/internal/core/ports"
	"github.com/bankdemo/bank-api/internal/core/service"
	"github.com/bankdemo/bank-api/internal/core/token"
	"github.com/bankdemo/bank-api/internal/infrastructure/config"
	"github.com/bankdemo/bank-api/internal/infrastructure/db/memory"
	mongostore "github.com/bankdemo/bank-api/internal/infrastructure/db/mongo"
	redisstore "github.com/bankdemo/bank-api/internal/infrastructure/db/redis"
	"github.com/bankdemo/bank-api/internal/infrastructure/seed"
	"github.com/bankdemo/bank-api/internal/pkg/password"
	"github.com/bankdemo/bank-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: "bank-api"})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bank-api",
	})

	// --- Infrastructure ---
	db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	hasher := password.NewHasher(cfg.Password.BcryptCost)
	pwPolicy := password.Policy{MinLength: cfg.Password.MinLength}
	tokenCfg := cfg.JWT.TokenConfig()

	// --- Stores ---
	prodStore := mongostore.NewStore(db, hasher, pwPolicy)
	if err := prodStore.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure mongodb indexes")
	}
	prodUsers := redisstore.NewRoleCache(prodStore, rdb, cfg.Redis.RoleCacheTTL, logger.Component("role-cache"))
	testStore := memory.NewStore(hasher, pwPolicy)

	if cfg.SeedData {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return seed.Run(gctx, prodUsers, prodStore, seed.Production(), logger.Component("seed").With().Str("stack", api.StackProduction).Logger())
		})
		g.Go(func() error {
			return seed.Run(gctx, testStore, testStore, seed.Testing(), logger.Component("seed").With().Str("stack", api.StackTesting).Logger())
		})
		if err := g.Wait(); err != nil {
			log.Fatal().Err(err).Msg("seed data")
		}
	}

	// --- Services ---
	prodStack, err := newStack(api.StackProduction, api.PrefixProduction, tokenCfg, prodUsers, prodStore)
	if err != nil {
		log.Fatal().Err(err).Msg("build production stack")
	}
	testStack, err := newStack(api.StackTesting, api.PrefixTesting, tokenCfg, testStore, testStore)
	if err != nil {
		log.Fatal().Err(err).Msg("build testing stack")
	}

	validator, err := token.NewValidator(tokenCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build token validator")
	}

	router := api.NewRouter(api.Deps{
		Stacks:    []api.Stack{prodStack, testStack},
		Tokens:    validator,
		Policies:  policy.NewDefaultEngine(),
		Readiness: []handler.Pinger{mongostore.NewPinger(db), redisstore.NewPinger(rdb)},
		Log:       logger.Component("http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

func newStack(name, prefix string, cfg token.Config, users ports.CredentialStore, accounts ports.AccountRepository) (api.Stack, error) {
	issuer, err := token.NewIssuer(cfg, users)
	if err != nil {
		return api.Stack{}, err
	}
	log := logger.Component("service").With().Str("stack", name).Logger()
	return api.Stack{
		Name:     name,
		Prefix:   prefix,
		Auth:     service.NewAuthService(users, issuer, log),
		Accounts: service.NewAccountService(accounts, log),
	}, nil
}
