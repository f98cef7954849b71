package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/catalog"
	"github.com/heartmarshall/domainshare-backend/internal/adapter/events"
	grantclient "github.com/heartmarshall/domainshare-backend/internal/adapter/grant"
	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres"
	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres/continuation"
	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres/instance"
	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres/sharemapping"
	"github.com/heartmarshall/domainshare-backend/internal/auth"
	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/metrics"
	"github.com/heartmarshall/domainshare-backend/internal/service/approval"
	continuationsvc "github.com/heartmarshall/domainshare-backend/internal/service/continuation"
	grantsvc "github.com/heartmarshall/domainshare-backend/internal/service/grant"
	"github.com/heartmarshall/domainshare-backend/internal/service/workflow"
	"github.com/heartmarshall/domainshare-backend/internal/transport/middleware"
	"github.com/heartmarshall/domainshare-backend/internal/transport/rest"
)

type sharePublisher interface {
	PublishShareGranted(ctx context.Context, ev domain.ShareGrantedEvent) error
}

// Run loads configuration, wires every component and serves HTTP together
// with the workflow sweeper until ctx is cancelled or either of them fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	tx, err := postgres.NewTxManager(pool, cfg.Database.TxIsolation)
	if err != nil {
		return err
	}

	// Repositories.
	ledgerRepo := ledger.New(pool)
	mappingRepo := sharemapping.New(pool)
	instanceRepo := instance.New(pool)
	tokenRepo := continuation.New(pool)

	// Outbound services.
	catalogClient := catalog.New(cfg.Catalog, logger)
	grantClient := grantclient.New(cfg.Grants, logger)
	var publisher sharePublisher = events.NewLogPublisher(logger)
	if cfg.Events.BaseURL != "" {
		publisher = events.NewWebhookPublisher(cfg.Events, logger)
	}

	registry := continuationsvc.NewRegistry(logger, tokenRepo)
	granter := grantsvc.NewService(logger, grantClient, mappingRepo)
	engine := workflow.NewEngine(logger, cfg.Workflow,
		instanceRepo, ledgerRepo, mappingRepo, catalogClient, granter, registry, publisher, tx)
	approvals := approval.NewService(logger, ledgerRepo, mappingRepo, registry, engine, tx)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := newRouter(routerDeps{
		log:       logger,
		cors:      cfg.CORS,
		rateLimit: cfg.RateLimit,
		limiter:   limiter,
		tokens:    auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		health:    rest.NewHealthHandler(BuildVersion(), map[string]rest.Check{"database": pool.Ping}),
		shares:    rest.NewShareHandler(approvals, logger),
		approvals: rest.NewApprovalHandler(approvals, logger),
		metrics:   metrics.Handler(),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, engine, cfg.Server)
}

type sweeper interface {
	Sweep(ctx context.Context) error
}

// serve runs the HTTP server and the sweeper until ctx is done, then shuts
// the server down within ShutdownTimeout.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, sw sweeper, cfg config.ServerConfig) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sw.Sweep(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
