package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sujay090/Dynamic-form-sub001/internal/adapter/postgres"
	"github.com/sujay090/Dynamic-form-sub001/internal/adapter/postgres/formdef"
	recordrepo "github.com/sujay090/Dynamic-form-sub001/internal/adapter/postgres/record"
	"github.com/sujay090/Dynamic-form-sub001/internal/adapter/storage"
	"github.com/sujay090/Dynamic-form-sub001/internal/auth"
	"github.com/sujay090/Dynamic-form-sub001/internal/config"
	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/metrics"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/catalog"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/codec"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/export"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/record"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/schema"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/uniqueness"
	"github.com/sujay090/Dynamic-form-sub001/internal/transport/middleware"
	"github.com/sujay090/Dynamic-form-sub001/internal/transport/rest"
)

const validatorCacheSize = 64

// Services bundles the wired domain services. The server and the admin
// CLI share it.
type Services struct {
	Pool    *pgxpool.Pool
	Catalog *catalog.Service
	Records *record.Service
	Export  *export.Service
	Metrics *metrics.Collector
}

// Close releases the database pool.
func (s *Services) Close() {
	s.Pool.Close()
}

// Build connects to the database, applies migrations when enabled and wires
// every service.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}
	svc, err := NewServices(ctx, cfg, pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return svc, nil
}

// NewServices wires every service on top of an open pool. The returned
// Services owns pool.
func NewServices(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Services, error) {
	defaults := catalog.BuiltinDefaults()
	policy := uniqueness.DefaultPolicy()
	if cfg.Forms.DefaultsPath != "" {
		var (
			keys map[domain.FormType][]string
			err  error
		)
		defaults, keys, err = catalog.LoadDefaults(cfg.Forms.DefaultsPath)
		if err != nil {
			return nil, fmt.Errorf("load form defaults: %w", err)
		}
		for ft, k := range keys {
			policy = policy.With(ft, k...)
		}
		logger.Info("form defaults loaded",
			slog.String("path", cfg.Forms.DefaultsPath),
			slog.Int("forms", len(defaults)),
		)
	}

	var cdc *codec.Codec
	if cfg.Storage.Enabled() {
		store, err := storage.New(ctx, cfg.Storage, logger)
		if err != nil {
			return nil, err
		}
		cdc = codec.New(logger, store, cfg.Forms.BooleanFields)
	} else {
		logger.Warn("storage endpoint not configured, file uploads are rejected")
		cdc = codec.New(logger, nil, cfg.Forms.BooleanFields)
	}

	collector := metrics.New()
	records := recordrepo.New(pool)

	catalogSvc := catalog.NewService(logger, formdef.New(pool), defaults,
		catalog.WithFetchTimeout(cfg.Forms.FetchTimeout),
		catalog.WithObserver(collector),
		catalog.WithValidatorCache(schema.NewCache(validatorCacheSize)),
	)
	recordSvc := record.NewService(logger,
		records,
		catalogSvc,
		uniqueness.NewResolver(logger, policy, records),
		cdc,
		postgres.NewTxManager(pool),
		collector,
	)

	return &Services{
		Pool:    pool,
		Catalog: catalogSvc,
		Records: recordSvc,
		Export:  export.NewService(logger, catalogSvc, recordSvc),
		Metrics: collector,
	}, nil
}

// NewHandler assembles the HTTP handler with its middleware chain.
func NewHandler(cfg *config.Config, svc *Services, logger *slog.Logger) http.Handler {
	routes := rest.Routes{
		Health:  rest.NewHealthHandler(svc.Pool, BuildVersion()),
		Forms:   rest.NewFormHandler(svc.Catalog, logger),
		Records: rest.NewRecordHandler(svc.Records, svc.Export, cfg.Forms.MaxUploadMB<<20, logger),
	}
	var observe middleware.Middleware
	if cfg.Metrics.Enabled {
		routes.Metrics = svc.Metrics.Handler()
		routes.MetricsPath = cfg.Metrics.Path
		observe = middleware.Metrics(svc.Metrics)
	}
	mux := rest.NewRouter(routes)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(verifier, cfg.Auth.AdminRole),
		observe,
	)(mux)
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
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

	svc, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, svc, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("server stopped", slog.Time("at", time.Now()))
	return nil
}
