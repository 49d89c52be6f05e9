package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/httpkit/internal/adapters/http/api"
	"github.com/okian/httpkit/internal/adapters/http/site"
	"github.com/okian/httpkit/internal/adapters/http/swagger"
	app "github.com/okian/httpkit/internal/app"
	"github.com/okian/httpkit/internal/config"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/metrics"
	"github.com/okian/httpkit/pkg/static"

	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Runtime collectors go on the custom registry served at /metrics.
	metrics.GetRegistry().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := setupLogging(cfg); err != nil {
		logger.Get().Warn(ctx, "invalid log settings; falling back to info", logger.Error(err))
	}
	loggerInstance := logger.Get()

	svc := newService(cfg, loggerInstance)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, cfg, svc, loggerInstance),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       cfg.WS().IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// setupLogging re-initializes the global logger with the configured format
// and level. On an invalid level the logger stays at info.
func setupLogging(cfg *config.Config) error {
	if err := logger.InitWithWriter(os.Stdout, cfg.LogFormat); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
		return err
	}
	return nil
}

func newService(cfg *config.Config, log logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(log.Named("catalog")),
		app.WithMaxPageLimit(cfg.MaxPageLimit),
		app.WithDefaultPageLimit(cfg.DefaultPageLimit),
		app.WithSeedItems(cfg.SeedItems),
	)
}

// newMux registers every route: API and metrics first, then the OpenAPI
// document, then the SPA as the catch-all.
func newMux(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	apiServer := api.NewServer(svc,
		api.WithLogger(log),
		api.WithErrorMapper(app.MapError),
		api.WithConnectionLimits(cfg.WS()),
	)
	apiServer.Register(ctx, mux)

	swagger.Register(ctx, mux)

	site.Register(ctx, mux,
		static.WithCacheControl(cfg.StaticCacheControl),
		static.WithLogger(log.Named("site")),
	)
	return mux
}
