// Command server runs the blog backend: the public HTTP API, the metrics
// endpoint, and the daily article generation job, all in one process.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"autoblog/internal/infra/db"
	"autoblog/internal/infra/generator"
	"autoblog/internal/infra/scheduler"
	"autoblog/internal/repository"
	pkgcfg "autoblog/pkg/config"

	pgRepo "autoblog/internal/infra/adapter/persistence/postgres"
	sqliteRepo "autoblog/internal/infra/adapter/persistence/sqlite"

	artUC "autoblog/internal/usecase/article"

	hhttp "autoblog/internal/handler/http"
	harticle "autoblog/internal/handler/http/article"
	"autoblog/internal/handler/http/feed"
	"autoblog/internal/handler/http/middleware"
	"autoblog/internal/handler/http/requestid"
	"autoblog/internal/observability/logging"
	"autoblog/internal/observability/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := initLogger()

	database, repo := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	gen, diag := buildGenerator(logger)

	svc := &artUC.Service{
		Repo:  repo,
		Gen:   gen,
		Topic: pkgcfg.GetEnvString("DEFAULT_TOPIC", ""),
	}

	sched := startScheduler(logger, svc)

	handler := setupServer(logger, database, svc, diag)
	runServer(logger, handler, sched)
}

// initLogger builds the process-wide JSON logger from LOG_LEVEL and
// installs it as the slog default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the store selected by DATABASE_URL, runs embedded
// migrations, and seeds the initial articles into an empty table. The
// returned repository matches the driver the DSN selected.
func initDatabase(logger *slog.Logger) (*sql.DB, repository.ArticleRepository) {
	database, driverName := db.Open()

	version, dirty, err := db.MigrateUp(database, driverName)
	if err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrated",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))

	var repo repository.ArticleRepository
	if driverName == db.DriverPostgres {
		repo = pgRepo.NewArticleRepo(database)
	} else {
		repo = sqliteRepo.NewArticleRepo(database)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Seed(ctx, repo, logger); err != nil {
		logger.Error("failed to seed database", slog.Any("error", err))
		os.Exit(1)
	}

	return database, repo
}

// buildGenerator selects the generation backend from GENERATOR_TYPE:
// "openrouter" (default), "claude", or "template". A missing credential is
// a warning, not an error; the backend then serves fallback articles.
func buildGenerator(logger *slog.Logger) (artUC.Generator, hhttp.Diagnoser) {
	kind := pkgcfg.GetEnvString("GENERATOR_TYPE", "openrouter")

	switch kind {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Warn("ANTHROPIC_API_KEY not set, articles will use the fallback template")
		}
		g := generator.NewClaude(apiKey)
		return g, g
	case "template":
		g := generator.NewTemplate()
		return g, g
	case "openrouter":
	default:
		logger.Warn("unknown GENERATOR_TYPE, using openrouter", slog.String("type", kind))
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		logger.Warn("OPENROUTER_API_KEY not set, articles will use the fallback template")
	}
	g := generator.NewOpenRouter(apiKey, generator.LoadConfig())
	return g, g
}

// startScheduler wires the cron job that generates one article per day.
func startScheduler(logger *slog.Logger, svc *artUC.Service) *scheduler.Scheduler {
	metrics := scheduler.NewSchedulerMetrics()
	cfg := scheduler.LoadConfigFromEnv(logger, metrics)

	sched, err := scheduler.New(cfg, svc, logger, metrics)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	sched.Start()
	return sched
}

// setupServer assembles the route tree and the middleware chain.
//
// Routes that can legitimately run for minutes (generate, diagnostics) sit
// outside the request timeout wrapper; everything else answers within
// REQUEST_TIMEOUT.
func setupServer(logger *slog.Logger, database *sql.DB, svc *artUC.Service, diag hhttp.Diagnoser) http.Handler {
	apiMux := http.NewServeMux()
	harticle.Register(apiMux, svc)
	apiMux.Handle("GET /health", &hhttp.HealthHandler{DB: database})
	apiMux.Handle("GET /feed.xml", &feed.Handler{Svc: svc, Cfg: loadFeedConfig()})

	requestTimeout := pkgcfg.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second)

	rootMux := http.NewServeMux()
	rootMux.Handle("POST /api/articles/generate", &harticle.GenerateHandler{Svc: svc})
	rootMux.Handle("GET /api/articles/diagnostics/ai", &hhttp.DiagnosticsHandler{Diag: diag})
	rootMux.Handle("/", hhttp.Timeout(requestTimeout)(apiMux))

	// Innermost first; CORS runs before everything so preflights stay cheap.
	var handler http.Handler = rootMux
	handler = hhttp.MetricsMiddleware(handler)
	handler = tracing.Middleware(handler)
	handler = hhttp.LimitRequestBody(1 << 20)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = requestid.Middleware(handler)
	handler = middleware.CORS(middleware.LoadCORSConfig())(handler)

	return handler
}

func loadFeedConfig() feed.Config {
	port := pkgcfg.GetEnvString("PORT", "8080")
	return feed.Config{
		Title:       pkgcfg.GetEnvString("FEED_TITLE", "Autoblog"),
		Description: pkgcfg.GetEnvString("FEED_DESCRIPTION", "Automatically generated articles"),
		BaseURL:     pkgcfg.GetEnvString("BASE_URL", "http://localhost:"+port),
	}
}

// runServer runs the public API server and the metrics server until a
// signal arrives, then drains: scheduler first, then both HTTP servers.
func runServer(logger *slog.Logger, handler http.Handler, sched *scheduler.Scheduler) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiSrv := &http.Server{
		Addr:              ":" + pkgcfg.GetEnvString("PORT", "8080"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", hhttp.MetricsHandler())
	metricsSrv := &http.Server{
		Addr:              ":" + pkgcfg.GetEnvString("METRICS_PORT", "9090"),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", slog.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("metrics server starting", slog.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		// Let a mid-flight generation job finish before the store goes away.
		select {
		case <-sched.Stop().Done():
		case <-time.After(shutdownTimeout):
			logger.Warn("scheduler jobs still running at shutdown deadline")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("api server shutdown failed", slog.Any("error", err))
		}
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
