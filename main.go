package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	database "github.com/oselz/watch-catalog-api/app/db"
	"github.com/oselz/watch-catalog-api/app/logger"
	"github.com/oselz/watch-catalog-api/app/observability/metrics"
	"github.com/oselz/watch-catalog-api/app/tracer"
	"github.com/oselz/watch-catalog-api/config"
	"github.com/oselz/watch-catalog-api/internal/api/auth"
	"github.com/oselz/watch-catalog-api/internal/api/brand"
	"github.com/oselz/watch-catalog-api/internal/api/country"
	"github.com/oselz/watch-catalog-api/internal/api/currency"
	"github.com/oselz/watch-catalog-api/internal/api/user"
	"github.com/oselz/watch-catalog-api/internal/api/watch"
	"github.com/oselz/watch-catalog-api/internal/router"
)

func setupLogger() *slog.Logger {
	env := os.Getenv("APP_ENV")
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment")
	}

	log := setupLogger()
	slog.SetDefault(log)

	cfg, err := config.InitConfig()
	if err != nil {
		log.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsHandler, err := tracer.InitTracingAndMetrics(log)
	if err != nil {
		log.Error("Failed to initialize observability", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	dbConfig, err := database.NewDatabaseConfig(&cfg, log)
	if err != nil {
		log.Error("Failed to build database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.RunMigrations(dbConfig.ConnectionURL, log); err != nil {
		log.Error("Failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, log)
	if err != nil {
		log.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, log) {
		log.Error("Database is unreachable, giving up")
		os.Exit(1)
	}

	// Repositories
	userRepo := user.NewPostgresUserRepo(pool, log)
	countryRepo := country.NewPostgresCountryRepo(pool, log)
	currencyRepo := currency.NewPostgresCurrencyRepo(pool, log)
	brandRepo := brand.NewPostgresBrandRepo(pool, log)
	watchRepo := watch.NewPostgresWatchRepo(pool, log)

	// Services
	authService := auth.NewAuthService(userRepo, cfg.JWT, log)
	userService := user.NewUserService(userRepo, log)
	countryService := country.NewCountryService(countryRepo, log)
	currencyService := currency.NewCurrencyService(currencyRepo, log)
	brandService := brand.NewBrandService(brandRepo, log)
	watchService := watch.NewWatchService(watchRepo, log)

	apiRouter := router.New(router.Config{
		AuthenticateMiddleware: auth.Authenticate(log, cfg.JWT),
		AuthHandler:            auth.NewAuthHandler(authService, userRepo, log),
		UserHandler:            user.NewUserHandler(userService, log),
		CountryHandler:         country.NewCountryHandler(countryService, log),
		CurrencyHandler:        currency.NewCurrencyHandler(currencyService, log),
		BrandHandler:           brand.NewBrandHandler(brandService, log),
		WatchHandler:           watch.NewWatchHandler(watchService, log),
	})

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.StructuredLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(cfg.Server.Timeout))
	r.Use(middleware.Compress(5))
	r.Mount("/", apiRouter)

	server := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:    cfg.Handlers.Prometheus.Port,
		Handler: metricsMux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("Starting metrics server", slog.String("addr", metricsServer.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received, draining connections")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown failed", slog.Any("error", err))
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error("Metrics server shutdown failed", slog.Any("error", err))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("Server stopped")
}
