// Package main is the entrypoint for the High Fidelity API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/hifidelity/hifidelity/internal/cache"
	"github.com/hifidelity/hifidelity/internal/chain"
	"github.com/hifidelity/hifidelity/internal/config"
	"github.com/hifidelity/hifidelity/internal/farcaster"
	"github.com/hifidelity/hifidelity/internal/gate"
	"github.com/hifidelity/hifidelity/internal/handler"
	"github.com/hifidelity/hifidelity/internal/leaderboard"
	"github.com/hifidelity/hifidelity/internal/metrics"
	"github.com/hifidelity/hifidelity/internal/middleware"
	"github.com/hifidelity/hifidelity/internal/scheduler"
	"github.com/hifidelity/hifidelity/internal/server"
	"github.com/hifidelity/hifidelity/internal/service"
)

func main() {
	ctx := context.Background()

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Redis is optional; without it the app runs with no IP rate limiting.
	var cacheClient *cache.Cache
	if cfg.RateLimitEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	} else {
		logger.Info("REDIS_URL not set, IP rate limiting disabled")
	}

	resolver := farcaster.NewClient(cfg.NeynarBaseURL, cfg.NeynarAPIKey, cfg.ResolveTimeout)

	// The chain is optional too: without the full mint config the app
	// still tracks lists, check-ins and leaderboards.
	var minter chain.Minter = chain.Disabled()
	var ethMinter *chain.EthMinter
	if cfg.MintingConfigured() {
		ethMinter, err = chain.NewEthMinter(chain.Config{
			RPCURL:          cfg.BaseRPC,
			PrivateKeyHex:   cfg.PrivateKey,
			ContractAddress: cfg.ContractAddress,
			ChainID:         cfg.ChainID,
			Timeout:         cfg.MintTimeout,
		})
		if err != nil {
			logger.Error("failed to set up minter", "error", err)
			os.Exit(1)
		}
		defer ethMinter.Close()
		minter = ethMinter
		logger.Info("minter ready", "contract", cfg.ContractAddress, "chain_id", cfg.ChainID)
	} else {
		logger.Warn("chain config incomplete, rewards will be skipped")
	}

	recorder := metrics.NewInMemory()
	board := leaderboard.New()
	svc := service.NewRankService(
		board,
		gate.New(gate.DefaultWindow),
		resolver,
		minter,
		recorder,
		logger,
		cfg.DefaultCategory,
	)

	sched, err := scheduler.New(cfg.ResetSchedule, svc, logger)
	if err != nil {
		logger.Error("invalid reset schedule", "schedule", cfg.ResetSchedule, "error", err)
		os.Exit(1)
	}

	rankHandler := handler.NewRankHandler(svc, logger)
	frameHandler := handler.NewFrameHandler(cfg, logger)
	metricsHandler := handler.NewMetricsHandler(recorder)

	var chainCheck, cacheCheck handler.HealthChecker
	if ethMinter != nil {
		chainCheck = ethMinter
	}
	if cacheClient != nil {
		cacheCheck = cacheClient
	}
	healthHandler := handler.NewHealthHandler(chainCheck, cacheCheck)

	r := setupRouter(rankHandler, frameHandler, healthHandler, metricsHandler, cacheClient, cfg, logger)

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	sched.Start()
	srv.OnShutdown("scheduler", sched.Stop)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
		"default_category", cfg.DefaultCategory,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	rankHandler *handler.RankHandler,
	frameHandler *handler.FrameHandler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health and debug endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/internal/metrics", metricsHandler.Metrics)

	// Frame surface
	r.Get("/", handler.Root)
	r.Get("/frame", frameHandler.Frame)
	r.Get("/.well-known/farcaster.json", frameHandler.Manifest)

	// Leaderboard view; the frame POSTs, API consumers GET.
	r.Get("/view", rankHandler.View)
	r.Post("/view", rankHandler.View)

	// Rewarded actions, IP rate limited when Redis is configured.
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitEnabled(),
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	}
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitRewards(rateLimitCfg))
		r.Post("/submit", rankHandler.Submit)
		r.Post("/checkin", rankHandler.CheckIn)
		r.Post("/share", rankHandler.Share)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
