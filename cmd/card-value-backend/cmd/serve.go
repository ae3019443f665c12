package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jessysellshomes/card-value-backend/api/docs"
	"github.com/jessysellshomes/card-value-backend/internal/api/handlers"
	"github.com/jessysellshomes/card-value-backend/internal/api/middleware"
	"github.com/jessysellshomes/card-value-backend/internal/comps"
	"github.com/jessysellshomes/card-value-backend/internal/config"
	"github.com/jessysellshomes/card-value-backend/internal/ebay"
	"github.com/jessysellshomes/card-value-backend/internal/engine"
	"github.com/jessysellshomes/card-value-backend/pkg/logger"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and upkeep loop",
		RunE:  runServe,
	}
}

// pipeline bundles the wired comp search components.
type pipeline struct {
	tokens    *ebay.OAuthTokenProvider
	analytics *ebay.AnalyticsClient
	orch      *comps.Orchestrator
	coord     *comps.Coordinator
}

// buildPipeline wires the eBay client stack and the comp pipeline from
// config. Shared between serve and the one-shot comps command.
func buildPipeline(cfg *config.Config, log *slog.Logger) *pipeline {
	tokens := ebay.NewOAuthTokenProvider(
		cfg.Ebay.AppID,
		cfg.Ebay.CertID,
		ebay.WithTokenURL(cfg.Ebay.TokenURL),
	)

	limiter := ebay.NewRateLimiter(
		cfg.Ebay.RateLimit.PerSecond,
		cfg.Ebay.RateLimit.Burst,
		cfg.Ebay.RateLimit.DailyLimit,
	)

	browse := ebay.NewBrowseClient(
		tokens,
		ebay.WithBrowseURL(cfg.Ebay.BrowseURL),
		ebay.WithMarketplace(cfg.Ebay.Marketplace),
		ebay.WithRateLimiter(limiter),
		ebay.WithBrowseHTTPClient(&http.Client{Timeout: cfg.Comps.SearchTimeout}),
	)

	analytics := ebay.NewAnalyticsClient(
		tokens,
		ebay.WithAnalyticsURL(cfg.Ebay.AnalyticsURL),
	)

	orch := comps.NewOrchestrator(
		browse,
		comps.WithLogger(log),
		comps.WithBroadenThreshold(cfg.Comps.BroadenThreshold),
		comps.WithTrimPct(cfg.Comps.TrimPct),
		comps.WithSampleCompLimit(cfg.Comps.SampleCompLimit),
	)

	coord := comps.NewCoordinator(
		orch,
		comps.WithMaxConcurrentBuckets(cfg.Comps.MaxConcurrentBuckets),
		comps.WithCoordinatorLogger(log),
	)

	return &pipeline{
		tokens:    tokens,
		analytics: analytics,
		orch:      orch,
		coord:     coord,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	p := buildPipeline(cfg, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.APIKey(cfg.Server.APIKey))

	health := handlers.NewHealthHandler()
	e.GET("/healthz", health.Healthz)
	e.GET("/health", health.Health)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	docs.RegisterRoutes(e)

	api := humaecho.New(e, huma.DefaultConfig("Card Value Backend", Version))
	handlers.RegisterCompsRoutes(api, handlers.NewCompsHandler(p.orch, p.coord))

	upkeep, err := engine.NewUpkeep(
		p.tokens,
		p.analytics,
		cfg.Schedule.TokenKeepwarmInterval,
		cfg.Schedule.QuotaLogInterval,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating upkeep: %w", err)
	}
	upkeep.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "environment", cfg.Ebay.Environment)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	<-upkeep.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
