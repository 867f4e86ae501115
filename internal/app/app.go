package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/shopmobile/internal/backend"
	"github.com/utafrali/shopmobile/internal/config"
	"github.com/utafrali/shopmobile/internal/event"
	handler "github.com/utafrali/shopmobile/internal/handler/http"
	"github.com/utafrali/shopmobile/internal/service"
	"github.com/utafrali/shopmobile/pkg/health"
	"github.com/utafrali/shopmobile/pkg/httpclient"
	pkgkafka "github.com/utafrali/shopmobile/pkg/kafka"
	"github.com/utafrali/shopmobile/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.Environment = cfg.Environment

	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	// HTTP client toward the catalog/order backend, optionally wrapped in a
	// circuit breaker.
	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.BackendTimeout()
	client := httpclient.New(clientCfg)

	var doer backend.HTTPDoer = client
	if cfg.CircuitBreakerEnabled {
		doer = httpclient.NewCircuitBreakerClient(client, httpclient.DefaultCircuitBreakerConfig("backend"), logger)
	}

	backendClient := backend.NewClient(doer, cfg.BackendBaseURL, logger)

	// Kafka producer for activity events. When disabled, events are dropped.
	var producer *pkgkafka.Producer
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	eventProducer := event.NewProducer(producer, logger)

	// Build the dependency graph.
	catalogService := service.NewCatalogService(backendClient, logger, cfg.CategoryCacheTTL())
	cartService := service.NewCartService(eventProducer, logger, cfg.UserEmail)
	wishlistService := service.NewWishlistService(backendClient, eventProducer, logger, cfg.UserEmail)
	orderService := service.NewOrderService(backendClient, cartService, eventProducer, logger,
		cfg.UserEmail, cfg.ShippingAddress, cfg.PaymentMethod)

	// Warm the wishlist snapshot. A failure here only delays membership
	// knowledge until the first successful refresh.
	if err := wishlistService.Load(ctx); err != nil {
		logger.Warn("initial wishlist load failed", slog.String("error", err.Error()))
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("backend", backendClient.Ping)

	// HTTP router.
	storefrontHandler := handler.NewStorefrontHandler(catalogService, cartService, wishlistService, orderService, logger)
	router := handler.NewRouter(storefrontHandler, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
