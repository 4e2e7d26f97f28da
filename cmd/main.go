package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/memory"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/postgres"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/rabbitmq"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/redisstore"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/account"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/cart"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/catalog"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/checkout"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/app/reorder"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/config"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/domain"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/telemetry"

	amqpAdapter "github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/amqp"
	httpAdapter "github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/http"
)

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "api", "Service mode: api, notification-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	inMemory := flag.Bool("in-memory", false, "Use in-memory storage and a log-only publisher")
	flag.Parse()

	// Load configuration; a missing default config file falls back to defaults
	cfg := config.Default()
	if _, err := os.Stat(*configPath); err == nil {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else if *configPath != "config.yaml" {
		log.Fatalf("Failed to read config: %v", err)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if *inMemory {
		cfg.Catalog.Source = "memory"
	}

	ctx := context.Background()

	// Initialize logger
	lgr := logger.New(*mode)

	switch *mode {
	case "api":
		runAPI(ctx, cfg, lgr, *inMemory)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, lgr logger.Logger, inMemory bool) {
	// Initialize tracing
	tracing, err := telemetry.NewProvider("maestro-delivery-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			lgr.Error("tracing_shutdown_error", "Error shutting down tracer provider", "shutdown", nil, err)
		}
	}()

	// Initialize storage
	var (
		catalogRepo interfaces.CatalogRepository
		orderRepo   interfaces.OrderRepository
		userRepo    interfaces.UserRepository
		cartStore   interfaces.CartStore
		publisher   interfaces.MessagePublisher
	)

	if inMemory || cfg.Catalog.Source == "memory" {
		memCatalog := memory.NewCatalog(time.Duration(cfg.Simulation.NetworkDelayMS) * time.Millisecond)
		memory.SeedDemoCatalog(memCatalog)

		catalogRepo = memCatalog
		orderRepo = memory.NewOrderStore()
		userRepo = memory.NewUserStore()
		cartStore = memory.NewCartStore()
		publisher = memory.NewLogPublisher(lgr)

		lgr.Info("storage_ready", "Using in-memory storage with demo catalog", "startup", nil)
	} else {
		// Connect to PostgreSQL
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]any{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		// Connect to Redis for cart snapshots
		redisStore, err := redisstore.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()

		lgr.Info("redis_connected", "Connected to Redis", "startup", map[string]any{
			"addr": cfg.Redis.Addr,
		})

		// Connect to RabbitMQ
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()

		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]any{
			"host": cfg.RabbitMQ.Host,
		})

		catalogRepo = postgres.NewCatalogRepository(db)
		orderRepo = postgres.NewOrderRepository(db)
		userRepo = postgres.NewUserRepository(db)
		cartStore = redisStore
		publisher = rabbitmq.NewPublisher(mqConn)
	}

	// Initialize services
	carts := cart.NewManager(cartStore, lgr)
	catalogService := catalog.NewService(catalogRepo, lgr)
	accountService := account.NewService(userRepo, lgr)
	checkoutService := checkout.NewService(carts, orderRepo, userRepo, publisher, lgr, tracing.Tracer())
	reorderService := reorder.NewService(catalogRepo, lgr, tracing.Tracer(), reorder.Callbacks{
		OnSuccess: func(result domain.ReorderResult) {
			lgr.Info("reorder_succeeded", "Reorder completed", "", map[string]any{
				"items_added":       result.ItemsAdded,
				"unavailable_count": result.UnavailableCount,
			})
		},
		OnUnavailableItems: func(availability domain.AvailabilityCheckResult) {
			lgr.Warn("reorder_partial", "Some items are no longer available", "", map[string]any{
				"unavailable_count": len(availability.UnavailableItems),
			})
		},
		OnError: func(message string) {
			lgr.Warn("reorder_failed", message, "", nil)
		},
	})

	// Initialize HTTP handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Cart:     httpAdapter.NewCartHandler(carts, catalogService, lgr),
		Checkout: httpAdapter.NewCheckoutHandler(checkoutService, lgr),
		Reorder:  httpAdapter.NewReorderHandler(orderRepo, reorderService, carts, lgr),
		Catalog:  httpAdapter.NewCatalogHandler(catalogService, lgr),
		Account:  httpAdapter.NewAccountHandler(accountService, lgr),
		Logger:   lgr,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Delivery API started on port %d", cfg.HTTP.Port), "startup", map[string]any{
		"port":   cfg.HTTP.Port,
		"source": cfg.Catalog.Source,
	})

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down Delivery API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	// Connect to RabbitMQ
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	// Initialize consumer
	consumer := rabbitmq.NewConsumer(mqConn)

	// Initialize handler
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	// Start consuming notifications
	go func() {
		if err := consumer.ConsumeOrderNotifications(ctx, notificationHandler.HandleOrderPlaced); err != nil {
			lgr.Error("consumer_error", "Error consuming notifications", "runtime", nil, err)
		}
	}()

	// Wait for shutdown signal
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}
