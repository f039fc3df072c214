package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/gemini"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/memory"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/postgres"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/redis"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/sqlite"
	"github.com/YelzhanWeb/goodplatters/internal/adapter/telegram"
	"github.com/YelzhanWeb/goodplatters/internal/app/auth"
	"github.com/YelzhanWeb/goodplatters/internal/app/booking"
	"github.com/YelzhanWeb/goodplatters/internal/app/content"
	"github.com/YelzhanWeb/goodplatters/internal/app/suggest"
	"github.com/YelzhanWeb/goodplatters/internal/config"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"

	amqpAdapter "github.com/YelzhanWeb/goodplatters/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/goodplatters/internal/adapter/http"
)

func main() {
	// Parse command-line flags
	mode := flag.String("mode", "", "Service mode: site, notification-subscriber, migrate")
	configPath := flag.String("config", "config.yaml", "Path to the yaml config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	prefetch := flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port > 0 {
		cfg.HTTP.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lgr := logger.New(*mode, cfg.App.LogLevel)

	switch *mode {
	case "site":
		runSite(ctx, cfg, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, cfg, lgr, *prefetch)

	case "migrate":
		runMigrate(ctx, cfg, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

// openStore connects the configured record store and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := postgres.Connect(ctx, postgres.DSN(cfg.Database))
		if err != nil {
			return nil, err
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		applied, err := postgres.Migrate(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		lgr.Info("migrations_applied", "Database migrations applied", "startup", map[string]interface{}{
			"applied": applied,
		})
		return postgres.NewStore(db), nil

	default:
		store, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		lgr.Info("db_connected", "Opened SQLite database", "startup", map[string]interface{}{
			"path": cfg.Store.SQLitePath,
		})
		return store, nil
	}
}

func openSessions(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.SessionStore, interfaces.LoginThrottle, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return memory.NewSessionStore(), memory.NewLoginThrottle(), func() {}, nil
	}

	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	lgr.Info("redis_connected", "Connected to Redis", "startup", map[string]interface{}{
		"addr": cfg.Redis.Addr,
	})
	return redis.NewSessionStore(client), redis.NewLoginThrottle(client), func() { _ = client.Close() }, nil
}

func runSite(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	store, err := openStore(ctx, cfg, lgr)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	sessions, throttle, closeSessions, err := openSessions(ctx, cfg, lgr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer closeSessions()

	// Initialize messaging
	var publisher interfaces.EventPublisher
	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()

		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
		publisher = rabbitmq.NewPublisher(mqConn)
	}

	var generator interfaces.TextGenerator
	if cfg.Gemini.APIKey != "" {
		g, err := gemini.NewGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			lgr.Error("gemini_unavailable", "Text suggestions fall back to fixed copy", "startup", nil, err)
		} else {
			generator = g
		}
	}

	// Initialize services
	suggestions := suggest.NewService(generator, lgr)
	contentService := content.NewService(store, suggestions, lgr)
	bookingService := booking.NewService(store, publisher, suggestions, lgr)
	authService := auth.NewService(store.Values(), sessions, throttle, cfg.Session.TTL, lgr)

	// first load writes the default content before any edit can land
	if _, err := contentService.Load(ctx); err != nil {
		log.Fatalf("Failed to load site content: %v", err)
	}

	handler := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Content:    contentService,
		Booking:    bookingService,
		Auth:       authService,
		Health:     store,
		SessionTTL: cfg.Session.TTL,
		Logger:     lgr,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Site started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
		"app":      cfg.App.Name,
		"port":     cfg.HTTP.Port,
		"store":    cfg.Store.Driver,
		"sessions": cfg.Session.Backend,
		"events":   publisher != nil,
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		lgr.Info("shutdown_initiated", "Shutting down site", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger, prefetch int) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	var notifier interfaces.Notifier
	if cfg.Telegram.Token != "" {
		n, err := telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatalf("Failed to connect to Telegram: %v", err)
		}
		notifier = n
	}

	consumer := rabbitmq.NewConsumer(mqConn, prefetch, lgr)
	notificationHandler := amqpAdapter.NewNotificationHandler(notifier, lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", map[string]interface{}{
		"telegram": notifier != nil,
		"prefetch": prefetch,
	})

	if err := consumer.ConsumeEvents(ctx, notificationHandler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		lgr.Error("consumer_error", "Error consuming site events", "runtime", nil, err)
	}

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}

func runMigrate(ctx context.Context, cfg *config.Config, lgr logger.Logger) {
	store, err := openStore(ctx, cfg, lgr)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	lgr.Info("migrations_done", "Schema is up to date", "startup", map[string]interface{}{
		"store": cfg.Store.Driver,
	})
}
