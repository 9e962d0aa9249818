// Command server runs the newsletter HTTP service: subscriber signup with
// double opt-in and authenticated issue broadcasting.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/newsletter/internal/api"
	"github.com/ignite/newsletter/internal/auth"
	"github.com/ignite/newsletter/internal/config"
	"github.com/ignite/newsletter/internal/mailer"
	"github.com/ignite/newsletter/internal/pkg/logger"
	"github.com/ignite/newsletter/internal/pkg/workerpool"
	"github.com/ignite/newsletter/internal/repository/postgres"
	"github.com/ignite/newsletter/internal/service/newsletter"
	"github.com/ignite/newsletter/internal/service/subscription"
)

// checkPortAvailable verifies that the target port is not already in use,
// so a stale process shows up as a clear startup failure.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	configPath := "config/config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	logger.SetRedactPII(cfg.Logging.RedactPII)

	if err := checkPortAvailable(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", cfg.Server.Port)

	// Database
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Minute)
	if err := db.Ping(); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	log.Println("Database connected")

	repo := postgres.NewSubscriberRepo(db)

	// Mail transport: SES when credentials are configured, log-only otherwise.
	var mail mailer.Client
	if cfg.Email.AccessKey != "" && cfg.Email.SecretKey != "" {
		sesClient, err := mailer.NewSESClient(context.Background(),
			cfg.Email.AccessKey, cfg.Email.SecretKey, cfg.Email.Region,
			cfg.Email.Sender, time.Duration(cfg.Email.TimeoutSeconds)*time.Second)
		if err != nil {
			log.Fatalf("Failed to initialize SES client: %v", err)
		}
		mail = sesClient
		log.Printf("SES mail client initialized (region %s, sender %s)", cfg.Email.Region, cfg.Email.Sender)
	} else {
		mail = mailer.NewLogClient()
		log.Println("No SES credentials configured — using log-only mail client")
	}

	// Optional Redis for signup rate limiting.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Invalid redis url: %v", err)
		}
		redisClient = redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed (%s): %v — rate limiting disabled", cfg.Redis.URL, err)
			redisClient = nil
		} else {
			log.Printf("Redis connected: %s (signup rate limiting enabled)", cfg.Redis.URL)
		}
		cancel()
	}

	pool := workerpool.New(cfg.Auth.WorkerPoolSize)
	defer pool.Close()

	server := api.NewServer(
		subscription.NewService(repo, mail, cfg.Server.BaseURL),
		newsletter.NewService(repo, mail),
		auth.NewValidator(repo, pool),
		api.Options{
			DB:             db,
			Redis:          redisClient,
			SubscribeLimit: cfg.Redis.SubscribeLimit,
		},
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := cfg.Server.Addr()
		log.Printf("Starting server on %s (base url %s)", addr, cfg.Server.BaseURL)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
