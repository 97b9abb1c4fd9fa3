package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"signalgate/configs"
	"signalgate/internal/adapter/telegram"
	"signalgate/internal/auth"
	"signalgate/internal/database"
	deliveryhttp "signalgate/internal/delivery/http"
	"signalgate/internal/domain"
	"signalgate/internal/infra"
	"signalgate/internal/repository"
	"signalgate/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Open the signal store (exclusive owner for the process lifetime)
	signalStore, err := store.Open(cfg.Gateway.StorePath)
	if err != nil {
		log.Fatalf("Failed to open signal store: %v", err)
	}
	initial, _ := signalStore.Count(ctx)
	log.Printf("[OK] Signal store opened at %s (%d records)", signalStore.Path(), initial)

	// Persistence collaborator: connected when DATABASE_URL is set,
	// otherwise the no-op variant
	users, commands := setupPersistence(ctx, cfg)

	// Register this gateway's identity row (no-op when unavailable)
	ensureServiceUser(ctx, users)

	// Telegram notifier (silently disabled when unconfigured)
	notifier := telegram.NewNotificationService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if notifier.Enabled() {
		log.Println("[OK] Telegram notifications enabled")
	} else {
		log.Println("WARNING: Telegram not configured, notifications disabled")
	}

	// Daily digest job (collaborator surface; the intake path itself has
	// no background work)
	var digest *infra.Digest
	if notifier.Enabled() {
		digest = infra.NewDigest(signalStore, notifier, cfg.Digest.Cron)
		if err := digest.Start(); err != nil {
			log.Fatalf("Failed to start digest scheduler: %v", err)
		}
		defer digest.Stop()
	}

	// Ops listener (Prometheus metrics + debug ping)
	opsAddr := fmt.Sprintf(":%s", cfg.Ops.MetricsPort)
	opsSrv := infra.NewOpsServer(opsAddr)
	log.Printf("[OK] Ops server listening on %s", opsAddr)

	// HTTP delivery
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	deliveryhttp.SetupRoutes(e, &deliveryhttp.RouterConfig{
		WebhookHandler: deliveryhttp.NewWebhookHandler(signalStore, commands, notifier),
		SignalHandler:  deliveryhttp.NewSignalHandler(signalStore, cfg.Gateway.MaxListLimit),
		Secret:         cfg.Gateway.Secret,
		Audience:       cfg.WebhookURL(),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Signal gateway starting on %s", addr)
	log.Printf("📊 Environment: %s", cfg.Server.Env)
	log.Printf("📡 Submission URL (token audience): %s", cfg.WebhookURL())
	if !auth.SecretConfigured(cfg.Gateway.Secret) {
		log.Println("WARNING: WEBHOOK_SECRET is the development placeholder")
	}
	log.Println("========================================")

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARNING: Ops server shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// setupPersistence selects the connected or unavailable persistence
// variant. A connection failure downgrades to unavailable with a warning
// rather than aborting: the store file, not the database, is the gateway's
// source of truth.
func setupPersistence(ctx context.Context, cfg *configs.Config) (domain.UserStore, domain.CommandLog) {
	if cfg.Database.URL == "" {
		log.Println("WARNING: DATABASE_URL not set, persistence collaborator unavailable")
		noop := repository.NewUnavailable()
		return noop, noop
	}

	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Printf("WARNING: Persistence unavailable: %v", err)
		noop := repository.NewUnavailable()
		return noop, noop
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Printf("WARNING: Migrations failed, persistence unavailable: %v", err)
		db.Close()
		noop := repository.NewUnavailable()
		return noop, noop
	}

	return repository.NewUserRepository(db), repository.NewCommandLogRepository(db)
}

// ensureServiceUser upserts the gateway's own identity row
func ensureServiceUser(ctx context.Context, users domain.UserStore) {
	now := time.Now().UTC()
	user := &domain.ServiceUser{
		ID:        uuid.New(),
		Name:      "signalgate",
		Role:      domain.RoleService,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := users.Upsert(ctx, user); err != nil {
		log.Printf("WARNING: Failed to register service user: %v", err)
		return
	}
}
