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

	"github.com/cryptokey/dashboard-api/internal/application/dispatch"
	"github.com/cryptokey/dashboard-api/internal/application/reconcile"
	"github.com/cryptokey/dashboard-api/internal/config"
	"github.com/cryptokey/dashboard-api/internal/infrastructure/dynamo"
	"github.com/cryptokey/dashboard-api/internal/infrastructure/identity"
	jwtinfra "github.com/cryptokey/dashboard-api/internal/infrastructure/jwt"
	resendinfra "github.com/cryptokey/dashboard-api/internal/infrastructure/resend"
	smtpinfra "github.com/cryptokey/dashboard-api/internal/infrastructure/smtp"
	transporthttp "github.com/cryptokey/dashboard-api/internal/transport/http"
	"github.com/cryptokey/dashboard-api/internal/watch"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	emailLogRepo := dynamo.NewEmailLogRepo(dynamoClient, cfg.DynamoTables.EmailLog)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Mailer: Resend when a key is configured, SMTP otherwise (dev).
	var mailer dispatch.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = resendinfra.NewMailer(cfg)
	} else {
		log.Println("WARN: no Resend API key configured, falling back to SMTP")
		mailer = smtpinfra.NewMailer(cfg)
	}

	// Identity provider: hosted when a key is configured, local otherwise.
	var idProvider identity.Provider
	if cfg.IdentityAPIKey != "" {
		idProvider = identity.NewFirebaseProvider(cfg)
	} else {
		log.Println("WARN: no identity API key configured, using local credential store")
		idProvider = identity.NewLocalProvider(dynamo.NewCredentialRepo(dynamoClient, cfg.DynamoTables.Credentials))
	}

	deps := &transporthttp.Deps{
		UserRepo:         userRepo,
		EmailLogRepo:     emailLogRepo,
		Mailer:           mailer,
		IdentityProvider: idProvider,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// Reconciliation watcher: consumes user-record snapshots until shutdown.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	dispatchSvc := dispatch.NewService(mailer, userRepo, emailLogRepo)
	snapshots := watch.NewSubscription(userRepo, cfg.SnapshotInterval).Start(watchCtx)
	go reconcile.NewWatcher(dispatchSvc).Run(watchCtx, snapshots)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopWatch()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
