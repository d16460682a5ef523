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

	"github.com/joho/godotenv"
	"github.com/phone-auth-api/internal/application/verification"
	"github.com/phone-auth-api/internal/config"
	"github.com/phone-auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/phone-auth-api/internal/infrastructure/jwt"
	"github.com/phone-auth-api/internal/infrastructure/sns"
	transporthttp "github.com/phone-auth-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Identity tokens are the product of this service — no fallback.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// SNS code sender (optional — issuance still works without delivery).
	var codeSender sns.CodeSender
	if sender, err := sns.NewSender(cfg); err == nil {
		codeSender = sender
	} else {
		log.Printf("WARN: SNS sender not available, SMS delivery disabled: %v", err)
		codeSender = sns.NewNoopSender()
	}

	verificationRepo := dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications)

	deps := &transporthttp.Deps{
		VerificationRepo: verificationRepo,
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		CodeSender:       codeSender,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// Background sweeper removes abandoned expired verification records.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeper := verification.NewSweeper(verificationRepo, cfg.SweepInterval)
	go sweeper.Run(sweepCtx)

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
	stopSweeper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
