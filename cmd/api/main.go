package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "sterkbouw_quotes/docs"
	"sterkbouw_quotes/internal/adapter/http/handlers"
	"sterkbouw_quotes/internal/adapter/http/routes"
	"sterkbouw_quotes/internal/adapter/persistence/repository"
	"sterkbouw_quotes/internal/config"
	"sterkbouw_quotes/internal/infrastructure/database"
	"sterkbouw_quotes/internal/infrastructure/notify"
	"sterkbouw_quotes/internal/infrastructure/render"
	"sterkbouw_quotes/internal/usecase"
	"sterkbouw_quotes/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Extra-Work Quote Service API
// @version         1.0
// @description     Quote lifecycle service for construction extra-work requests, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting extra-work quote service",
		zap.Int("port", cfg.Server.Port))

	ddb, err := database.ConnectDynamoDB(context.Background(), cfg.Dynamo)
	if err != nil {
		log.Fatal("failed to create dynamodb client", zap.Error(err))
	}

	quoteRepo := repository.NewQuoteDynamoRepository(ddb, cfg.Dynamo.QuotesTable, cfg.Dynamo.ApprovalsTable)
	workRequestRepo := repository.NewWorkRequestDynamoRepository(ddb, cfg.Dynamo.WorkRequestsTable)
	sequenceRepo := repository.NewQuoteSequenceDynamoRepository(ddb, cfg.Dynamo.CountersTable)
	auditRepo := repository.NewAuditDynamoRepository(ddb, cfg.Dynamo.AuditTable)

	renderer, err := render.NewHTTPRenderer(cfg.Renderer.BaseURL, cfg.Renderer.Timeout, log)
	if err != nil {
		log.Fatal("failed to configure document renderer", zap.Error(err))
	}
	notifier := notify.NewWebhookDispatcher(cfg.Notifier.WebhookURL, cfg.Notifier.Timeout, log)

	allocator := usecase.NewQuoteNumberAllocator(sequenceRepo)
	lifecycle := usecase.NewQuoteLifecycleUseCase(
		quoteRepo,
		workRequestRepo,
		allocator,
		renderer,
		notifier,
		auditRepo,
		usecase.QuotePolicy{
			VATRate:      cfg.Billing.VATRate,
			HourlyRate:   cfg.Billing.HourlyRate,
			ValidityDays: cfg.Billing.ValidityDays,
			Currency:     cfg.Billing.Currency,
		},
		cfg.Notifier.InternalRecipient,
		log,
	)

	quoteHandler := handlers.NewQuoteHandler(lifecycle)
	router := routes.NewRouter(log, quoteHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
