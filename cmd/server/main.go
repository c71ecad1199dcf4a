package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"waterworks-backend/internal/config"
	"waterworks-backend/internal/db"
	"waterworks-backend/internal/handler"
	"waterworks-backend/internal/metrics"
	"waterworks-backend/internal/repository"
	"waterworks-backend/internal/server"
	"waterworks-backend/internal/service"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Firebase Auth (optional)
	var firebaseAuth *auth.Client
	if cfg.FirebaseProjectID != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOptions(cfg)...)
		if err != nil {
			logger.Error("failed to init firebase app", "err", err)
			os.Exit(1)
		}
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Error("failed to init firebase auth", "err", err)
			os.Exit(1)
		}
		firebaseAuth = client
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	consumerRepo := repository.ConsumerRepository{DB: pg}
	recordRepo := repository.BillingRecordRepository{DB: pg}
	locationRepo := repository.LocationRepository{DB: pg}

	if err := locationRepo.SeedDefaults(ctx); err != nil {
		logger.Error("failed to seed locations", "err", err)
		os.Exit(1)
	}

	m := metrics.New()

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger, FirebaseAuth: firebaseAuth}
	roleSvc := service.RoleService{Users: userRepo, Logger: logger}
	consumerSvc := service.ConsumerService{Consumers: consumerRepo, Logger: logger}
	paymentSvc := service.PaymentService{Consumers: consumerRepo, Records: recordRepo, Logger: logger, Metrics: m}
	importSvc := service.ImportService{Identity: consumerSvc, Records: recordRepo, Logger: logger, Metrics: m}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	consumerHandler := handler.ConsumerHandler{Service: consumerSvc, Records: recordRepo}
	recordHandler := handler.RecordHandler{Records: recordRepo}
	locationHandler := handler.LocationHandler{Repo: locationRepo}
	paymentHandler := handler.PaymentHandler{Service: paymentSvc}
	importHandler := handler.ImportHandler{Service: importSvc}
	userAdminHandler := handler.UserAdminHandler{Service: &authSvc, Users: userRepo}
	homeHandler := handler.HomeHandler{}

	router := server.NewRouter(cfg, logger, roleSvc,
		healthHandler, authHandler, consumerHandler, recordHandler,
		locationHandler, paymentHandler, importHandler, userAdminHandler,
		homeHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.Config) []option.ClientOption {
	if cfg.FirebaseCredFile == "" {
		return nil
	}

	cred := cfg.FirebaseCredFile
	// Allow inline JSON or base64-encoded JSON in env to avoid writing a file.
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
