package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/parfumdelite/backend/config"
	"github.com/parfumdelite/backend/internal/auth"
	handler "github.com/parfumdelite/backend/internal/handler/http"
	"github.com/parfumdelite/backend/internal/middleware"
	"github.com/parfumdelite/backend/internal/notification"
	"github.com/parfumdelite/backend/internal/repository"
	"github.com/parfumdelite/backend/internal/repository/mongodb"
	"github.com/parfumdelite/backend/internal/service"
	"github.com/parfumdelite/backend/internal/worker"
	"go.uber.org/zap"
)

const notificationQueueSize = 64

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close(ctx)

	if err := db.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Error creating indexes", zap.Error(err))
	}

	token := auth.NewAuthToken([]byte(cfg.JWTSecret))

	// notification dispatcher
	var notifier notification.Notifier
	if cfg.SMTPHost != "" {
		notifier = notification.NewSMTP(notification.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		logger.Warn("SMTP is not configured, notifications go to the log")
		notifier = notification.NewLog(logger)
	}

	dispatcher := worker.NewDispatcher(notifier, logger, notificationQueueSize)
	go dispatcher.Run(ctx)

	// dependency injection
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := service.NewAuthService(userRepo, token, dispatcher)
	authHandler := handler.NewAuthHandler(authService)

	orderService := service.NewOrderService(orderRepo, userRepo, dispatcher, logger)
	orderHandler := handler.NewOrderHandler(orderService)
	driverHandler := handler.NewDriverHandler(orderService)

	adminService := service.NewAdminService(userRepo, orderRepo)
	adminHandler := handler.NewAdminHandler(adminService)

	// promote the configured bootstrap account
	if cfg.SuperAdminEmail != "" {
		promoted, err := service.PromoteSuperAdmin(ctx, userRepo, cfg.SuperAdminEmail)
		if err != nil {
			logger.Fatal("Error promoting super admin", zap.Error(err))
		}
		if promoted {
			logger.Info("Super admin promoted", zap.String("email", cfg.SuperAdminEmail))
		} else {
			logger.Warn("Super admin account not found", zap.String("email", cfg.SuperAdminEmail))
		}
	}

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Post("/api/auth/register", authHandler.Register())
	router.Post("/api/auth/login", authHandler.Login())
	router.Get("/api/auth/verify-email", authHandler.VerifyEmail())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token, userRepo))

		group.Post("/api/orders", orderHandler.CreateOrder())
		group.Get("/api/orders", orderHandler.ListOrders())

		group.Get("/api/driver/available", driverHandler.Available())
		group.Get("/api/driver/my-orders", driverHandler.MyOrders())
		group.Post("/api/driver/assign/{orderID}", driverHandler.Assign())
		group.Post("/api/driver/status/{orderID}", driverHandler.UpdateStatus())

		group.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Get("/api/admin/users", adminHandler.ListUsers())
			admin.Post("/api/admin/users", adminHandler.CreateUser())
			admin.Put("/api/admin/users/{userID}/role", adminHandler.UpdateUserRole())
			admin.Delete("/api/admin/users/{userID}", adminHandler.DeleteUser())
			admin.Get("/api/admin/active-deliveries", adminHandler.ActiveDeliveries())
		})
	})

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
