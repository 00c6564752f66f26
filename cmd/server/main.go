package main

import (
	"net/http"
	"os"

	_ "foodforward/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"foodforward/internal/auth"
	"foodforward/internal/cache"
	"foodforward/internal/config"
	"foodforward/internal/db"
	"foodforward/internal/handler"
	"foodforward/internal/model"
	"foodforward/internal/repository"
	"foodforward/internal/router"
	"foodforward/internal/service"
)

// @title FoodForward API
// @version 1.0
// @description Food-donation coordination API: donors pledge surplus food, admins assign deliveries, couriers update delivery status.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logrus.Warn("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Delivery{},
			&model.Donation{},
			&model.Recipient{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logrus.Warnf("failed to drop table (may not exist): %v", err)
			}
		}
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Recipient{},
		&model.Donation{},
		&model.Delivery{},
	); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	donationRepo := repository.NewDonationRepository(gormDB)
	recipientRepo := repository.NewRecipientRepository(gormDB)
	deliveryRepo := repository.NewDeliveryRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	donationService := service.NewDonationService(donationRepo, userRepo, cacheClient)
	deliveryService := service.NewDeliveryService(deliveryRepo, userRepo, recipientRepo, cacheClient)
	recipientService := service.NewRecipientService(recipientRepo, cacheClient)
	dashboardService := service.NewDashboardService(donationRepo, deliveryRepo, userRepo, recipientRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	donorHandler := handler.NewDonorHandler(donationService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	adminHandler := handler.NewAdminHandler(deliveryService, recipientService, dashboardService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		donorHandler,
		deliveryHandler,
		adminHandler,
		dashboardHandler,
	)

	addr := ":" + cfg.ServerPort
	logrus.Infof("listening on %s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("server start: %v", err)
	}
}
