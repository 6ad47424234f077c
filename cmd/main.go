package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/VReis17/auth-service/config"
	"github.com/VReis17/auth-service/db"
	"github.com/VReis17/auth-service/internal/auth/domain"
	"github.com/VReis17/auth-service/internal/auth/handler"
	filerepo "github.com/VReis17/auth-service/internal/auth/repository/file"
	pgrepo "github.com/VReis17/auth-service/internal/auth/repository/postgres"
	"github.com/VReis17/auth-service/internal/auth/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var store domain.AccountStore
	if cfg.DBURL != "" {
		pool, err := db.NewPostgresPool(context.Background(), cfg.DBURL)
		if err != nil {
			logger.Error("failed to initialize database", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		store = pgrepo.NewPostgresRepository(pool)
	} else {
		store = filerepo.NewFileRepository(cfg.UsersFile)
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryHours)
	authService := service.NewAuthService(store, tokenService, cfg, logger)
	authHandler := handler.NewAuthHandler(authService, tokenService)

	app := fiber.New()
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	handler.RegisterRoutes(app, authHandler)

	logger.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
