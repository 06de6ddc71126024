package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"taskhive/configs"
	v1 "taskhive/internal/api/v1"
	"taskhive/internal/api/v1/handlers"
	"taskhive/internal/middleware"
	"taskhive/internal/repository"
	"taskhive/pkg/database"
	"taskhive/pkg/logger"
	"taskhive/pkg/token"
)

func main() {
	cfg := configs.LoadConfig()

	logger.InitLoggers(cfg.LogDir)
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	repository.CreateTableIfNotExists(db)
	repository.SeedAdminUser(db, cfg.AdminEmail, cfg.AdminPassword)

	rdb := database.ConnectRedis(context.Background(), cfg)
	defer rdb.Close()
	logger.SystemLogger.Info("Redis connected")

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	h := handlers.New(db, rdb, tokens)
	auth := middleware.NewAuth(tokens, rdb)

	app := fiber.New()

	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	v1.RegisterRoutes(app, h, auth)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
