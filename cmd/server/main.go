// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"tribute/internal/config"
	"tribute/internal/models"
	"tribute/internal/repositories"
	"tribute/internal/routes"
	"tribute/internal/services/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("connected to database")

	// Clear the redis cache on startup so stale balances never survive a
	// restart
	if repositories.CacheService != nil && config.GetBoolEnv("FLUSH_CACHE_ON_START", true) {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			log.Printf("failed to flush redis cache: %v", err)
		}
	}

	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("failed to close redis connection: %v", err)
			}
		}
	}()

	// Create Fiber app
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/transfer", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("TRANSFER_RATE_LIMIT", 60),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	tokenService, err := routes.SetupRoutes(app)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	if err := bootstrapLedger(tokenService); err != nil {
		log.Fatalf("Failed to bootstrap ledger: %v", err)
	}

	port := config.GetEnv("PORT", "8080")
	log.Printf("listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// bootstrapLedger loads the persisted ledger state, or on first boot
// initializes it from the environment: treasury, fee percent and the
// deployer receiving the initial supply.
func bootstrapLedger(svc token.Service) error {
	ctx := context.Background()
	err := svc.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, token.ErrNotInitialized) {
		return err
	}

	treasury, err := models.ParseAddress(config.GetEnv("TREASURY_ADDRESS", ""))
	if err != nil {
		return err
	}
	deployer, err := models.ParseAddress(config.GetEnv("DEPLOYER_ADDRESS", ""))
	if err != nil {
		return err
	}

	return svc.Initialize(ctx, token.InitParams{
		Name:       config.GetEnv("TOKEN_NAME", "Tribute"),
		Symbol:     config.GetEnv("TOKEN_SYMBOL", "TRB"),
		Treasury:   treasury,
		FeePercent: config.GetUint64Env("INITIAL_FEE_PERCENT", 10),
		Deployer:   deployer,
	})
}
