// Package routes defines the API routing configuration.
// It wires the repositories and services together and registers all HTTP
// routes with their middleware.
package routes

import (
	"tribute/internal/config"
	"tribute/internal/handlers"
	"tribute/internal/middleware"
	"tribute/internal/models"
	"tribute/internal/repositories"
	"tribute/internal/services/auth"
	"tribute/internal/services/token"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes and returns the ledger
// service so main can run the first-boot initialization.
func SetupRoutes(app *fiber.App) (token.Service, error) {
	// Initialize repositories
	ledgerRepo := repositories.NewCachedLedgerRepository(
		repositories.NewLedgerRepository(repositories.DB),
		repositories.CacheService,
	)
	stateRepo := repositories.NewStateRepository(repositories.DB)

	adminAddr, err := models.ParseAddress(config.GetEnv("ADMIN_ADDRESS", ""))
	if err != nil {
		return nil, err
	}

	// Initialize services
	authService := auth.NewService(adminAddr, config.GetEnv("ADMIN_SECRET_HASH", ""))
	tokenService := token.NewService(
		ledgerRepo,
		stateRepo,
		token.StaticAccessGate{Admin: adminAddr},
		token.LogSink{},
		&token.NoopMetricsCollector{},
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	adminHandler := handlers.NewAdminHandler(tokenService)

	api := app.Group("/api")

	api.Get("/health", handlers.HealthCheck)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/refresh", authHandler.Refresh)

	// Public reads
	api.Get("/info", tokenHandler.Info)
	api.Get("/balance/:address", tokenHandler.Balance)
	api.Get("/allowance/:owner/:spender", tokenHandler.Allowance)
	api.Get("/exempt/:address", tokenHandler.Exempt)

	// Authenticated value movement
	authed := api.Group("", middleware.Auth)
	authed.Post("/transfer", tokenHandler.Transfer)
	authed.Post("/transfer-from", tokenHandler.TransferFrom)
	authed.Post("/approve", tokenHandler.Approve)

	// Administrator operations
	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Post("/treasury", adminHandler.SetTreasury)
	admin.Post("/tax-fee", adminHandler.SetTaxFee)
	admin.Post("/exempt", adminHandler.SetFeeExempt)
	admin.Post("/halt", adminHandler.Halt)
	admin.Post("/resume", adminHandler.Resume)

	return tokenService, nil
}
