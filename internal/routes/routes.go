// Package routes wires repositories, services and handlers onto the fiber app.
package routes

import (
	"kolo/internal/handlers"
	"kolo/internal/middleware"
	"kolo/internal/repositories"
	"kolo/internal/repositories/cache"
	"kolo/internal/services/auth"
	"kolo/internal/services/fee"
	"kolo/internal/services/pin"
	"kolo/internal/services/review"
	"kolo/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes builds the full dependency graph and registers every route.
func SetupRoutes(app *fiber.App, db *gorm.DB, redisClient *redis.Client) {
	// Repositories
	walletRepo := repositories.NewWalletRepository(db)
	userRepo := repositories.NewUserRepository(db)
	methodRepo := repositories.NewPaymentMethodRepository(db)

	// Caches
	walletCache := cache.NewWalletCache(redisClient)
	attempts := cache.NewAttemptStore(redisClient)

	// Services
	authService := auth.NewService(userRepo)
	pinService := pin.NewService(walletRepo, attempts)
	feeCalc := fee.NewCalculator(fee.PolicyFromEnv())
	walletService := wallet.NewService(walletRepo, walletCache, pinService, feeCalc, methodRepo)
	reviewService := review.NewService(walletRepo, walletCache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService, pinService)
	txHandler := handlers.NewTransactionHandler(walletService)
	adminHandler := handlers.NewAdminHandler(walletService, reviewService)
	methodHandler := handlers.NewPaymentMethodHandler(methodRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	authenticated := api.Group("/", middleware.Auth)
	authenticated.Get("/payment-methods", methodHandler.ListEnabled)

	walletGroup := authenticated.Group("/wallet")
	walletGroup.Get("/", walletHandler.GetWallet)
	walletGroup.Post("/pin", walletHandler.SetPIN)
	walletGroup.Post("/deposits", walletHandler.RequestDeposit)
	walletGroup.Post("/withdrawals", walletHandler.RequestWithdrawal)
	walletGroup.Post("/pay", walletHandler.Pay)

	authenticated.Get("/transactions", txHandler.ListMine)

	admin := authenticated.Group("/admin", middleware.AdminOnly)
	admin.Get("/transactions/pending", adminHandler.ListPending)
	admin.Get("/transactions", adminHandler.ListTransactions)
	admin.Post("/transactions/:id/validate", adminHandler.Validate)
	admin.Post("/transactions/:id/reject", adminHandler.Reject)
}
