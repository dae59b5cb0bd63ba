// Package routes defines the API routing configuration.
// It builds the fiber application and maps every endpoint to its handler
// and middleware.
package routes

import (
	"context"
	"time"

	"btcwallet/internal/handlers"
	"btcwallet/internal/metrics"
	"btcwallet/internal/middleware"
	"btcwallet/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// Options carries everything the HTTP layer needs besides the core.
type Options struct {
	Metrics     *metrics.Collector
	Log         logrus.FieldLogger
	Health      map[string]func(context.Context) error
	CORSOrigins string
	// SignupRate caps POST /users per client IP per minute; 0 disables it.
	SignupRate int
}

// NewApp returns a fiber application with the global middleware installed
// and every route registered.
func NewApp(core *services.Core, opts Options) *fiber.App {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	formatter := handlers.NewErrorFormatter(opts.Log)
	app := fiber.New(fiber.Config{
		// request values end up stored in the memory backend
		Immutable:    true,
		ErrorHandler: formatter.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-API-Key, X-Admin-Key",
		AllowMethods: "GET,POST,HEAD",
	}))
	app.Use(middleware.RequestLogger(opts.Log))
	if opts.Metrics != nil {
		app.Use(middleware.Metrics(opts.Metrics))
	}

	SetupRoutes(app, core, formatter, opts)
	return app
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, core *services.Core, formatter *handlers.ErrorFormatter, opts Options) {
	userHandler := handlers.NewUserHandler(core.Users, formatter)
	walletHandler := handlers.NewWalletHandler(core.Wallets, formatter)
	transactionHandler := handlers.NewTransactionHandler(core.Transactions, formatter)
	adminHandler := handlers.NewAdminHandler(core.Admin, formatter)

	checks := make(map[string]handlers.HealthChecker, len(opts.Health))
	for name, check := range opts.Health {
		checks[name] = check
	}
	healthHandler := handlers.NewHealthHandler(checks)

	app.Get("/health", healthHandler.HealthCheck)
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(opts.Metrics.Handler()))
	}

	// Registration
	signup := []fiber.Handler{}
	if opts.SignupRate > 0 {
		signup = append(signup, limiter.New(limiter.Config{
			Max:        opts.SignupRate,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    "TOO_MANY_REQUESTS",
					"message": "Too many requests. Please try again later.",
				})
			},
		}))
	}
	app.Post("/users", append(signup, userHandler.CreateUser)...)

	// Wallets
	wallets := app.Group("/wallets", middleware.RequireAPIKey())
	wallets.Post("/", walletHandler.CreateWallet)
	wallets.Get("/:address", walletHandler.GetWallet)
	wallets.Get("/:address/transactions", transactionHandler.GetWalletTransactions)

	// Transactions
	transactions := app.Group("/transactions", middleware.RequireAPIKey())
	transactions.Post("/", transactionHandler.MakeTransaction)
	transactions.Get("/", transactionHandler.GetTransactions)

	// Admin
	app.Get("/statistics", middleware.RequireAdminKey(), adminHandler.GetStatistics)
}
