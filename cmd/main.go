package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"messbook/internal/db"
	"messbook/internal/handlers"
	"messbook/internal/logging"
	"messbook/internal/metrics"
	"messbook/internal/middleware"
	"messbook/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	logging.Setup()

	app := fiber.New()
	app.Use(middleware.RequestID)
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics)

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/messbook" // Default fallback
	}
	db.ConnectMongoDB(mongoURI, "messbook")

	// Optional S3-compatible store for frozen month reports
	storage.InitMinio()

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Auth routes
	auth := app.Group("/api/auth")
	auth.Post("/", handlers.AuthHandler)
	auth.Get("/me", middleware.AuthMiddleware, handlers.MeHandler)
	auth.Post("/change-password", middleware.AuthMiddleware, handlers.ChangePasswordHandler)

	// User administration, super only
	users := app.Group("/api/users", middleware.AuthMiddleware, middleware.SuperMiddleware)
	users.Get("/", handlers.ListUsersHandler)
	users.Post("/", handlers.CreateUserHandler)
	users.Put("/:id", handlers.UpdateUserHandler)

	// Ledger routes; writes are month-gated inside the handlers
	meals := app.Group("/api/meals", middleware.AuthMiddleware)
	meals.Get("/", handlers.ListMealsHandler)
	meals.Post("/", handlers.CreateMealsHandler)
	meals.Put("/:id", handlers.UpdateMealHandler)
	meals.Delete("/:id", handlers.DeleteMealHandler)

	groceries := app.Group("/api/groceries", middleware.AuthMiddleware)
	groceries.Get("/", handlers.ListGroceriesHandler)
	groceries.Post("/", handlers.CreateGroceryHandler)
	groceries.Put("/:id", handlers.UpdateGroceryHandler)
	groceries.Delete("/:id", handlers.DeleteGroceryHandler)

	expenses := app.Group("/api/expenses", middleware.AuthMiddleware)
	expenses.Get("/", handlers.ListExpensesHandler)
	expenses.Post("/", handlers.CreateExpenseHandler)
	expenses.Put("/:id", handlers.UpdateExpenseHandler)
	expenses.Delete("/:id", handlers.DeleteExpenseHandler)

	deposits := app.Group("/api/deposits", middleware.AuthMiddleware)
	deposits.Get("/", handlers.ListDepositsHandler)
	deposits.Post("/", handlers.CreateDepositHandler)
	deposits.Put("/:id", handlers.UpdateDepositHandler)
	deposits.Delete("/:id", handlers.DeleteDepositHandler)

	// Settings singleton
	settings := app.Group("/api/settings", middleware.AuthMiddleware)
	settings.Get("/", handlers.GetSettingsHandler)
	settings.Post("/", handlers.UpdateSettingsHandler)

	// Read-heavy summary views
	app.Get("/api/dashboard", middleware.AuthMiddleware, handlers.DashboardHandler)
	app.Get("/api/user/:memberId", middleware.AuthMiddleware, handlers.MemberProfileHandler)
	app.Get("/api/members", middleware.AuthMiddleware, handlers.MembersHandler)

	// Month report archive, super only
	reports := app.Group("/api/reports", middleware.AuthMiddleware, middleware.SuperMiddleware)
	reports.Post("/:month/archive", handlers.ArchiveReportHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	slog.Info("starting server", "port", port)
	if err := app.Listen(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
