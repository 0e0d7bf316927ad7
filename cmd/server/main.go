package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/darickquinto0629/ulevha/internal/adapters/http/middleware"
	"github.com/darickquinto0629/ulevha/internal/adapters/http/routes"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"
	"github.com/darickquinto0629/ulevha/internal/config"
	"github.com/darickquinto0629/ulevha/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/darickquinto0629/ulevha/docs" // Swagger docs
)

// @title Ulevha Registry API
// @version 1.0
// @description Household and resident registry backend for the homeowners association.

// @contact.name API Support

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed fixed roles and the optional bootstrap admin
	if err := config.SeedRoles(db); err != nil {
		log.Fatalf("❌ Failed to seed roles: %v", err)
	}
	if err := config.SeedBootstrapAdmin(db, cfg); err != nil {
		log.Printf("⚠️ Warning: Failed to seed bootstrap admin: %v", err)
	}

	// Start nightly age refresh (00:15 daily)
	ageRefresh := services.NewAgeRefreshService(repositories.NewResidentRepository(db))
	ageRefresh.Start()
	defer ageRefresh.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Ulevha Registry API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
