package routes

import (
	"github.com/darickquinto0629/ulevha/internal/adapters/http/handlers"
	"github.com/darickquinto0629/ulevha/internal/adapters/http/middleware"
	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/repositories"
	"github.com/darickquinto0629/ulevha/internal/config"
	"github.com/darickquinto0629/ulevha/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	residentRepo := repositories.NewResidentRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo)
	authService := services.NewAuthService(userRepo, roleRepo, auditService, cfg)
	userService := services.NewUserService(userRepo, roleRepo, auditService)
	residentService := services.NewResidentService(residentRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	residentHandler := handlers.NewResidentHandler(residentService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api")

	// Auth routes
	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, authService)

	// User management routes (authenticated)
	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(authService))
	setupUserRoutes(userRoutes, userHandler)

	// Resident registry routes (authenticated)
	residentRoutes := api.Group("/residents")
	residentRoutes.Use(middleware.AuthMiddleware(authService))
	setupResidentRoutes(residentRoutes, residentHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, authService *services.AuthService) {
	// Public routes, behind the stricter auth limiter
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)

	// Protected routes
	router.Get("/verify", middleware.AuthMiddleware(authService), handler.Verify)
}

// setupUserRoutes configures operator account routes. List, create and
// delete are admin only; read and update allow self-service and the
// handler enforces ownership.
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", middleware.AdminOnly(), handler.List)
	router.Post("/", middleware.AdminOnly(), handler.Create)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}

// setupResidentRoutes configures resident registry routes. Static paths
// are registered before the :id parameter so /stats and /search do not
// match as ids.
func setupResidentRoutes(router fiber.Router, handler *handlers.ResidentHandler) {
	router.Get("/stats", handler.Stats)
	router.Get("/search", handler.Search)
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", middleware.AdminOnly(), handler.Delete)
}
