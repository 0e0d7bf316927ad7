package handlers

import (
	"time"

	"github.com/darickquinto0629/ulevha/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthHandler serves the root banner and the health check
type HealthHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg}
}

// Root returns a short service banner
// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "ulevha-registry-api",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// Health reports liveness and database connectivity
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if err := config.HealthCheck(h.db); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unhealthy",
			"database": "down",
			"time":     time.Now().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "up",
		"time":     time.Now().Format(time.RFC3339),
	})
}
