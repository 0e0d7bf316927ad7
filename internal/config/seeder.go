package config

import (
	"errors"
	"log"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedRoles inserts the two fixed roles if absent. Runs on every boot.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full system access"},
		{Name: models.RoleStaff, Description: "Staff member with limited access"},
	}

	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&role).Error; err != nil {
					return err
				}
				log.Printf("   Created role: %s", role.Name)
				continue
			}
			return err
		}
	}
	return nil
}

// SeedBootstrapAdmin creates the initial admin account when ADMIN_EMAIL
// and ADMIN_PASSWORD are configured and the email is not taken yet.
func SeedBootstrapAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.Admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hashed, err := password.Hash(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: hashed,
		RoleID:   adminRole.ID,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Bootstrap admin created: %s", admin.Email)
	return nil
}
