package models

import "gorm.io/gorm"

// AutoMigrate creates or updates all tables. Safe to run on every boot.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&AuditLog{},
		&Resident{},
	)
}
