package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Role names seeded at bootstrap. The two rows are immutable.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// EducationalAttainmentOthers is the sentinel value that makes
// educational_attainment_other a required field.
const EducationalAttainmentOthers = "Others please specify"

// DateLayout is the storage format for date_of_birth values
const DateLayout = "2006-01-02"

// Role represents roles table
type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:20;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// User represents users table (operator accounts).
// Users are hard-deleted; residents are soft-deleted. The asymmetry is
// deliberate and must not be unified.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	RoleID      uint      `gorm:"not null" json:"role_id"`
	Role        Role      `gorm:"foreignKey:RoleID" json:"-"`
	DateOfBirth string    `gorm:"size:10" json:"date_of_birth"`
	Gender      string    `gorm:"size:10" json:"gender"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:20" json:"phone"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.Name,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Address:     u.Address,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Resident represents residents table
type Resident struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	HouseholdNumber string `gorm:"size:50;not null;index" json:"household_number"`
	ResidentID      string `gorm:"uniqueIndex;size:20;not null" json:"resident_id"`
	PhilsysNumber   string `gorm:"size:50" json:"philsys_number"`
	FirstName       string `gorm:"size:100;not null" json:"first_name"`
	LastName        string `gorm:"size:100;not null" json:"last_name"`
	MiddleName      string `gorm:"size:100" json:"middle_name"`
	Gender          string `gorm:"size:10;not null" json:"gender"`
	DateOfBirth     string `gorm:"size:10;not null" json:"date_of_birth"`
	BirthPlace      string `gorm:"size:255" json:"birth_place"`
	// Age is stored redundantly for filtering; date_of_birth is the
	// source of truth and the stats endpoint always derives from it.
	Age                        int       `json:"age"`
	Address                    string    `gorm:"size:255;not null" json:"address"`
	ContactNumber              string    `gorm:"size:50" json:"contact_number"`
	CivilStatus                string    `gorm:"size:50" json:"civil_status"`
	Religion                   string    `gorm:"size:100" json:"religion"`
	EducationalAttainment      string    `gorm:"size:100" json:"educational_attainment"`
	EducationalAttainmentOther string    `gorm:"size:255" json:"educational_attainment_other"`
	IsActive                   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt                  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Resident) TableName() string {
	return "residents"
}

// ResidentSummary DTO returned by create
type ResidentSummary struct {
	ID              uint   `json:"id"`
	HouseholdNumber string `json:"household_number"`
	ResidentID      string `json:"resident_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Age             int    `json:"age"`
}

func (r *Resident) ToSummary() *ResidentSummary {
	return &ResidentSummary{
		ID:              r.ID,
		HouseholdNumber: r.HouseholdNumber,
		ResidentID:      r.ResidentID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Age:             r.Age,
	}
}

// Audit actions
const (
	ActionLogin       = "LOGIN"
	ActionRegister    = "REGISTER"
	ActionUserCreated = "USER_CREATED"
	ActionUserUpdated = "USER_UPDATED"
	ActionUserDeleted = "USER_DELETED"
)

// AuditLog represents audit_logs table. Rows are append-only; the
// application never updates or deletes them.
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	Description string    `gorm:"size:255" json:"description"`
	IPAddress   string    `gorm:"size:45" json:"ip_address"`
	UserAgent   string    `gorm:"size:255" json:"user_agent"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AgeAt returns whole calendar years between birth and now. The year
// difference is reduced by one when the birthday has not been reached yet.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// CalculateAge computes the age for a stored date_of_birth as of now.
// Malformed dates yield -1 so callers can validate before persisting.
func CalculateAge(dateOfBirth string, now time.Time) int {
	birth, err := ParseDate(dateOfBirth)
	if err != nil {
		return -1
	}
	return AgeAt(birth, now)
}

// FormatResidentID formats a numeric suffix as RES-NNN, zero-padded to a
// minimum width of 3. Values >= 1000 widen naturally.
func FormatResidentID(n int) string {
	return fmt.Sprintf("RES-%03d", n)
}

// ResidentIDNumber extracts the numeric suffix of a RES-NNN id.
// Returns 0 for ids that do not match the format.
func ResidentIDNumber(id string) int {
	if !strings.HasPrefix(id, "RES-") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, "RES-"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
