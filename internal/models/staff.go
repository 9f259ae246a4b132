package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role represents a staff role
type Role string

const (
	RoleNurse         Role = "NURSE"
	RoleDoctor        Role = "DOCTOR"
	RoleBilling       Role = "BILLING"
	RoleAdmin         Role = "ADMIN"
	RoleLabTech       Role = "LAB_TECH"
	RoleRadiologyTech Role = "RADIOLOGY_TECH"
	RoleDentalTech    Role = "DENTAL_TECH"
)

// Staff represents a staff member (nurse, doctor, billing officer, admin, technician)
type Staff struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"fullname"`
	Role         Role      `gorm:"type:varchar(30);not null;index" json:"role"`
	PasswordHash string    `gorm:"type:text" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Staff) TableName() string {
	return "staff"
}

// BeforeCreate hook
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// AuthClaims represents the JWT claims issued at login
type AuthClaims struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	FullName string    `json:"fullname"`
	jwt.RegisteredClaims
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token plus display fields
type LoginResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	FullName string    `json:"fullname"`
}
