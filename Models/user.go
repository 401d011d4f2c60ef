package Models

import (
	"gorm.io/gorm"
)

// Roles accepted in User.Role.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleFieldStaff  = "field_staff"
	RoleCustomer    = "customer"
	RoleBackendUser = "backend_user"
)

type User struct {
	gorm.Model
	MobileNo     string `json:"mobile_no" gorm:"size:20;not null;uniqueIndex"`
	FullName     string `json:"full_name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"size:255"`
	PasswordHash []byte `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"size:30;not null;default:field_staff"`
	IsActive     bool   `json:"is_active" gorm:"not null;default:true"`
	// Set for role=customer accounts linked to a customer master record.
	CustomerID *uint `json:"customer_id,omitempty" gorm:"index"`
}

type LoginRequest struct {
	MobileNo string `json:"mobile_no" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterUserRequest struct {
	MobileNo string `json:"mobile_no" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin manager field_staff customer backend_user"`
	IsActive bool   `json:"is_active"`
}
