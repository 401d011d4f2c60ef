package Models

import (
	"gorm.io/gorm"
)

type Company struct {
	gorm.Model
	CompanyName string `json:"company_name" gorm:"size:255;not null;uniqueIndex"`
	Address     string `json:"address" gorm:"type:text"`
	City        string `json:"city" gorm:"size:100"`
	State       string `json:"state" gorm:"size:100"`
	GstNo       string `json:"gst_no" gorm:"size:30"`
	Phone       string `json:"phone" gorm:"size:20"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`
}

// Branch is an operating location. Branches are deactivated, never removed,
// since stock records and documents keep pointing at them.
type Branch struct {
	gorm.Model
	CompanyID  *uint  `json:"company_id" gorm:"index"`
	BranchCode string `json:"branch_code" gorm:"size:30;not null;uniqueIndex"`
	BranchName string `json:"branch_name" gorm:"size:255;not null;index"`
	Address    string `json:"address" gorm:"type:text"`
	City       string `json:"city" gorm:"size:100"`
	State      string `json:"state" gorm:"size:100"`
	Phone      string `json:"phone" gorm:"size:20"`
	IsActive   bool   `json:"is_active" gorm:"not null;default:true"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}

type BranchRequest struct {
	CompanyID  *uint  `json:"company_id"`
	BranchCode string `json:"branch_code" validate:"required"`
	BranchName string `json:"branch_name" validate:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"is_active"`
}
