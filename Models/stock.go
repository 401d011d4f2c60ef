package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DailyStock is one branch/product quantity snapshot, loaded via bulk upload.
type DailyStock struct {
	gorm.Model
	BranchID     uint            `json:"branch_id" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null;index"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(20,4);default:0"`
	UploadedDate time.Time       `json:"uploaded_date" gorm:"not null;index"`
	UploadedBy   *uint           `json:"uploaded_by" gorm:"index"`

	Branch  Branch  `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// AgeWiseOutstanding is a receivables ageing snapshot per customer, loaded
// via bulk upload from the accounting system.
type AgeWiseOutstanding struct {
	gorm.Model
	AsOnDate      time.Time       `json:"as_on_date" gorm:"not null;index"`
	BranchID      uint            `json:"branch_id" gorm:"not null;index"`
	CustomerID    uint            `json:"customer_id" gorm:"not null;index"`
	DrAmount      decimal.Decimal `json:"dr_amount" gorm:"type:decimal(20,4);default:0"`
	CrAmount      decimal.Decimal `json:"cr_amount" gorm:"type:decimal(20,4);default:0"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(20,4);default:0"`
	LessThan45    decimal.Decimal `json:"less_than_45" gorm:"type:decimal(20,4);default:0"`
	GreaterThan45 decimal.Decimal `json:"greater_than_45" gorm:"type:decimal(20,4);default:0"`
	GreaterThan60 decimal.Decimal `json:"greater_than_60" gorm:"type:decimal(20,4);default:0"`
	GreaterThan90 decimal.Decimal `json:"greater_than_90" gorm:"type:decimal(20,4);default:0"`
	GreaterThan120 decimal.Decimal `json:"greater_than_120" gorm:"type:decimal(20,4);default:0"`
	UploadedBy    *uint           `json:"uploaded_by" gorm:"index"`

	Branch   Branch   `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}
