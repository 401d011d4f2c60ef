package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice payment statuses. Overdue is stamped by the nightly sweep, not at
// entry time.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

type InvoiceHeader struct {
	gorm.Model
	InvoiceNo      string          `json:"invoice_no" gorm:"size:40;not null;index"`
	InvoiceDate    time.Time       `json:"invoice_date" gorm:"not null;index"`
	OrderID        *uint           `json:"order_id" gorm:"index"`
	OrderNo        string          `json:"order_no" gorm:"size:40"`
	CustomerID     uint            `json:"customer_id" gorm:"not null;index"`
	BranchID       *uint           `json:"branch_id" gorm:"index"`
	RouteID        *uint           `json:"route_id" gorm:"index"`
	FieldStaffID   *uint           `json:"field_staff_id" gorm:"index"`
	InvoiceStatus  string          `json:"invoice_status" gorm:"size:30;not null;default:confirmed"`
	PaymentStatus  string          `json:"payment_status" gorm:"size:30;not null;default:pending"`
	DueDate        *time.Time      `json:"due_date"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,4);default:0"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(20,4);default:0"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:decimal(20,4);default:0"`
	NetAmount      decimal.Decimal `json:"net_amount" gorm:"type:decimal(20,4);default:0"`
	CreatedBy      *uint           `json:"created_by" gorm:"index"`

	Customer   Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Branch     *Branch         `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Route      *Route          `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	FieldStaff *User           `json:"field_staff,omitempty" gorm:"foreignKey:FieldStaffID"`
	Details    []InvoiceDetail `json:"details,omitempty" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

type InvoiceDetail struct {
	gorm.Model
	InvoiceID          uint            `json:"invoice_id" gorm:"not null;index"`
	LineNo             int             `json:"line_no" gorm:"not null;default:0"`
	ProductID          uint            `json:"product_id" gorm:"not null;index"`
	BrandID            *uint           `json:"brand_id" gorm:"index"`
	Quantity           decimal.Decimal `json:"quantity" gorm:"type:decimal(20,4);default:0"`
	UnitPrice          decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,4);default:0"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" gorm:"type:decimal(20,4);default:0"`
	DiscountAmount     decimal.Decimal `json:"discount_amount" gorm:"type:decimal(20,4);default:0"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage" gorm:"type:decimal(20,4);default:0"`
	TaxAmount          decimal.Decimal `json:"tax_amount" gorm:"type:decimal(20,4);default:0"`
	LineTotal          decimal.Decimal `json:"line_total" gorm:"type:decimal(20,4);default:0"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type InvoiceRequest struct {
	InvoiceDate string             `json:"invoice_date" validate:"required"`
	OrderID     *uint              `json:"order_id"`
	CustomerID  uint               `json:"customer_id" validate:"required"`
	BranchID    *uint              `json:"branch_id"`
	DueDate     string             `json:"due_date"`
	Lines       []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}
