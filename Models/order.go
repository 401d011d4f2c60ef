package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleOrderHeader struct {
	gorm.Model
	OrderNo        string          `json:"order_no" gorm:"size:40;not null;uniqueIndex"`
	OrderDate      time.Time       `json:"order_date" gorm:"not null;index"`
	CustomerID     uint            `json:"customer_id" gorm:"not null;index"`
	BranchID       *uint           `json:"branch_id" gorm:"index"`
	RouteID        *uint           `json:"route_id" gorm:"index"`
	FieldStaffID   *uint           `json:"field_staff_id" gorm:"index"`
	OrderStatus    string          `json:"order_status" gorm:"size:30;not null;default:confirmed"`
	OrderType      string          `json:"order_type" gorm:"size:30;not null;default:regular"`
	Transport      string          `json:"mode_of_transport" gorm:"size:100"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,4);default:0"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(20,4);default:0"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:decimal(20,4);default:0"`
	NetAmount      decimal.Decimal `json:"net_amount" gorm:"type:decimal(20,4);default:0"`
	PaymentTerms   string          `json:"payment_terms" gorm:"size:100"`
	Notes          string          `json:"notes" gorm:"type:text"`
	CreatedBy      *uint           `json:"created_by" gorm:"index"`

	Customer   Customer          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Branch     *Branch           `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Route      *Route            `json:"route,omitempty" gorm:"foreignKey:RouteID"`
	FieldStaff *User             `json:"field_staff,omitempty" gorm:"foreignKey:FieldStaffID"`
	Details    []SaleOrderDetail `json:"details,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type SaleOrderDetail struct {
	gorm.Model
	OrderID            uint            `json:"order_id" gorm:"not null;index"`
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
	Notes              string          `json:"notes" gorm:"type:text"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// OrderLineRequest carries the raw inputs of one line. Amounts are always
// recomputed server side; client-sent totals are ignored.
type OrderLineRequest struct {
	ProductID          uint            `json:"product_id" validate:"required"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal `json:"tax_percentage"`
	Notes              string          `json:"notes"`
}

type OrderRequest struct {
	OrderDate    string             `json:"order_date" validate:"required"`
	CustomerID   uint               `json:"customer_id" validate:"required"`
	BranchID     *uint              `json:"branch_id"`
	OrderType    string             `json:"order_type"`
	PaymentTerms string             `json:"payment_terms"`
	Transport    string             `json:"mode_of_transport"`
	Lines        []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}
