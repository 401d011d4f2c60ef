package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment modes accepted on collections. Cheque additionally requires number,
// date and bank.
const (
	PayModeCash   = "cash"
	PayModeCheque = "cheque"
	PayModeUPI    = "upi"
	PayModeNEFT   = "neft"
)

type Collection struct {
	gorm.Model
	CollectionNo     string          `json:"collection_no" gorm:"size:40;not null;uniqueIndex"`
	CollectionDate   time.Time       `json:"collection_date" gorm:"not null;index"`
	CustomerID       uint            `json:"customer_id" gorm:"not null;index"`
	BranchID         *uint           `json:"branch_id" gorm:"index"`
	RouteID          *uint           `json:"route_id" gorm:"index"`
	FieldStaffID     *uint           `json:"field_staff_id" gorm:"index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	PaymentMode      string          `json:"payment_mode" gorm:"size:20;not null;default:cash"`
	PaymentReference string          `json:"payment_reference" gorm:"size:100"`
	ChequeNo         string          `json:"cheque_no" gorm:"size:50"`
	ChequeDate       *time.Time      `json:"cheque_date"`
	BankName         string          `json:"bank_name" gorm:"size:255"`
	CollectionStatus string          `json:"collection_status" gorm:"size:30;not null;default:pending"`
	Notes            string          `json:"notes" gorm:"type:text"`
	CollectedBy      *uint           `json:"collected_by" gorm:"index"`
	ImageURL         string          `json:"image_url" gorm:"size:500"`
	ImageUploadedAt  *time.Time      `json:"image_uploaded_at"`

	Customer Customer         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Lines    []CollectionLine `json:"lines,omitempty" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// CollectionLine applies part of a collection against one invoice. Balance is
// derived per line only, never accumulated across collections.
type CollectionLine struct {
	gorm.Model
	CollectionID  uint            `json:"collection_id" gorm:"not null;index"`
	InvoiceNo     string          `json:"invoice_no" gorm:"size:40;not null"`
	InvoiceDate   *time.Time      `json:"invoice_date"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount" gorm:"type:decimal(20,4);default:0"`
	PaidAmount    decimal.Decimal `json:"paid_amount" gorm:"type:decimal(20,4);default:0"`
	BalanceAmount decimal.Decimal `json:"balance_amount" gorm:"type:decimal(20,4);default:0"`
	Operation     string          `json:"operation" gorm:"size:20;not null;default:subtract"`
	Remarks       string          `json:"remarks" gorm:"type:text"`
}

type CollectionLineRequest struct {
	InvoiceNo     string          `json:"invoice_no" validate:"required"`
	InvoiceDate   string          `json:"invoice_date"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	PaidAmount    decimal.Decimal `json:"received_amount"`
	Remarks       string          `json:"remarks"`
}

type CollectionRequest struct {
	CollectionDate   string                  `json:"collection_date" validate:"required"`
	CustomerID       uint                    `json:"customer_id" validate:"required"`
	BranchID         *uint                   `json:"branch_id"`
	Amount           decimal.Decimal         `json:"amount"`
	PaymentMode      string                  `json:"payment_mode" validate:"required,oneof=cash cheque upi neft"`
	PaymentReference string                  `json:"payment_reference"`
	ChequeNo         string                  `json:"cheque_no"`
	ChequeDate       string                  `json:"cheque_date"`
	BankName         string                  `json:"bank_name"`
	Notes            string                  `json:"notes"`
	Lines            []CollectionLineRequest `json:"lines" validate:"required,min=1,dive"`
}
