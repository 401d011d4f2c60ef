package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Brand struct {
	gorm.Model
	BrandCode string `json:"brand_code" gorm:"size:30;uniqueIndex"`
	BrandName string `json:"brand_name" gorm:"size:255;not null;index"`
	IsActive  bool   `json:"is_active" gorm:"not null;default:true"`
}

type Product struct {
	gorm.Model
	ProductCode     string          `json:"product_code" gorm:"size:30;not null;uniqueIndex"`
	ProductName     string          `json:"product_name" gorm:"size:255;not null;index"`
	BrandID         *uint           `json:"brand_id" gorm:"index"`
	Category        string          `json:"category" gorm:"size:100"`
	UnitOfMeasure   string          `json:"unit_of_measure" gorm:"size:30;not null;default:pcs"`
	HsnCode         string          `json:"hsn_code" gorm:"size:30"`
	GstRate         decimal.Decimal `json:"gst_rate" gorm:"type:decimal(20,4);default:0"`
	QtyInLtr        decimal.Decimal `json:"qty_in_ltr" gorm:"type:decimal(20,4);default:0"`
	Description     string          `json:"description" gorm:"type:text"`
	BulkUploadRefNo string          `json:"bulk_upload_ref" gorm:"size:30;index"`
	IsActive        bool            `json:"is_active" gorm:"not null;default:true"`

	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

// ProductPrice is a time-bounded price row. At most one row should be
// effective per (product, customer type, date); that is not enforced by a
// constraint, and lookups take the newest effective_from when rows overlap.
type ProductPrice struct {
	gorm.Model
	ProductID          uint            `json:"product_id" gorm:"not null;index"`
	CustomerType       string          `json:"customer_type" gorm:"size:30;not null;default:retail;index"`
	Price              decimal.Decimal `json:"price" gorm:"type:decimal(20,4);not null"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" gorm:"type:decimal(20,4);default:0"`
	EffectiveFrom      time.Time       `json:"effective_from" gorm:"not null;index"`
	EffectiveTo        *time.Time      `json:"effective_to"`
	IsActive           bool            `json:"is_active" gorm:"not null;default:true"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type ProductRequest struct {
	ProductCode   string          `json:"product_code" validate:"required"`
	ProductName   string          `json:"product_name" validate:"required"`
	BrandID       *uint           `json:"brand_id"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	HsnCode       string          `json:"hsn_code"`
	GstRate       decimal.Decimal `json:"gst_rate"`
	QtyInLtr      decimal.Decimal `json:"qty_in_ltr"`
	Description   string          `json:"description"`
	IsActive      bool            `json:"is_active"`
}

type ProductPriceRequest struct {
	ProductID          uint            `json:"product_id" validate:"required"`
	CustomerType       string          `json:"customer_type" validate:"required"`
	Price              decimal.Decimal `json:"price" validate:"required"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	EffectiveFrom      string          `json:"effective_from" validate:"required"`
	EffectiveTo        string          `json:"effective_to"`
	IsActive           bool            `json:"is_active"`
}

// EffectivePrice returns the price row in force for the product, customer
// type and date, or nil when no row matches. Overlapping rows resolve to the
// newest effective_from, mirroring how order entry always picked one.
func EffectivePrice(db *gorm.DB, productID uint, customerType string, date time.Time) (*ProductPrice, error) {
	var price ProductPrice
	err := db.Where("product_id = ? AND customer_type = ? AND is_active = ?", productID, customerType, true).
		Where("effective_from <= ?", date).
		Where("(effective_to IS NULL OR effective_to >= ?)", date).
		Order("effective_from DESC").
		Limit(1).
		First(&price).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}
