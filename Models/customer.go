package Models

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	CustomerCode    string   `json:"customer_code" gorm:"size:30;not null;uniqueIndex"`
	CustomerName    string   `json:"customer_name" gorm:"size:255;not null;index"`
	ShopName        string   `json:"shop_name" gorm:"size:255"`
	OwnerName       string   `json:"owner_name" gorm:"size:255"`
	CustomerType    string   `json:"customer_type" gorm:"size:30;not null;default:retail"`
	BillingAddress1 string   `json:"billing_address_1" gorm:"size:255"`
	BillingAddress2 string   `json:"billing_address_2" gorm:"size:255"`
	BillingAddress3 string   `json:"billing_address_3" gorm:"size:255"`
	BillingCity     string   `json:"billing_city" gorm:"size:100"`
	District        string   `json:"district" gorm:"size:100"`
	MobileNo        string   `json:"mobile_no" gorm:"size:20;index"`
	PhoneNo2        string   `json:"phone_no_2" gorm:"size:20"`
	GstNo           string   `json:"gst_no" gorm:"size:30"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ImageURL1       string   `json:"image_url_1" gorm:"size:500"`
	ImageURL2       string   `json:"image_url_2" gorm:"size:500"`
	ImageURL3       string   `json:"image_url_3" gorm:"size:500"`
	BulkUploadRefNo string   `json:"bulk_upload_ref" gorm:"size:30;index"`
	IsActive        bool     `json:"is_active" gorm:"not null;default:true"`
	CreatedBy       *uint    `json:"created_by" gorm:"index"`
}

type CustomerRequest struct {
	CustomerCode    string   `json:"customer_code" validate:"required"`
	CustomerName    string   `json:"customer_name" validate:"required"`
	ShopName        string   `json:"shop_name"`
	OwnerName       string   `json:"owner_name"`
	CustomerType    string   `json:"customer_type"`
	BillingAddress1 string   `json:"billing_address_1"`
	BillingAddress2 string   `json:"billing_address_2"`
	BillingAddress3 string   `json:"billing_address_3"`
	BillingCity     string   `json:"billing_city"`
	District        string   `json:"district"`
	MobileNo        string   `json:"mobile_no"`
	PhoneNo2        string   `json:"phone_no_2"`
	GstNo           string   `json:"gst_no"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	IsActive        bool     `json:"is_active"`
}
