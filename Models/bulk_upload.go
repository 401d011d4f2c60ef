package Models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BulkUploadRef summarizes one bulk upload attempt. Written exactly once per
// attempt, after the insert phase, whether or not rows failed. Only Status is
// mutated afterwards (batch deletion tracking).
type BulkUploadRef struct {
	gorm.Model
	ReferenceNo    string         `json:"reference_no" gorm:"size:30;not null;uniqueIndex"`
	UploadType     string         `json:"upload_type" gorm:"size:40;not null;index"`
	TotalRecords   int            `json:"total_records" gorm:"not null;default:0"`
	SuccessRecords int            `json:"success_records" gorm:"not null;default:0"`
	FailedRecords  int            `json:"failed_records" gorm:"not null;default:0"`
	UploadedBy     *uint          `json:"uploaded_by" gorm:"index"`
	FileName       string         `json:"file_name" gorm:"size:255"`
	Status         string         `json:"status" gorm:"size:20;not null;default:active"`
	ErrorLog       datatypes.JSON `json:"error_log"`
}
