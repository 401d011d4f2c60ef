// Package BulkUpload turns delimited text uploads into master and document
// rows. One engine drives every upload type; the per-type strategies differ
// only in column mapping, reference resolution and row building.
//
// Failure model: row-level problems are accumulated as error strings and
// never abort the batch. Only a database failure during the insert phase
// surfaces as an error.
package BulkUpload

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"Meridian/Models"
)

// Upload types accepted by Run.
const (
	TypeCustomers      = "customers"
	TypeProducts       = "products"
	TypeDailyStock     = "daily_stock"
	TypeOutstanding    = "age_wise_outstanding"
	TypeInvoices       = "invoices"
	TypeRouteCustomers = "route_customer_mapping"
	TypeRouteUsers     = "route_user_mapping"
)

// Result is the operator-facing summary of one upload attempt.
type Result struct {
	ReferenceNo string   `json:"reference_no"`
	UploadType  string   `json:"upload_type"`
	Total       int      `json:"total"`
	Success     int      `json:"success"`
	Failed      int      `json:"failed"`
	Errors      []string `json:"errors"`
}

func (r *Result) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

type Engine struct {
	DB  *gorm.DB
	Log *logrus.Logger
}

func NewEngine(db *gorm.DB, log *logrus.Logger) *Engine {
	return &Engine{DB: db, Log: log}
}

// Run processes one uploaded file. Rows that fail validation or reference
// resolution are skipped and reported; valid rows still commit. A reference
// record summarizing the attempt is written unconditionally after the insert
// phase.
func (e *Engine) Run(uploadType, fileName string, content []byte, uploadedBy *uint) (*Result, error) {
	if _, err := Template(uploadType); err != nil {
		return nil, err
	}

	res := &Result{
		ReferenceNo: Models.NewBulkUploadRefNo(),
		UploadType:  uploadType,
	}
	doc := parse(content)

	var err error
	switch uploadType {
	case TypeCustomers:
		err = e.runCustomers(doc, uploadedBy, res)
	case TypeProducts:
		err = e.runProducts(doc, res)
	case TypeDailyStock:
		err = e.runDailyStock(doc, uploadedBy, res)
	case TypeOutstanding:
		err = e.runOutstanding(doc, uploadedBy, res)
	case TypeInvoices:
		err = e.runInvoices(doc, uploadedBy, res)
	case TypeRouteCustomers:
		err = e.runRouteCustomers(doc, res)
	case TypeRouteUsers:
		err = e.runRouteUsers(doc, res)
	}
	if err != nil {
		return nil, err
	}

	res.Total = res.Success + res.Failed

	if err := e.writeReference(fileName, uploadedBy, res); err != nil {
		return nil, err
	}

	e.Log.WithFields(logrus.Fields{
		"reference": res.ReferenceNo,
		"type":      uploadType,
		"success":   res.Success,
		"failed":    res.Failed,
	}).Info("bulk upload processed")

	return res, nil
}

func (e *Engine) writeReference(fileName string, uploadedBy *uint, res *Result) error {
	errorLog, _ := json.Marshal(res.Errors)
	ref := Models.BulkUploadRef{
		ReferenceNo:    res.ReferenceNo,
		UploadType:     res.UploadType,
		TotalRecords:   res.Total,
		SuccessRecords: res.Success,
		FailedRecords:  res.Failed,
		UploadedBy:     uploadedBy,
		FileName:       fileName,
		Status:         "active",
		ErrorLog:       datatypes.JSON(errorLog),
	}
	return e.DB.Create(&ref).Error
}
