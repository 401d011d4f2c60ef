package BulkUpload

import (
	"github.com/shopspring/decimal"

	"Meridian/Models"
)

var defaultGstRate = decimal.NewFromInt(18)

// runProducts loads the positional product file. An unknown brand name is
// tolerated; the product simply lands without a brand.
func (e *Engine) runProducts(doc document, res *Result) error {
	brands, err := e.brandsByName()
	if err != nil {
		return err
	}

	var products []Models.Product
	for _, r := range doc.Rows {
		code, name := r.field(0), r.field(1)
		if code == "" || name == "" {
			res.Failed++
			res.addError("Line %d: Missing required fields", r.LineNo)
			continue
		}

		p := Models.Product{
			ProductCode:     code,
			ProductName:     name,
			BulkUploadRefNo: res.ReferenceNo,
			Category:        r.field(3),
			UnitOfMeasure:   r.field(4),
			HsnCode:         r.field(5),
			GstRate:         defaultGstRate,
			QtyInLtr:        parseDecimal(r.field(7)),
			Description:     r.field(8),
			IsActive:        true,
		}
		if p.UnitOfMeasure == "" {
			p.UnitOfMeasure = "pcs"
		}
		if gst := r.field(6); gst != "" {
			p.GstRate = parseDecimal(gst)
		}
		if brandID, ok := brands.id(r.field(2)); ok {
			p.BrandID = &brandID
		}
		products = append(products, p)
	}

	if len(products) == 0 {
		return nil
	}
	if err := e.DB.Create(&products).Error; err != nil {
		res.Failed += len(products)
		res.addError("Database error: %v", err)
		return nil
	}
	res.Success += len(products)
	return nil
}
