package BulkUpload

import (
	"time"

	"Meridian/Models"
)

// runDailyStock resolves every branch name and product code against
// single-pass lookups, then inserts the surviving rows in one shot.
func (e *Engine) runDailyStock(doc document, uploadedBy *uint, res *Result) error {
	branches, err := e.branchesByName()
	if err != nil {
		return err
	}
	products, err := e.productsByCode()
	if err != nil {
		return err
	}

	today := time.Now()
	var records []Models.DailyStock
	for _, r := range doc.Rows {
		branchName, productCode, qty := r.field(0), r.field(1), r.field(2)
		if branchName == "" || productCode == "" || qty == "" {
			res.Failed++
			res.addError("Line %d: Missing required fields", r.LineNo)
			continue
		}
		branchID, ok := branches.id(branchName)
		if !ok {
			res.Failed++
			res.addError("Line %d: Branch \"%s\" not found", r.LineNo, branchName)
			continue
		}
		productID, ok := products.id(productCode)
		if !ok {
			res.Failed++
			res.addError("Line %d: Product \"%s\" not found", r.LineNo, productCode)
			continue
		}
		records = append(records, Models.DailyStock{
			BranchID:     branchID,
			ProductID:    productID,
			Quantity:     parseDecimal(qty),
			UploadedDate: parseDate(r.field(3), today),
			UploadedBy:   uploadedBy,
		})
	}

	if len(records) == 0 {
		return nil
	}
	if err := e.DB.Create(&records).Error; err != nil {
		res.Failed += len(records)
		res.addError("Database error: %v", err)
		return nil
	}
	res.Success += len(records)
	return nil
}
