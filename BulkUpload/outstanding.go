package BulkUpload

import (
	"time"

	"Meridian/Models"
)

// runOutstanding loads the receivables ageing snapshot. Branch and customer
// names must already exist as masters; amounts parse leniently with blanks
// treated as zero.
func (e *Engine) runOutstanding(doc document, uploadedBy *uint, res *Result) error {
	branches, err := e.branchesByName()
	if err != nil {
		return err
	}
	customers, err := e.customersByName()
	if err != nil {
		return err
	}

	today := time.Now()
	var records []Models.AgeWiseOutstanding
	for _, r := range doc.Rows {
		asOn, branchName, customerName := r.field(0), r.field(1), r.field(2)
		if asOn == "" || branchName == "" || customerName == "" {
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
		customerID, ok := customers.id(customerName)
		if !ok {
			res.Failed++
			res.addError("Line %d: Customer \"%s\" not found", r.LineNo, customerName)
			continue
		}
		records = append(records, Models.AgeWiseOutstanding{
			AsOnDate:       parseDate(asOn, today),
			BranchID:       branchID,
			CustomerID:     customerID,
			DrAmount:       parseDecimal(r.field(3)),
			CrAmount:       parseDecimal(r.field(4)),
			Balance:        parseDecimal(r.field(5)),
			LessThan45:     parseDecimal(r.field(6)),
			GreaterThan45:  parseDecimal(r.field(7)),
			GreaterThan60:  parseDecimal(r.field(8)),
			GreaterThan90:  parseDecimal(r.field(9)),
			GreaterThan120: parseDecimal(r.field(10)),
			UploadedBy:     uploadedBy,
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
