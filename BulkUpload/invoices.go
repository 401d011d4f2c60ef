package BulkUpload

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"Meridian/Models"
)

// invoiceRow is one parsed line of the invoice file, still keyed by the
// names the accounting export uses.
type invoiceRow struct {
	LineNo          int
	InvoiceNo       string
	InvoiceDate     string
	OrderNo         string
	CustomerName    string
	BranchName      string
	ProductName     string
	Quantity        decimal.Decimal
	UnitRate        decimal.Decimal
	DiscountPct     decimal.Decimal
	GstRate         string
	TaxableValue    decimal.Decimal
	InclusiveTaxAmt decimal.Decimal
}

// productRecordsByName loads full products keyed by lower-cased name; invoice
// lines need the brand and GST fallback, not just the id.
func (e *Engine) productRecordsByName() (map[string]Models.Product, error) {
	var products []Models.Product
	if err := e.DB.Find(&products).Error; err != nil {
		return nil, err
	}
	out := make(map[string]Models.Product, len(products))
	for _, p := range products {
		out[strings.ToLower(strings.TrimSpace(p.ProductName))] = p
	}
	return out, nil
}

// runInvoices groups file rows into invoices by invoice number, resolves
// every reference once up front, and commits each invoice in its own
// transaction so one bad invoice never rolls back its neighbours.
//
// An invoice with an unknown customer fails whole; an unknown product fails
// only that line and the rest of the invoice still commits.
func (e *Engine) runInvoices(doc document, uploadedBy *uint, res *Result) error {
	var order []string
	grouped := map[string][]invoiceRow{}
	for _, r := range doc.Rows {
		ir := invoiceRow{
			LineNo:          r.LineNo,
			InvoiceNo:       r.field(0),
			InvoiceDate:     r.field(1),
			OrderNo:         r.field(2),
			CustomerName:    r.field(3),
			BranchName:      r.field(4),
			ProductName:     r.field(5),
			Quantity:        parseDecimal(r.field(6)),
			UnitRate:        parseDecimal(r.field(7)),
			DiscountPct:     parseDecimal(r.field(8)),
			GstRate:         r.field(9),
			TaxableValue:    parseDecimal(r.field(10)),
			InclusiveTaxAmt: parseDecimal(r.field(11)),
		}
		if ir.InvoiceNo == "" || ir.CustomerName == "" || ir.ProductName == "" {
			res.Failed++
			res.addError("Line %d: Missing required fields (invoice_no, customer_name, or product_name)", r.LineNo)
			continue
		}
		if _, seen := grouped[ir.InvoiceNo]; !seen {
			order = append(order, ir.InvoiceNo)
		}
		grouped[ir.InvoiceNo] = append(grouped[ir.InvoiceNo], ir)
	}

	customers, err := e.customersByName()
	if err != nil {
		return err
	}
	branches, err := e.branchesByName()
	if err != nil {
		return err
	}
	products, err := e.productRecordsByName()
	if err != nil {
		return err
	}
	var orderNos []string
	for _, invNo := range order {
		if no := grouped[invNo][0].OrderNo; no != "" {
			orderNos = append(orderNos, no)
		}
	}
	orders, err := e.ordersByNo(orderNos)
	if err != nil {
		return err
	}

	today := time.Now()
	for _, invNo := range order {
		items := grouped[invNo]
		first := items[0]

		customerID, ok := customers.id(first.CustomerName)
		if !ok {
			res.Failed += len(items)
			res.addError("Invoice %s: Customer \"%s\" not found", invNo, first.CustomerName)
			continue
		}

		header := Models.InvoiceHeader{
			InvoiceNo:     invNo,
			InvoiceDate:   parseDate(first.InvoiceDate, today),
			CustomerID:    customerID,
			InvoiceStatus: "confirmed",
			PaymentStatus: Models.InvoicePending,
			CreatedBy:     uploadedBy,
		}
		if branchID, ok := branches.id(first.BranchName); ok {
			header.BranchID = &branchID
		}
		if so, ok := orders[strings.ToLower(strings.TrimSpace(first.OrderNo))]; ok {
			header.OrderID = &so.ID
			header.OrderNo = so.OrderNo
			header.RouteID = so.RouteID
			if so.FieldStaffID != nil {
				header.FieldStaffID = so.FieldStaffID
			} else {
				header.FieldStaffID = so.CreatedBy
			}
		}

		var details []Models.InvoiceDetail
		total, tax, discount := decimal.Zero, decimal.Zero, decimal.Zero
		for i, item := range items {
			p, ok := products[strings.ToLower(strings.TrimSpace(item.ProductName))]
			if !ok {
				res.Failed++
				res.addError("Invoice %s, Line %d: Product \"%s\" not found", invNo, i+1, item.ProductName)
				continue
			}
			taxPct := p.GstRate
			if item.GstRate != "" {
				taxPct = parseDecimal(item.GstRate)
			}
			discountAmt := item.UnitRate.Mul(item.Quantity).Mul(item.DiscountPct).Div(decimal.NewFromInt(100))
			details = append(details, Models.InvoiceDetail{
				LineNo:             len(details) + 1,
				ProductID:          p.ID,
				BrandID:            p.BrandID,
				Quantity:           item.Quantity,
				UnitPrice:          item.UnitRate,
				DiscountPercentage: item.DiscountPct,
				DiscountAmount:     discountAmt,
				TaxPercentage:      taxPct,
				TaxAmount:          item.InclusiveTaxAmt,
				LineTotal:          item.TaxableValue.Add(item.InclusiveTaxAmt),
			})
			total = total.Add(item.TaxableValue)
			tax = tax.Add(item.InclusiveTaxAmt)
			discount = discount.Add(discountAmt)
		}
		if len(details) == 0 {
			continue
		}
		header.TotalAmount = total
		header.DiscountAmount = discount
		header.TaxAmount = tax
		header.NetAmount = total.Add(tax)

		tx := e.DB.Begin()
		if err := tx.Create(&header).Error; err != nil {
			tx.Rollback()
			res.Failed += len(details)
			res.addError("Invoice %s: %v", invNo, err)
			continue
		}
		for i := range details {
			details[i].InvoiceID = header.ID
		}
		if err := tx.Create(&details).Error; err != nil {
			tx.Rollback()
			res.Failed += len(details)
			res.addError("Invoice %s: %v", invNo, err)
			continue
		}
		if err := tx.Commit().Error; err != nil {
			res.Failed += len(details)
			res.addError("Invoice %s: %v", invNo, err)
			continue
		}
		res.Success += len(details)
	}
	return nil
}
