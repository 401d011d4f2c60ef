package Controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Meridian/Models"
)

// ReportHandler contains handler methods for sales reporting.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// dateRange reads from/to query params, defaulting to the current month.
func dateRange(ctx *fiber.Ctx) (string, string) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := ctx.Query("from", monthStart.Format("2006-01-02"))
	to := ctx.Query("to", now.Format("2006-01-02"))
	return from, to
}

// SalesSummary returns document counts and value totals for the period.
func (h *ReportHandler) SalesSummary(ctx *fiber.Ctx) error {
	from, to := dateRange(ctx)

	type docTotals struct {
		Count int64           `json:"count"`
		Total decimal.Decimal `json:"total"`
	}
	var orders, invoices, collections docTotals

	err := h.DB.Model(&Models.SaleOrderHeader{}).
		Where("order_date BETWEEN ? AND ?", from, to).
		Select("COUNT(*) as count, COALESCE(SUM(net_amount),0) as total").
		Scan(&orders).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary"})
	}
	err = h.DB.Model(&Models.InvoiceHeader{}).
		Where("invoice_date BETWEEN ? AND ?", from, to).
		Select("COUNT(*) as count, COALESCE(SUM(net_amount),0) as total").
		Scan(&invoices).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary"})
	}
	err = h.DB.Model(&Models.Collection{}).
		Where("collection_date BETWEEN ? AND ?", from, to).
		Select("COUNT(*) as count, COALESCE(SUM(amount),0) as total").
		Scan(&collections).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary"})
	}

	var pendingInvoices int64
	h.DB.Model(&Models.InvoiceHeader{}).
		Where("payment_status IN ?", []string{Models.InvoicePending, Models.InvoiceOverdue}).
		Count(&pendingInvoices)

	return ctx.JSON(fiber.Map{
		"from":             from,
		"to":               to,
		"orders":           orders,
		"invoices":         invoices,
		"collections":      collections,
		"pending_invoices": pendingInvoices,
	})
}

type groupedSales struct {
	GroupID   *uint           `json:"group_id"`
	GroupName string          `json:"group_name"`
	DocCount  int64           `json:"doc_count"`
	Total     decimal.Decimal `json:"total"`
}

// RouteWiseSales aggregates invoice value per route for the period.
func (h *ReportHandler) RouteWiseSales(ctx *fiber.Ctx) error {
	from, to := dateRange(ctx)

	var rows []groupedSales
	err := h.DB.Model(&Models.InvoiceHeader{}).
		Select("invoice_headers.route_id as group_id, routes.route_name as group_name, COUNT(*) as doc_count, COALESCE(SUM(invoice_headers.net_amount),0) as total").
		Joins("LEFT JOIN routes ON routes.id = invoice_headers.route_id").
		Where("invoice_headers.invoice_date BETWEEN ? AND ?", from, to).
		Group("invoice_headers.route_id, routes.route_name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build route report"})
	}
	return ctx.JSON(fiber.Map{"from": from, "to": to, "data": rows})
}

// FieldStaffSales aggregates invoice value per field staff for the period.
func (h *ReportHandler) FieldStaffSales(ctx *fiber.Ctx) error {
	from, to := dateRange(ctx)

	var rows []groupedSales
	err := h.DB.Model(&Models.InvoiceHeader{}).
		Select("invoice_headers.field_staff_id as group_id, users.full_name as group_name, COUNT(*) as doc_count, COALESCE(SUM(invoice_headers.net_amount),0) as total").
		Joins("LEFT JOIN users ON users.id = invoice_headers.field_staff_id").
		Where("invoice_headers.invoice_date BETWEEN ? AND ?", from, to).
		Group("invoice_headers.field_staff_id, users.full_name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build staff report"})
	}
	return ctx.JSON(fiber.Map{"from": from, "to": to, "data": rows})
}

// BrandWiseSales aggregates invoiced line value per brand for the period.
func (h *ReportHandler) BrandWiseSales(ctx *fiber.Ctx) error {
	from, to := dateRange(ctx)

	var rows []groupedSales
	err := h.DB.Model(&Models.InvoiceDetail{}).
		Select("invoice_details.brand_id as group_id, brands.brand_name as group_name, COUNT(*) as doc_count, COALESCE(SUM(invoice_details.line_total),0) as total").
		Joins("JOIN invoice_headers ON invoice_headers.id = invoice_details.invoice_id").
		Joins("LEFT JOIN brands ON brands.id = invoice_details.brand_id").
		Where("invoice_headers.invoice_date BETWEEN ? AND ?", from, to).
		Group("invoice_details.brand_id, brands.brand_name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build brand report"})
	}
	return ctx.JSON(fiber.Map{"from": from, "to": to, "data": rows})
}

// CustomerPurchasePattern shows what one customer bought, per product.
func (h *ReportHandler) CustomerPurchasePattern(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	from, to := dateRange(ctx)

	type patternRow struct {
		ProductID   uint            `json:"product_id"`
		ProductName string          `json:"product_name"`
		Quantity    decimal.Decimal `json:"quantity"`
		Total       decimal.Decimal `json:"total"`
		LastBought  string          `json:"last_bought"`
	}
	var rows []patternRow
	err = h.DB.Model(&Models.InvoiceDetail{}).
		Select("invoice_details.product_id, products.product_name, COALESCE(SUM(invoice_details.quantity),0) as quantity, COALESCE(SUM(invoice_details.line_total),0) as total, MAX(invoice_headers.invoice_date) as last_bought").
		Joins("JOIN invoice_headers ON invoice_headers.id = invoice_details.invoice_id").
		Joins("JOIN products ON products.id = invoice_details.product_id").
		Where("invoice_headers.customer_id = ?", id).
		Where("invoice_headers.invoice_date BETWEEN ? AND ?", from, to).
		Group("invoice_details.product_id, products.product_name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build purchase pattern"})
	}
	return ctx.JSON(fiber.Map{"from": from, "to": to, "customer_id": id, "data": rows})
}

// ExportInvoiceRegister streams the invoice register for the period as an
// xlsx workbook.
func (h *ReportHandler) ExportInvoiceRegister(ctx *fiber.Ctx) error {
	from, to := dateRange(ctx)

	var invoices []Models.InvoiceHeader
	err := h.DB.Preload("Customer").
		Preload("Route").
		Where("invoice_date BETWEEN ? AND ?", from, to).
		Order("invoice_date, invoice_no").
		Find(&invoices).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve invoices"})
	}

	f := excelize.NewFile()
	sheet := "Invoice Register"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice No", "Invoice Date", "Order No", "Customer", "Route", "Payment Status", "Total", "Discount", "Tax", "Net"}
	for i, hName := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hName)
	}

	for i, inv := range invoices {
		routeName := ""
		if inv.Route != nil {
			routeName = inv.Route.RouteName
		}
		values := []interface{}{
			inv.InvoiceNo,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.OrderNo,
			inv.Customer.CustomerName,
			routeName,
			inv.PaymentStatus,
			inv.TotalAmount.InexactFloat64(),
			inv.DiscountAmount.InexactFloat64(),
			inv.TaxAmount.InexactFloat64(),
			inv.NetAmount.InexactFloat64(),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	fileName := fmt.Sprintf("invoice-register-%s-to-%s.xlsx", from, to)
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	return ctx.Send(buf.Bytes())
}
