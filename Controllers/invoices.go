package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
	"Meridian/Pricing"
	"Meridian/middleware"
)

// InvoiceHandler contains handler methods for invoice entry and listing.
type InvoiceHandler struct {
	DB *gorm.DB
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{DB: db}
}

// CreateInvoice enters an invoice manually, amounts computed server side the
// same way order entry does it. Bulk uploaded invoices come in through the
// upload engine instead.
func (h *InvoiceHandler) CreateInvoice(ctx *fiber.Ctx) error {
	var input Models.InvoiceRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	invoiceDate, err := dateField(input.InvoiceDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invoice_date must be yyyy-mm-dd"})
	}
	dueDate, err := optionalDate(input.DueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "due_date must be yyyy-mm-dd"})
	}

	var customer Models.Customer
	if err := h.DB.First(&customer, input.CustomerID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	header := Models.InvoiceHeader{
		InvoiceNo:     Models.NewInvoiceNo(),
		InvoiceDate:   invoiceDate,
		CustomerID:    customer.ID,
		BranchID:      input.BranchID,
		InvoiceStatus: "confirmed",
		PaymentStatus: Models.InvoicePending,
		DueDate:       dueDate,
	}
	if input.OrderID != nil {
		var order Models.SaleOrderHeader
		if err := h.DB.First(&order, *input.OrderID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		header.OrderID = &order.ID
		header.OrderNo = order.OrderNo
		header.RouteID = order.RouteID
		header.FieldStaffID = order.FieldStaffID
	} else if mapping, err := Models.ActiveCustomerRoute(h.DB, customer.ID); err == nil && mapping != nil {
		header.RouteID = &mapping.RouteID
	}
	if user, ok := middleware.CurrentUser(ctx); ok {
		header.CreatedBy = &user.ID
		if user.Role == Models.RoleFieldStaff && header.FieldStaffID == nil {
			header.FieldStaffID = &user.ID
		}
	}

	details := make([]Models.InvoiceDetail, 0, len(input.Lines))
	breakdowns := make([]Pricing.LineBreakdown, 0, len(input.Lines))
	for i, line := range input.Lines {
		var product Models.Product
		if err := h.DB.First(&product, line.ProductID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product not found on line", "line": i + 1})
		}

		unitPrice := Pricing.CoerceNonNegative(line.UnitPrice)
		discountPct := Pricing.CoerceNonNegative(line.DiscountPercentage)
		taxPct := Pricing.CoerceNonNegative(line.TaxPercentage)
		if taxPct.IsZero() {
			taxPct = product.GstRate
		}

		b := Pricing.ComputeLine(Pricing.CoerceNonNegative(line.Quantity), unitPrice, discountPct, taxPct)
		breakdowns = append(breakdowns, b)
		details = append(details, Models.InvoiceDetail{
			LineNo:             i + 1,
			ProductID:          product.ID,
			BrandID:            product.BrandID,
			Quantity:           Pricing.CoerceNonNegative(line.Quantity),
			UnitPrice:          unitPrice,
			DiscountPercentage: discountPct,
			DiscountAmount:     b.DiscountAmount,
			TaxPercentage:      taxPct,
			TaxAmount:          b.TaxAmount,
			LineTotal:          b.LineTotal,
		})
	}

	totals := Pricing.Aggregate(breakdowns)
	header.TotalAmount = totals.GrossAmount
	header.DiscountAmount = totals.DiscountAmount
	header.TaxAmount = totals.TaxAmount
	header.NetAmount = totals.NetAmount

	tx := h.DB.Begin()
	if err := tx.Create(&header).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create invoice"})
	}
	for i := range details {
		details[i].InvoiceID = header.ID
	}
	if err := tx.Create(&details).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create invoice lines"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save invoice"})
	}

	header.Details = details
	return ctx.Status(fiber.StatusCreated).JSON(header)
}

// GetInvoices lists invoices with filters and pagination, newest first.
func (h *InvoiceHandler) GetInvoices(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.InvoiceHeader{}).
		Preload("Customer").
		Preload("Route")
	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if status := ctx.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if routeID := ctx.Query("route_id"); routeID != "" {
		query = query.Where("route_id = ?", routeID)
	}
	if from := ctx.Query("from"); from != "" {
		query = query.Where("invoice_date >= ?", from)
	}
	if to := ctx.Query("to"); to != "" {
		query = query.Where("invoice_date <= ?", to)
	}
	if user, ok := middleware.CurrentUser(ctx); ok && user.Role == Models.RoleCustomer && user.CustomerID != nil {
		query = query.Where("customer_id = ?", *user.CustomerID)
	}

	var total int64
	query.Count(&total)

	var invoices []Models.InvoiceHeader
	err := query.Order("invoice_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&invoices).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve invoices"})
	}

	return ctx.JSON(fiber.Map{
		"data":      invoices,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *InvoiceHandler) GetInvoice(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}
	var invoice Models.InvoiceHeader
	err = h.DB.Preload("Customer").
		Preload("Route").
		Preload("FieldStaff").
		Preload("Details.Product").
		First(&invoice, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return ctx.JSON(invoice)
}

// UpdatePaymentStatus moves an invoice between pending, paid and overdue.
func (h *InvoiceHandler) UpdatePaymentStatus(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}

	var input struct {
		PaymentStatus string `json:"payment_status" validate:"required,oneof=pending paid overdue"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := h.DB.Model(&Models.InvoiceHeader{}).
		Where("id = ?", id).
		Update("payment_status", input.PaymentStatus)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment status"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Payment status updated"})
}

func (h *InvoiceHandler) DeleteInvoice(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid invoice ID"})
	}
	var invoice Models.InvoiceHeader
	if err := h.DB.First(&invoice, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
	}

	tx := h.DB.Begin()
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&Models.InvoiceDetail{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete invoice lines"})
	}
	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete invoice"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete invoice"})
	}
	return ctx.JSON(fiber.Map{"message": "Invoice deleted"})
}
