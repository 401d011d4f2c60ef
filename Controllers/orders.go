package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
	"Meridian/Pricing"
	"Meridian/middleware"
)

// OrderHandler contains handler methods for sale order entry and listing.
type OrderHandler struct {
	DB *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db}
}

// CreateOrder saves a header and its lines in one transaction. All amounts
// are computed server side from quantity, rate, discount and tax; anything
// the client sends for totals is ignored.
func (h *OrderHandler) CreateOrder(ctx *fiber.Ctx) error {
	var input Models.OrderRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	orderDate, err := dateField(input.OrderDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order_date must be yyyy-mm-dd"})
	}

	var customer Models.Customer
	if err := h.DB.First(&customer, input.CustomerID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	header := Models.SaleOrderHeader{
		OrderNo:      Models.NewOrderNo(),
		OrderDate:    orderDate,
		CustomerID:   customer.ID,
		BranchID:     input.BranchID,
		OrderStatus:  "confirmed",
		OrderType:    input.OrderType,
		PaymentTerms: input.PaymentTerms,
		Transport:    input.Transport,
	}
	if header.OrderType == "" {
		header.OrderType = "regular"
	}

	if mapping, err := Models.ActiveCustomerRoute(h.DB, customer.ID); err == nil && mapping != nil {
		header.RouteID = &mapping.RouteID
	}
	if user, ok := middleware.CurrentUser(ctx); ok {
		header.CreatedBy = &user.ID
		if user.Role == Models.RoleFieldStaff {
			header.FieldStaffID = &user.ID
		}
	}

	details := make([]Models.SaleOrderDetail, 0, len(input.Lines))
	breakdowns := make([]Pricing.LineBreakdown, 0, len(input.Lines))
	for i, line := range input.Lines {
		var product Models.Product
		if err := h.DB.First(&product, line.ProductID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Product not found on line", "line": i + 1})
		}

		unitPrice := Pricing.CoerceNonNegative(line.UnitPrice)
		discountPct := Pricing.CoerceNonNegative(line.DiscountPercentage)
		taxPct := Pricing.CoerceNonNegative(line.TaxPercentage)
		if unitPrice.IsZero() {
			if price, err := Models.EffectivePrice(h.DB, product.ID, customer.CustomerType, orderDate); err == nil && price != nil {
				unitPrice = price.Price
				if discountPct.IsZero() {
					discountPct = price.DiscountPercentage
				}
			}
		}
		if taxPct.IsZero() {
			taxPct = product.GstRate
		}

		b := Pricing.ComputeLine(Pricing.CoerceNonNegative(line.Quantity), unitPrice, discountPct, taxPct)
		breakdowns = append(breakdowns, b)
		details = append(details, Models.SaleOrderDetail{
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
			Notes:              line.Notes,
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
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}
	for i := range details {
		details[i].OrderID = header.ID
	}
	if err := tx.Create(&details).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order lines"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save order"})
	}

	header.Details = details
	return ctx.Status(fiber.StatusCreated).JSON(header)
}

// GetOrders lists orders with filters and pagination, newest first.
func (h *OrderHandler) GetOrders(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.SaleOrderHeader{}).
		Preload("Customer").
		Preload("Route")
	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if routeID := ctx.Query("route_id"); routeID != "" {
		query = query.Where("route_id = ?", routeID)
	}
	if staffID := ctx.Query("field_staff_id"); staffID != "" {
		query = query.Where("field_staff_id = ?", staffID)
	}
	if from := ctx.Query("from"); from != "" {
		query = query.Where("order_date >= ?", from)
	}
	if to := ctx.Query("to"); to != "" {
		query = query.Where("order_date <= ?", to)
	}

	// Customer accounts only ever see their own orders.
	if user, ok := middleware.CurrentUser(ctx); ok && user.Role == Models.RoleCustomer && user.CustomerID != nil {
		query = query.Where("customer_id = ?", *user.CustomerID)
	}

	var total int64
	query.Count(&total)

	var orders []Models.SaleOrderHeader
	err := query.Order("order_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve orders"})
	}

	return ctx.JSON(fiber.Map{
		"data":      orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetOrder returns one order with lines and products.
func (h *OrderHandler) GetOrder(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	var order Models.SaleOrderHeader
	err = h.DB.Preload("Customer").
		Preload("Route").
		Preload("FieldStaff").
		Preload("Details.Product").
		First(&order, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}
	return ctx.JSON(order)
}

// DeleteOrder removes the order and, through the cascade, its lines.
func (h *OrderHandler) DeleteOrder(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	var order Models.SaleOrderHeader
	if err := h.DB.First(&order, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	tx := h.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&Models.SaleOrderDetail{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order lines"})
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete order"})
	}
	return ctx.JSON(fiber.Map{"message": "Order deleted"})
}
