package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
)

// StockHandler contains handler methods for daily stock and receivables
// ageing snapshots, both populated through bulk uploads.
type StockHandler struct {
	DB *gorm.DB
}

func NewStockHandler(db *gorm.DB) *StockHandler {
	return &StockHandler{DB: db}
}

func (h *StockHandler) GetDailyStock(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.DailyStock{}).
		Preload("Branch").
		Preload("Product")
	if branchID := ctx.Query("branch_id"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if productID := ctx.Query("product_id"); productID != "" {
		query = query.Where("product_id = ?", productID)
	}
	if date := ctx.Query("date"); date != "" {
		query = query.Where("uploaded_date = ?", date)
	}

	var total int64
	query.Count(&total)

	var records []Models.DailyStock
	err := query.Order("uploaded_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock"})
	}

	return ctx.JSON(fiber.Map{
		"data":      records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *StockHandler) GetOutstanding(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.AgeWiseOutstanding{}).
		Preload("Branch").
		Preload("Customer")
	if branchID := ctx.Query("branch_id"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}
	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if asOn := ctx.Query("as_on_date"); asOn != "" {
		query = query.Where("as_on_date = ?", asOn)
	}

	var total int64
	query.Count(&total)

	var records []Models.AgeWiseOutstanding
	err := query.Order("as_on_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve outstanding"})
	}

	return ctx.JSON(fiber.Map{
		"data":      records,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
