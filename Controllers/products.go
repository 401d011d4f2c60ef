package Controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
)

// ProductHandler contains handler methods for brands, products and prices.
type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

func (h *ProductHandler) GetBrands(ctx *fiber.Ctx) error {
	var brands []Models.Brand
	if err := h.DB.Order("brand_name").Find(&brands).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve brands"})
	}
	return ctx.JSON(brands)
}

func (h *ProductHandler) CreateBrand(ctx *fiber.Ctx) error {
	var brand Models.Brand
	if err := ctx.BodyParser(&brand); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if brand.BrandName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "brand_name is required"})
	}
	brand.IsActive = true
	if err := h.DB.Create(&brand).Error; err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A brand with this code already exists"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(brand)
}

func (h *ProductHandler) GetProducts(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.Product{}).Preload("Brand")
	if search := ctx.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(product_code) LIKE ? OR LOWER(product_name) LIKE ?", like, like)
	}
	if brandID := ctx.Query("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}
	if active := ctx.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	query.Count(&total)

	var products []Models.Product
	err := query.Order("product_name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve products"})
	}

	return ctx.JSON(fiber.Map{
		"data":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *ProductHandler) GetProduct(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var product Models.Product
	if err := h.DB.Preload("Brand").First(&product, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return ctx.JSON(product)
}

func (h *ProductHandler) CreateProduct(ctx *fiber.Ctx) error {
	var input Models.ProductRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	product := Models.Product{
		ProductCode:   input.ProductCode,
		ProductName:   input.ProductName,
		BrandID:       input.BrandID,
		Category:      input.Category,
		UnitOfMeasure: input.UnitOfMeasure,
		HsnCode:       input.HsnCode,
		GstRate:       input.GstRate,
		QtyInLtr:      input.QtyInLtr,
		Description:   input.Description,
		IsActive:      true,
	}
	if product.UnitOfMeasure == "" {
		product.UnitOfMeasure = "pcs"
	}
	if err := h.DB.Create(&product).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A product with this code already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var product Models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var input Models.ProductRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"product_code":    input.ProductCode,
		"product_name":    input.ProductName,
		"brand_id":        input.BrandID,
		"category":        input.Category,
		"unit_of_measure": input.UnitOfMeasure,
		"hsn_code":        input.HsnCode,
		"gst_rate":        input.GstRate,
		"qty_in_ltr":      input.QtyInLtr,
		"description":     input.Description,
		"is_active":       input.IsActive,
	}
	if err := h.DB.Model(&product).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
	}
	return ctx.JSON(product)
}

func (h *ProductHandler) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	result := h.DB.Model(&Models.Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate product"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Product deactivated"})
}

// GetProductPrices lists price rows for one product.
func (h *ProductHandler) GetProductPrices(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	var prices []Models.ProductPrice
	err = h.DB.Where("product_id = ?", id).
		Order("customer_type, effective_from DESC").
		Find(&prices).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve prices"})
	}
	return ctx.JSON(prices)
}

func (h *ProductHandler) CreateProductPrice(ctx *fiber.Ctx) error {
	var input Models.ProductPriceRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	from, err := dateField(input.EffectiveFrom)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "effective_from must be yyyy-mm-dd"})
	}
	to, err := optionalDate(input.EffectiveTo)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "effective_to must be yyyy-mm-dd"})
	}
	if to != nil && to.Before(from) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "effective_to cannot precede effective_from"})
	}

	price := Models.ProductPrice{
		ProductID:          input.ProductID,
		CustomerType:       input.CustomerType,
		Price:              input.Price,
		DiscountPercentage: input.DiscountPercentage,
		EffectiveFrom:      from,
		EffectiveTo:        to,
		IsActive:           true,
	}
	if err := h.DB.Create(&price).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create price"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(price)
}

// GetEffectivePrice resolves the price in force for product, customer type
// and date (today when omitted). Order entry screens call this to prefill
// the unit rate.
func (h *ProductHandler) GetEffectivePrice(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	customerType := ctx.Query("customer_type", "retail")
	date := time.Now()
	if q := ctx.Query("date"); q != "" {
		date, err = dateField(q)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be yyyy-mm-dd"})
		}
	}

	price, err := Models.EffectivePrice(h.DB, id, customerType, date)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve price"})
	}
	if price == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No effective price for this product and customer type"})
	}
	return ctx.JSON(price)
}
