package Controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
	"Meridian/middleware"
)

// CustomerHandler contains handler methods for the customer master.
type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{DB: db}
}

// GetCustomers lists customers with optional search over code, name, shop and
// mobile, paginated.
func (h *CustomerHandler) GetCustomers(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.Customer{})
	if search := ctx.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(customer_code) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(shop_name) LIKE ? OR mobile_no LIKE ?",
			like, like, like, like,
		)
	}
	if active := ctx.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	if district := ctx.Query("district"); district != "" {
		query = query.Where("district = ?", district)
	}

	var total int64
	query.Count(&total)

	var customers []Models.Customer
	err := query.Order("customer_name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&customers).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve customers"})
	}

	return ctx.JSON(fiber.Map{
		"data":      customers,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCustomer returns one customer with its active route, if any.
func (h *CustomerHandler) GetCustomer(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	var customer Models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	mapping, err := Models.ActiveCustomerRoute(h.DB, customer.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve route"})
	}

	resp := fiber.Map{"customer": customer}
	if mapping != nil {
		resp["route"] = mapping.Route
	}
	return ctx.JSON(resp)
}

func (h *CustomerHandler) CreateCustomer(ctx *fiber.Ctx) error {
	var input Models.CustomerRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	customer := Models.Customer{
		CustomerCode:    input.CustomerCode,
		CustomerName:    input.CustomerName,
		ShopName:        input.ShopName,
		OwnerName:       input.OwnerName,
		CustomerType:    input.CustomerType,
		BillingAddress1: input.BillingAddress1,
		BillingAddress2: input.BillingAddress2,
		BillingAddress3: input.BillingAddress3,
		BillingCity:     input.BillingCity,
		District:        input.District,
		MobileNo:        input.MobileNo,
		PhoneNo2:        input.PhoneNo2,
		GstNo:           input.GstNo,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		IsActive:        true,
	}
	if customer.CustomerType == "" {
		customer.CustomerType = "retail"
	}
	if user, ok := middleware.CurrentUser(ctx); ok {
		customer.CreatedBy = &user.ID
	}

	if err := h.DB.Create(&customer).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A customer with this code already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create customer"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

func (h *CustomerHandler) UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	var customer Models.Customer
	if err := h.DB.First(&customer, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var input Models.CustomerRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"customer_code":     input.CustomerCode,
		"customer_name":     input.CustomerName,
		"shop_name":         input.ShopName,
		"owner_name":        input.OwnerName,
		"customer_type":     input.CustomerType,
		"billing_address_1": input.BillingAddress1,
		"billing_address_2": input.BillingAddress2,
		"billing_address_3": input.BillingAddress3,
		"billing_city":      input.BillingCity,
		"district":          input.District,
		"mobile_no":         input.MobileNo,
		"phone_no_2":        input.PhoneNo2,
		"gst_no":            input.GstNo,
		"latitude":          input.Latitude,
		"longitude":         input.Longitude,
		"is_active":         input.IsActive,
	}
	if err := h.DB.Model(&customer).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer"})
	}
	return ctx.JSON(customer)
}

// DeleteCustomer deactivates; orders and invoices keep pointing at the row.
func (h *CustomerHandler) DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}
	result := h.DB.Model(&Models.Customer{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate customer"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Customer deactivated"})
}
