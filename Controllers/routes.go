package Controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
)

// RouteHandler contains handler methods for routes and their customer and
// field staff assignments.
type RouteHandler struct {
	DB *gorm.DB
}

func NewRouteHandler(db *gorm.DB) *RouteHandler {
	return &RouteHandler{DB: db}
}

func (h *RouteHandler) GetRoutes(ctx *fiber.Ctx) error {
	query := h.DB.Model(&Models.Route{})
	if active := ctx.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	var routes []Models.Route
	if err := query.Order("route_name").Find(&routes).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve routes"})
	}
	return ctx.JSON(routes)
}

func (h *RouteHandler) CreateRoute(ctx *fiber.Ctx) error {
	var input Models.RouteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	route := Models.Route{
		RouteCode:        input.RouteCode,
		RouteName:        input.RouteName,
		RouteDescription: input.RouteDescription,
		IsActive:         true,
	}
	if err := h.DB.Create(&route).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A route with this code already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create route"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(route)
}

func (h *RouteHandler) UpdateRoute(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid route ID"})
	}
	var route Models.Route
	if err := h.DB.First(&route, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	}

	var input Models.RouteRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"route_code":        input.RouteCode,
		"route_name":        input.RouteName,
		"route_description": input.RouteDescription,
		"is_active":         input.IsActive,
	}
	if err := h.DB.Model(&route).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update route"})
	}
	return ctx.JSON(route)
}

// GetRouteCustomers lists the customers actively mapped to a route.
func (h *RouteHandler) GetRouteCustomers(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid route ID"})
	}
	var mappings []Models.RouteCustomerMapping
	err = h.DB.Preload("Customer").
		Where("route_id = ? AND is_active = ?", id, true).
		Find(&mappings).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve route customers"})
	}
	return ctx.JSON(mappings)
}

// AssignCustomer moves or creates the customer's single route mapping.
func (h *RouteHandler) AssignCustomer(ctx *fiber.Ctx) error {
	var input Models.RouteCustomerMappingRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := Models.AssignCustomerRoute(h.DB, input.CustomerID, input.RouteID, true); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign customer to route"})
	}
	return ctx.JSON(fiber.Map{"message": "Customer assigned to route"})
}

// GetRouteUsers lists the field staff assigned to a route.
func (h *RouteHandler) GetRouteUsers(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid route ID"})
	}
	var mappings []Models.UserRouteMapping
	err = h.DB.Preload("User").
		Where("route_id = ? AND is_active = ?", id, true).
		Find(&mappings).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve route users"})
	}
	return ctx.JSON(mappings)
}

// AssignUser adds a field staff assignment unless one already exists.
func (h *RouteHandler) AssignUser(ctx *fiber.Ctx) error {
	var input Models.UserRouteMappingRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing Models.UserRouteMapping
	err := h.DB.Where("user_id = ? AND route_id = ?", input.UserID, input.RouteID).First(&existing).Error
	if err == nil {
		if !existing.IsActive {
			h.DB.Model(&existing).Update("is_active", true)
		}
		return ctx.JSON(existing)
	}
	if err != gorm.ErrRecordNotFound {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign user to route"})
	}

	mapping := Models.UserRouteMapping{
		RouteID:  input.RouteID,
		UserID:   input.UserID,
		IsActive: true,
	}
	if err := h.DB.Create(&mapping).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign user to route"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(mapping)
}
