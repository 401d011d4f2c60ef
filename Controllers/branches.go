package Controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/Models"
)

// BranchHandler contains handler methods for company and branch masters.
type BranchHandler struct {
	DB *gorm.DB
}

func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{DB: db}
}

func (h *BranchHandler) GetCompanies(ctx *fiber.Ctx) error {
	var companies []Models.Company
	if err := h.DB.Order("company_name").Find(&companies).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve companies"})
	}
	return ctx.JSON(companies)
}

func (h *BranchHandler) CreateCompany(ctx *fiber.Ctx) error {
	var company Models.Company
	if err := ctx.BodyParser(&company); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if company.CompanyName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "company_name is required"})
	}
	company.IsActive = true
	if err := h.DB.Create(&company).Error; err != nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A company with this name already exists"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(company)
}

func (h *BranchHandler) GetBranches(ctx *fiber.Ctx) error {
	query := h.DB.Preload("Company")
	if active := ctx.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}
	var branches []Models.Branch
	if err := query.Order("branch_name").Find(&branches).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve branches"})
	}
	return ctx.JSON(branches)
}

func (h *BranchHandler) GetBranch(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
	}
	var branch Models.Branch
	if err := h.DB.Preload("Company").First(&branch, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}
	return ctx.JSON(branch)
}

func (h *BranchHandler) CreateBranch(ctx *fiber.Ctx) error {
	var input Models.BranchRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	branch := Models.Branch{
		CompanyID:  input.CompanyID,
		BranchCode: input.BranchCode,
		BranchName: input.BranchName,
		Address:    input.Address,
		City:       input.City,
		State:      input.State,
		Phone:      input.Phone,
		IsActive:   true,
	}
	if err := h.DB.Create(&branch).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate entry") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A branch with this code already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create branch"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(branch)
}

func (h *BranchHandler) UpdateBranch(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
	}
	var branch Models.Branch
	if err := h.DB.First(&branch, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}

	var input Models.BranchRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"company_id":  input.CompanyID,
		"branch_code": input.BranchCode,
		"branch_name": input.BranchName,
		"address":     input.Address,
		"city":        input.City,
		"state":       input.State,
		"phone":       input.Phone,
		"is_active":   input.IsActive,
	}
	if err := h.DB.Model(&branch).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update branch"})
	}
	return ctx.JSON(branch)
}

// DeleteBranch deactivates. Stock and documents keep their branch links.
func (h *BranchHandler) DeleteBranch(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid branch ID"})
	}
	result := h.DB.Model(&Models.Branch{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate branch"})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Branch not found"})
	}
	return ctx.JSON(fiber.Map{"message": "Branch deactivated"})
}
