package Controllers

import (
	"encoding/json"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meridian/BulkUpload"
	"Meridian/Models"
	"Meridian/middleware"
)

// UploadHandler exposes the bulk upload engine over HTTP: template download,
// file submission and batch management.
type UploadHandler struct {
	DB     *gorm.DB
	Engine *BulkUpload.Engine
}

func NewUploadHandler(db *gorm.DB, engine *BulkUpload.Engine) *UploadHandler {
	return &UploadHandler{DB: db, Engine: engine}
}

// GetTypes lists the supported upload types.
func (h *UploadHandler) GetTypes(ctx *fiber.Ctx) error {
	return ctx.JSON(BulkUpload.Types())
}

// GetTemplate downloads the header-only CSV for an upload type.
func (h *UploadHandler) GetTemplate(ctx *fiber.Ctx) error {
	uploadType := ctx.Params("type")
	header, err := BulkUpload.Template(uploadType)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	ctx.Set("Content-Type", "text/csv")
	ctx.Set("Content-Disposition", `attachment; filename="`+uploadType+`_template.csv"`)
	return ctx.SendString(header + "\n")
}

// Upload runs one file through the engine and returns the per-row outcome.
func (h *UploadHandler) Upload(ctx *fiber.Ctx) error {
	uploadType := ctx.Params("type")

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read uploaded file"})
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read uploaded file"})
	}

	var uploadedBy *uint
	if user, ok := middleware.CurrentUser(ctx); ok {
		uploadedBy = &user.ID
	}

	result, err := h.Engine.Run(uploadType, fileHeader.Filename, content, uploadedBy)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(result)
}

// GetBatches lists upload references, newest first.
func (h *UploadHandler) GetBatches(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.BulkUploadRef{})
	if uploadType := ctx.Query("type"); uploadType != "" {
		query = query.Where("upload_type = ?", uploadType)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var refs []Models.BulkUploadRef
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&refs).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve upload batches"})
	}

	return ctx.JSON(fiber.Map{
		"data":      refs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetBatch returns one reference with its error log decoded.
func (h *UploadHandler) GetBatch(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batch ID"})
	}
	var ref Models.BulkUploadRef
	if err := h.DB.First(&ref, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}

	var errors []string
	if len(ref.ErrorLog) > 0 {
		_ = json.Unmarshal(ref.ErrorLog, &errors)
	}
	return ctx.JSON(fiber.Map{"batch": ref, "errors": errors})
}

// DeleteBatch marks the reference deleted and deactivates the master rows it
// created. Master uploads tag their rows with the reference number; document
// uploads stay untouched since invoices are never pulled back.
func (h *UploadHandler) DeleteBatch(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid batch ID"})
	}
	var ref Models.BulkUploadRef
	if err := h.DB.First(&ref, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Batch not found"})
	}
	if ref.Status == "deleted" {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Batch already deleted"})
	}

	tx := h.DB.Begin()
	switch ref.UploadType {
	case BulkUpload.TypeCustomers:
		err = tx.Model(&Models.Customer{}).
			Where("bulk_upload_ref_no = ?", ref.ReferenceNo).
			Update("is_active", false).Error
	case BulkUpload.TypeProducts:
		err = tx.Model(&Models.Product{}).
			Where("bulk_upload_ref_no = ?", ref.ReferenceNo).
			Update("is_active", false).Error
	}
	if err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate batch records"})
	}
	if err := tx.Model(&ref).Update("status", "deleted").Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete batch"})
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete batch"})
	}
	return ctx.JSON(fiber.Map{"message": "Batch deleted"})
}
