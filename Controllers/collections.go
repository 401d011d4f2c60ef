package Controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"Meridian/Models"
	"Meridian/Pricing"
	"Meridian/middleware"
)

// ReceiptDir is where normalized receipt photos land; served as static files.
const ReceiptDir = "./receipts"

// CollectionHandler contains handler methods for payment collection entry.
type CollectionHandler struct {
	DB *gorm.DB
}

func NewCollectionHandler(db *gorm.DB) *CollectionHandler {
	return &CollectionHandler{DB: db}
}

// CreateCollection saves the collection and its invoice applications in one
// transaction. Each line's balance is derived from that line alone; an
// invoice whose balance reaches zero flips to paid.
func (h *CollectionHandler) CreateCollection(ctx *fiber.Ctx) error {
	var input Models.CollectionRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.PaymentMode == Models.PayModeCheque && (input.ChequeNo == "" || input.BankName == "") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cheque payments require cheque_no and bank_name"})
	}

	collectionDate, err := dateField(input.CollectionDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "collection_date must be yyyy-mm-dd"})
	}
	chequeDate, err := optionalDate(input.ChequeDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cheque_date must be yyyy-mm-dd"})
	}

	var customer Models.Customer
	if err := h.DB.First(&customer, input.CustomerID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	collection := Models.Collection{
		CollectionNo:     Models.NewCollectionNo(),
		CollectionDate:   collectionDate,
		CustomerID:       customer.ID,
		BranchID:         input.BranchID,
		PaymentMode:      input.PaymentMode,
		PaymentReference: input.PaymentReference,
		ChequeNo:         input.ChequeNo,
		ChequeDate:       chequeDate,
		BankName:         input.BankName,
		CollectionStatus: "pending",
		Notes:            input.Notes,
	}
	if mapping, err := Models.ActiveCustomerRoute(h.DB, customer.ID); err == nil && mapping != nil {
		collection.RouteID = &mapping.RouteID
	}
	if user, ok := middleware.CurrentUser(ctx); ok {
		collection.CollectedBy = &user.ID
		if user.Role == Models.RoleFieldStaff {
			collection.FieldStaffID = &user.ID
		}
	}

	lines := make([]Models.CollectionLine, 0, len(input.Lines))
	received := decimal.Zero
	var settledInvoiceNos []string
	for _, line := range input.Lines {
		invoiceDate, err := optionalDate(line.InvoiceDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invoice_date must be yyyy-mm-dd"})
		}
		paid := Pricing.CoerceNonNegative(line.PaidAmount)
		balance := Pricing.Balance(line.InvoiceAmount, paid)
		lines = append(lines, Models.CollectionLine{
			InvoiceNo:     line.InvoiceNo,
			InvoiceDate:   invoiceDate,
			InvoiceAmount: line.InvoiceAmount,
			PaidAmount:    paid,
			BalanceAmount: balance,
			Operation:     "subtract",
			Remarks:       line.Remarks,
		})
		received = received.Add(paid)
		if balance.IsZero() && !line.InvoiceAmount.IsZero() {
			settledInvoiceNos = append(settledInvoiceNos, line.InvoiceNo)
		}
	}

	collection.Amount = input.Amount
	if collection.Amount.IsZero() {
		collection.Amount = received
	}

	tx := h.DB.Begin()
	if err := tx.Create(&collection).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create collection"})
	}
	for i := range lines {
		lines[i].CollectionID = collection.ID
	}
	if err := tx.Create(&lines).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create collection lines"})
	}
	if len(settledInvoiceNos) > 0 {
		err := tx.Model(&Models.InvoiceHeader{}).
			Where("invoice_no IN ? AND customer_id = ?", settledInvoiceNos, customer.ID).
			Update("payment_status", Models.InvoicePaid).Error
		if err != nil {
			tx.Rollback()
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to settle invoices"})
		}
	}
	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save collection"})
	}

	collection.Lines = lines
	return ctx.Status(fiber.StatusCreated).JSON(collection)
}

// GetCollections lists collections with filters and pagination.
func (h *CollectionHandler) GetCollections(ctx *fiber.Ctx) error {
	page, pageSize := pagination(ctx)

	query := h.DB.Model(&Models.Collection{}).Preload("Customer")
	if customerID := ctx.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if mode := ctx.Query("payment_mode"); mode != "" {
		query = query.Where("payment_mode = ?", mode)
	}
	if from := ctx.Query("from"); from != "" {
		query = query.Where("collection_date >= ?", from)
	}
	if to := ctx.Query("to"); to != "" {
		query = query.Where("collection_date <= ?", to)
	}
	if user, ok := middleware.CurrentUser(ctx); ok && user.Role == Models.RoleCustomer && user.CustomerID != nil {
		query = query.Where("customer_id = ?", *user.CustomerID)
	}

	var total int64
	query.Count(&total)

	var collections []Models.Collection
	err := query.Order("collection_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&collections).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve collections"})
	}

	return ctx.JSON(fiber.Map{
		"data":      collections,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *CollectionHandler) GetCollection(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid collection ID"})
	}
	var collection Models.Collection
	err = h.DB.Preload("Customer").Preload("Lines").First(&collection, id).Error
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Collection not found"})
	}
	return ctx.JSON(collection)
}

// UploadReceipt attaches a receipt photo to a collection. The image is
// re-encoded and capped at 1200px wide so phone camera uploads stay small.
func (h *CollectionHandler) UploadReceipt(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid collection ID"})
	}
	var collection Models.Collection
	if err := h.DB.First(&collection, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Collection not found"})
	}

	fileHeader, err := ctx.FormFile("receipt")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "receipt file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read uploaded file"})
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file is not a valid image"})
	}
	if img.Bounds().Dx() > 1200 {
		img = imaging.Resize(img, 1200, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(ReceiptDir, 0755); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store receipt"})
	}
	fileName := fmt.Sprintf("%s-%d.jpg", collection.CollectionNo, time.Now().Unix())
	if err := imaging.Save(img, filepath.Join(ReceiptDir, fileName), imaging.JPEGQuality(85)); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store receipt"})
	}

	now := time.Now()
	updates := map[string]interface{}{
		"image_url":         "/receipts/" + fileName,
		"image_uploaded_at": now,
	}
	if err := h.DB.Model(&collection).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save receipt reference"})
	}
	return ctx.JSON(fiber.Map{"message": "Receipt uploaded", "image_url": "/receipts/" + fileName})
}
