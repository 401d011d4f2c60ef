package Controllers

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"Meridian/Models"
)

func TestCreateCollection_SettlesInvoice(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)
	invoice := Models.InvoiceHeader{
		InvoiceNo:     "INV-10",
		InvoiceDate:   time.Now(),
		CustomerID:    customer.ID,
		InvoiceStatus: "confirmed",
		PaymentStatus: Models.InvoicePending,
		NetAmount:     decimal.NewFromInt(5000),
	}
	db.Create(&invoice)

	app := fiber.New()
	h := NewCollectionHandler(db)
	app.Post("/collections", h.CreateCollection)

	resp := jsonRequest(t, app, "POST", "/collections", fiber.Map{
		"collection_date": "2026-08-20",
		"customer_id":     customer.ID,
		"payment_mode":    "cash",
		"lines": []fiber.Map{
			{
				"invoice_no":      "INV-10",
				"invoice_amount":  "5000",
				"received_amount": "5000",
			},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var col Models.Collection
	decodeBody(t, resp, &col)
	if col.CollectionNo == "" {
		t.Fatal("collection number not assigned")
	}
	// amount defaults to the sum of received amounts
	if !col.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("amount = %s, want 5000", col.Amount)
	}
	if len(col.Lines) != 1 || !col.Lines[0].BalanceAmount.IsZero() {
		t.Fatalf("line balance wrong: %+v", col.Lines)
	}

	var settled Models.InvoiceHeader
	db.Where("invoice_no = ?", "INV-10").First(&settled)
	if settled.PaymentStatus != Models.InvoicePaid {
		t.Fatalf("invoice status = %q, want paid", settled.PaymentStatus)
	}
}

func TestCreateCollection_PartialPaymentKeepsPending(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)
	invoice := Models.InvoiceHeader{
		InvoiceNo:     "INV-11",
		InvoiceDate:   time.Now(),
		CustomerID:    customer.ID,
		InvoiceStatus: "confirmed",
		PaymentStatus: Models.InvoicePending,
		NetAmount:     decimal.NewFromInt(5000),
	}
	db.Create(&invoice)

	app := fiber.New()
	h := NewCollectionHandler(db)
	app.Post("/collections", h.CreateCollection)

	resp := jsonRequest(t, app, "POST", "/collections", fiber.Map{
		"collection_date": "2026-08-20",
		"customer_id":     customer.ID,
		"payment_mode":    "upi",
		"lines": []fiber.Map{
			{
				"invoice_no":      "INV-11",
				"invoice_amount":  "5000",
				"received_amount": "3000",
			},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var col Models.Collection
	decodeBody(t, resp, &col)
	if !col.Lines[0].BalanceAmount.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("balance = %s, want 2000", col.Lines[0].BalanceAmount)
	}

	var inv Models.InvoiceHeader
	db.Where("invoice_no = ?", "INV-11").First(&inv)
	if inv.PaymentStatus != Models.InvoicePending {
		t.Fatalf("partial payment must not settle: %q", inv.PaymentStatus)
	}
}

func TestCreateCollection_ChequeNeedsDetails(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)

	app := fiber.New()
	h := NewCollectionHandler(db)
	app.Post("/collections", h.CreateCollection)

	resp := jsonRequest(t, app, "POST", "/collections", fiber.Map{
		"collection_date": "2026-08-20",
		"customer_id":     customer.ID,
		"payment_mode":    "cheque",
		"lines": []fiber.Map{
			{"invoice_no": "INV-12", "invoice_amount": "100", "received_amount": "100"},
		},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateCollection_RejectsUnknownMode(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)

	app := fiber.New()
	h := NewCollectionHandler(db)
	app.Post("/collections", h.CreateCollection)

	resp := jsonRequest(t, app, "POST", "/collections", fiber.Map{
		"collection_date": "2026-08-20",
		"customer_id":     customer.ID,
		"payment_mode":    "barter",
		"lines": []fiber.Map{
			{"invoice_no": "INV-13", "invoice_amount": "100", "received_amount": "100"},
		},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
