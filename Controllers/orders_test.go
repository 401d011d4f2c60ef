package Controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Meridian/Models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	Models.Migrate(db)
	return db
}

func jsonRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCreateOrder_ComputesTotalsServerSide(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)
	product := Models.Product{ProductCode: "P-1", ProductName: "Engine Oil 1L", UnitOfMeasure: "pcs", GstRate: decimal.NewFromInt(18), IsActive: true}
	db.Create(&product)

	app := fiber.New()
	h := NewOrderHandler(db)
	app.Post("/orders", h.CreateOrder)

	resp := jsonRequest(t, app, "POST", "/orders", fiber.Map{
		"order_date":  "2026-08-15",
		"customer_id": customer.ID,
		"lines": []fiber.Map{
			{
				"product_id":          product.ID,
				"quantity":            "10",
				"unit_price":          "100",
				"discount_percentage": "5",
				"tax_percentage":      "18",
			},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var order Models.SaleOrderHeader
	decodeBody(t, resp, &order)
	if order.OrderNo == "" {
		t.Fatal("order number not assigned")
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("total = %s, want 1000", order.TotalAmount)
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("discount = %s, want 50", order.DiscountAmount)
	}
	if !order.TaxAmount.Equal(decimal.NewFromInt(171)) {
		t.Fatalf("tax = %s, want 171", order.TaxAmount)
	}
	if !order.NetAmount.Equal(decimal.NewFromInt(1121)) {
		t.Fatalf("net = %s, want 1121", order.NetAmount)
	}
	if len(order.Details) != 1 || order.Details[0].LineNo != 1 {
		t.Fatalf("lines wrong: %+v", order.Details)
	}
}

func TestCreateOrder_FallsBackToEffectivePrice(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "wholesale", IsActive: true}
	db.Create(&customer)
	product := Models.Product{ProductCode: "P-1", ProductName: "Engine Oil 1L", UnitOfMeasure: "pcs", GstRate: decimal.NewFromInt(18), IsActive: true}
	db.Create(&product)
	from, _ := dateField("2026-01-01")
	db.Create(&Models.ProductPrice{
		ProductID:     product.ID,
		CustomerType:  "wholesale",
		Price:         decimal.NewFromInt(80),
		EffectiveFrom: from,
		IsActive:      true,
	})

	app := fiber.New()
	h := NewOrderHandler(db)
	app.Post("/orders", h.CreateOrder)

	resp := jsonRequest(t, app, "POST", "/orders", fiber.Map{
		"order_date":  "2026-08-15",
		"customer_id": customer.ID,
		"lines": []fiber.Map{
			{"product_id": product.ID, "quantity": "5"},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var order Models.SaleOrderHeader
	decodeBody(t, resp, &order)
	if !order.Details[0].UnitPrice.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unit price = %s, want effective price 80", order.Details[0].UnitPrice)
	}
	// tax falls back to the product GST rate
	if !order.Details[0].TaxPercentage.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("tax pct = %s, want 18", order.Details[0].TaxPercentage)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("total = %s, want 400", order.TotalAmount)
	}
}

func TestCreateOrder_RejectsEmptyLines(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)

	app := fiber.New()
	h := NewOrderHandler(db)
	app.Post("/orders", h.CreateOrder)

	resp := jsonRequest(t, app, "POST", "/orders", fiber.Map{
		"order_date":  "2026-08-15",
		"customer_id": customer.ID,
		"lines":       []fiber.Map{},
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var count int64
	db.Model(&Models.SaleOrderHeader{}).Count(&count)
	if count != 0 {
		t.Fatal("rejected order must not persist")
	}
}

func TestCreateOrder_NegativeInputsCoerced(t *testing.T) {
	db := testDB(t)
	customer := Models.Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&customer)
	product := Models.Product{ProductCode: "P-1", ProductName: "Engine Oil 1L", UnitOfMeasure: "pcs", IsActive: true}
	db.Create(&product)

	app := fiber.New()
	h := NewOrderHandler(db)
	app.Post("/orders", h.CreateOrder)

	resp := jsonRequest(t, app, "POST", "/orders", fiber.Map{
		"order_date":  "2026-08-15",
		"customer_id": customer.ID,
		"lines": []fiber.Map{
			{"product_id": product.ID, "quantity": "-3", "unit_price": "100"},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var order Models.SaleOrderHeader
	decodeBody(t, resp, &order)
	if !order.Details[0].Quantity.IsZero() || !order.NetAmount.IsZero() {
		t.Fatalf("negative quantity must clamp to zero: qty=%s net=%s", order.Details[0].Quantity, order.NetAmount)
	}
}
