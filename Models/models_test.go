package Models

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	Migrate(db)
	return db
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEffectivePrice_WindowBounds(t *testing.T) {
	db := testDB(t)
	p := Product{ProductCode: "P-1", ProductName: "Engine Oil 1L", UnitOfMeasure: "pcs", IsActive: true}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	to := day("2026-06-30")
	db.Create(&ProductPrice{
		ProductID:     p.ID,
		CustomerType:  "retail",
		Price:         decimal.NewFromInt(100),
		EffectiveFrom: day("2026-01-01"),
		EffectiveTo:   &to,
		IsActive:      true,
	})

	cases := []struct {
		date  string
		found bool
	}{
		{"2025-12-31", false},
		{"2026-01-01", true},
		{"2026-06-30", true},
		{"2026-07-01", false},
	}
	for _, c := range cases {
		price, err := EffectivePrice(db, p.ID, "retail", day(c.date))
		if err != nil {
			t.Fatalf("%s: %v", c.date, err)
		}
		if (price != nil) != c.found {
			t.Fatalf("%s: found=%v, want %v", c.date, price != nil, c.found)
		}
	}
}

func TestEffectivePrice_OpenEndedAndType(t *testing.T) {
	db := testDB(t)
	p := Product{ProductCode: "P-1", ProductName: "Engine Oil 1L", UnitOfMeasure: "pcs", IsActive: true}
	db.Create(&p)
	db.Create(&ProductPrice{
		ProductID:     p.ID,
		CustomerType:  "wholesale",
		Price:         decimal.NewFromInt(90),
		EffectiveFrom: day("2026-01-01"),
		IsActive:      true,
	})

	price, err := EffectivePrice(db, p.ID, "wholesale", day("2030-01-01"))
	if err != nil || price == nil {
		t.Fatalf("open-ended row should stay effective: %v", err)
	}

	price, err = EffectivePrice(db, p.ID, "retail", day("2026-02-01"))
	if err != nil {
		t.Fatalf("retail lookup: %v", err)
	}
	if price != nil {
		t.Fatal("price for another customer type must not leak")
	}
}

func TestEffectivePrice_OverlapPicksNewest(t *testing.T) {
	db := testDB(t)
	p := Product{ProductCode: "P-1", ProductName: "Engine Oil 1L", UnitOfMeasure: "pcs", IsActive: true}
	db.Create(&p)
	db.Create(&ProductPrice{
		ProductID: p.ID, CustomerType: "retail",
		Price: decimal.NewFromInt(100), EffectiveFrom: day("2026-01-01"), IsActive: true,
	})
	db.Create(&ProductPrice{
		ProductID: p.ID, CustomerType: "retail",
		Price: decimal.NewFromInt(110), EffectiveFrom: day("2026-03-01"), IsActive: true,
	})

	price, err := EffectivePrice(db, p.ID, "retail", day("2026-04-01"))
	if err != nil || price == nil {
		t.Fatalf("lookup: %v", err)
	}
	if !price.Price.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("overlap resolved to %s, want newest effective_from (110)", price.Price)
	}
}

func TestAssignCustomerRoute_SingleActiveRow(t *testing.T) {
	db := testDB(t)
	c := Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&c)
	r1 := Route{RouteCode: "RT-1", RouteName: "North Loop", IsActive: true}
	r2 := Route{RouteCode: "RT-2", RouteName: "South Loop", IsActive: true}
	db.Create(&r1)
	db.Create(&r2)

	if err := AssignCustomerRoute(db, c.ID, r1.ID, true); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if err := AssignCustomerRoute(db, c.ID, r2.ID, true); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	var count int64
	db.Model(&RouteCustomerMapping{}).Where("customer_id = ?", c.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one mapping row, got %d", count)
	}

	mapping, err := ActiveCustomerRoute(db, c.ID)
	if err != nil || mapping == nil {
		t.Fatalf("active route: %v", err)
	}
	if mapping.RouteID != r2.ID {
		t.Fatalf("active route is %d, want %d", mapping.RouteID, r2.ID)
	}
	if mapping.Route.RouteName != "South Loop" {
		t.Fatalf("route not preloaded: %+v", mapping.Route)
	}
}

func TestActiveCustomerRoute_NoneIsNil(t *testing.T) {
	db := testDB(t)
	c := Customer{CustomerCode: "C-1", CustomerName: "Sri Ganesh Traders", CustomerType: "retail", IsActive: true}
	db.Create(&c)

	mapping, err := ActiveCustomerRoute(db, c.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if mapping != nil {
		t.Fatalf("expected nil mapping, got %+v", mapping)
	}
}

func TestNumberFormats(t *testing.T) {
	cases := []struct {
		got     string
		pattern string
	}{
		{NewOrderNo(), `^ORD-\d{13}$`},
		{NewInvoiceNo(), `^INV-\d{13}$`},
		{NewCollectionNo(), `^COL-\d{13}$`},
		{NewBulkUploadRefNo(), `^BU-\d{8}-\d{5}$`},
	}
	for _, c := range cases {
		if !regexp.MustCompile(c.pattern).MatchString(c.got) {
			t.Fatalf("%q does not match %s", c.got, c.pattern)
		}
	}
}
