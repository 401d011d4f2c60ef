package BulkUpload

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Meridian/Models"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	Models.Migrate(db)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewEngine(db, log)
}

func seedBranch(t *testing.T, e *Engine, name string) Models.Branch {
	t.Helper()
	b := Models.Branch{BranchCode: strings.ToUpper(name[:3]) + "01", BranchName: name, IsActive: true}
	if err := e.DB.Create(&b).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	return b
}

func seedProduct(t *testing.T, e *Engine, code, name string) Models.Product {
	t.Helper()
	p := Models.Product{ProductCode: code, ProductName: name, UnitOfMeasure: "pcs", GstRate: decimal.NewFromInt(18), IsActive: true}
	if err := e.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedCustomer(t *testing.T, e *Engine, code, name string) Models.Customer {
	t.Helper()
	c := Models.Customer{CustomerCode: code, CustomerName: name, CustomerType: "retail", IsActive: true}
	if err := e.DB.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedRoute(t *testing.T, e *Engine, code, name string) Models.Route {
	t.Helper()
	r := Models.Route{RouteCode: code, RouteName: name, IsActive: true}
	if err := e.DB.Create(&r).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}
	return r
}

func hasError(res *Result, want string) bool {
	for _, e := range res.Errors {
		if e == want {
			return true
		}
	}
	return false
}

func TestRun_UnknownType(t *testing.T) {
	e := testEngine(t)
	if _, err := e.Run("payroll", "x.csv", []byte("a,b\n1,2\n"), nil); err == nil {
		t.Fatal("expected error for unknown upload type")
	}
}

// A mid-file failure must not take down the rows around it, and the reported
// line number counts the header as line 1.
func TestDailyStock_PartialFailure(t *testing.T) {
	e := testEngine(t)
	seedBranch(t, e, "Chennai")
	seedProduct(t, e, "P-100", "Engine Oil 1L")

	content := "branch_name,product_code,quantity,uploaded_date\n" +
		"Chennai,P-100,40,2026-08-01\n" +
		"Chennai,NOPE,10,2026-08-01\n" +
		"Chennai,P-100,25,2026-08-02\n"

	res, err := e.Run(TypeDailyStock, "stock.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 2 || res.Failed != 1 || res.Total != 3 {
		t.Fatalf("got success=%d failed=%d total=%d, want 2/1/3", res.Success, res.Failed, res.Total)
	}
	if !hasError(res, `Line 3: Product "NOPE" not found`) {
		t.Fatalf("missing line-3 error, got %v", res.Errors)
	}

	var count int64
	e.DB.Model(&Models.DailyStock{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 stock rows, got %d", count)
	}
}

func TestDailyStock_MissingFieldsAndBranch(t *testing.T) {
	e := testEngine(t)
	seedProduct(t, e, "P-100", "Engine Oil 1L")

	content := "branch_name,product_code,quantity,uploaded_date\n" +
		",P-100,10,\n" +
		"Ghost Branch,P-100,10,\n"

	res, err := e.Run(TypeDailyStock, "stock.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 0 || res.Failed != 2 {
		t.Fatalf("got success=%d failed=%d, want 0/2", res.Success, res.Failed)
	}
	if !hasError(res, "Line 2: Missing required fields") {
		t.Fatalf("missing required-fields error, got %v", res.Errors)
	}
	if !hasError(res, `Line 3: Branch "Ghost Branch" not found`) {
		t.Fatalf("missing branch error, got %v", res.Errors)
	}
}

// The reference record is written even when every row fails, so failed
// attempts stay auditable.
func TestRun_ReferenceWrittenOnTotalFailure(t *testing.T) {
	e := testEngine(t)

	content := "branch_name,product_code,quantity,uploaded_date\n" +
		"Nowhere,P-1,5,\n"

	res, err := e.Run(TypeDailyStock, "bad.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 0 || res.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 0/1", res.Success, res.Failed)
	}

	var ref Models.BulkUploadRef
	if err := e.DB.Where("reference_no = ?", res.ReferenceNo).First(&ref).Error; err != nil {
		t.Fatalf("reference not written: %v", err)
	}
	if ref.FailedRecords != 1 || ref.TotalRecords != 1 || ref.SuccessRecords != 0 {
		t.Fatalf("reference counts wrong: %+v", ref)
	}
	if ref.FileName != "bad.csv" || ref.UploadType != TypeDailyStock {
		t.Fatalf("reference metadata wrong: %+v", ref)
	}
	if !strings.Contains(string(ref.ErrorLog), "not found") {
		t.Fatalf("error log not persisted: %s", ref.ErrorLog)
	}
}

func TestCustomers_HeaderMappedWithRoute(t *testing.T) {
	e := testEngine(t)
	route := seedRoute(t, e, "RT-01", "North Loop")

	// Columns deliberately reordered; mapping is by header name.
	content := "customer_name,route_code,customer_code,mobile_no\n" +
		"Sri Ganesh Traders,RT-01,C-001,9876543210\n" +
		"Lakshmi Stores,,C-002,9876500000\n" +
		",RT-01,C-003,9876511111\n"

	res, err := e.Run(TypeCustomers, "customers.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 2 || res.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 2/1", res.Success, res.Failed)
	}
	if !hasError(res, "Line 4: Missing required fields") {
		t.Fatalf("missing line-4 error, got %v", res.Errors)
	}

	var c Models.Customer
	if err := e.DB.Where("customer_code = ?", "C-001").First(&c).Error; err != nil {
		t.Fatalf("customer not created: %v", err)
	}
	if c.CustomerName != "Sri Ganesh Traders" || c.MobileNo != "9876543210" {
		t.Fatalf("header mapping broken: %+v", c)
	}
	if c.BulkUploadRefNo != res.ReferenceNo {
		t.Fatalf("customer not tagged with reference, got %q", c.BulkUploadRefNo)
	}

	mapping, err := Models.ActiveCustomerRoute(e.DB, c.ID)
	if err != nil || mapping == nil {
		t.Fatalf("route mapping missing: %v", err)
	}
	if mapping.RouteID != route.ID {
		t.Fatalf("mapped to route %d, want %d", mapping.RouteID, route.ID)
	}
}

func TestCustomers_UnknownRouteKeepsCustomer(t *testing.T) {
	e := testEngine(t)

	content := "customer_code,customer_name,route_code\n" +
		"C-010,Anand Agencies,NO-SUCH\n"

	res, err := e.Run(TypeCustomers, "customers.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 1 {
		t.Fatalf("customer should still insert, got success=%d", res.Success)
	}
	if !hasError(res, `Line 2: Route "NO-SUCH" not found`) {
		t.Fatalf("missing route error, got %v", res.Errors)
	}
}

func TestProducts_DefaultsAndBrand(t *testing.T) {
	e := testEngine(t)
	brand := Models.Brand{BrandCode: "BR1", BrandName: "Meridian Lubes", IsActive: true}
	if err := e.DB.Create(&brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}

	content := "product_code,product_name,brand_name,category,unit_of_measure,hsn_code,gst_rate,qty_in_ltr,description\n" +
		"P-200,Gear Oil 5L,meridian lubes,Lubricants,can,3403,28,5,Heavy duty\n" +
		"P-201,Coolant 1L,Unknown Brand,,,,\n"

	res, err := e.Run(TypeProducts, "products.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 2 || res.Failed != 0 {
		t.Fatalf("got success=%d failed=%d, want 2/0", res.Success, res.Failed)
	}

	var p1, p2 Models.Product
	if err := e.DB.Where("product_code = ?", "P-200").First(&p1).Error; err != nil {
		t.Fatalf("P-200 missing: %v", err)
	}
	if p1.BrandID == nil || *p1.BrandID != brand.ID {
		t.Fatalf("brand not resolved case-insensitively: %+v", p1.BrandID)
	}
	if !p1.GstRate.Equal(decimal.NewFromInt(28)) || p1.UnitOfMeasure != "can" {
		t.Fatalf("explicit fields lost: %+v", p1)
	}

	if err := e.DB.Where("product_code = ?", "P-201").First(&p2).Error; err != nil {
		t.Fatalf("P-201 missing: %v", err)
	}
	if p2.BrandID != nil {
		t.Fatal("unknown brand should leave product brandless")
	}
	if p2.UnitOfMeasure != "pcs" || !p2.GstRate.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("defaults not applied: uom=%q gst=%s", p2.UnitOfMeasure, p2.GstRate)
	}
}

func TestOutstanding_Load(t *testing.T) {
	e := testEngine(t)
	seedBranch(t, e, "Chennai")
	seedCustomer(t, e, "C-001", "Sri Ganesh Traders")

	content := "as_on_date,branch_name,customer_name,dr_amount,cr_amount,balance,less_than_45,greater_than_45,greater_than_60,greater_than_90,greater_than_120\n" +
		"2026-08-31,Chennai,Sri Ganesh Traders,12000,2000,10000,4000,3000,2000,500,500\n" +
		"2026-08-31,Chennai,Ghost Customer,500,0,500,500,0,0,0,0\n"

	res, err := e.Run(TypeOutstanding, "ageing.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 1 || res.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 1/1", res.Success, res.Failed)
	}
	if !hasError(res, `Line 3: Customer "Ghost Customer" not found`) {
		t.Fatalf("missing customer error, got %v", res.Errors)
	}

	var rec Models.AgeWiseOutstanding
	if err := e.DB.First(&rec).Error; err != nil {
		t.Fatalf("record missing: %v", err)
	}
	if !rec.Balance.Equal(decimal.NewFromInt(10000)) || !rec.GreaterThan120.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("amounts wrong: %+v", rec)
	}
}

func TestRouteCustomers_Upsert(t *testing.T) {
	e := testEngine(t)
	c := seedCustomer(t, e, "C-001", "Sri Ganesh Traders")
	r1 := seedRoute(t, e, "RT-01", "North Loop")
	r2 := seedRoute(t, e, "RT-02", "South Loop")

	first := "customer_name,route_name\nSri Ganesh Traders,North Loop\n"
	if _, err := e.Run(TypeRouteCustomers, "m1.csv", []byte(first), nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second := "customer_name,route_name\nSri Ganesh Traders,South Loop\n"
	res, err := e.Run(TypeRouteCustomers, "m2.csv", []byte(second), nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Success != 1 {
		t.Fatalf("got success=%d, want 1", res.Success)
	}

	var count int64
	e.DB.Model(&Models.RouteCustomerMapping{}).Where("customer_id = ?", c.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected single mapping row after re-upload, got %d", count)
	}
	mapping, _ := Models.ActiveCustomerRoute(e.DB, c.ID)
	if mapping == nil || mapping.RouteID != r2.ID {
		t.Fatalf("mapping not moved to %d (%d): %+v", r2.ID, r1.ID, mapping)
	}
}

func TestRouteUsers_InsertIfAbsent(t *testing.T) {
	e := testEngine(t)
	u := Models.User{FullName: "Ravi Kumar", MobileNo: "9000011111", PasswordHash: []byte("x"), Role: Models.RoleFieldStaff, IsActive: true}
	if err := e.DB.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	seedRoute(t, e, "RT-01", "North Loop")

	content := "user_mobile,route_name\n9000011111,North Loop\n9000011111,North Loop\n9999999999,North Loop\n"
	res, err := e.Run(TypeRouteUsers, "staff.csv", []byte(content), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Success != 2 || res.Failed != 1 {
		t.Fatalf("got success=%d failed=%d, want 2/1", res.Success, res.Failed)
	}
	if !hasError(res, `Line 4: User "9999999999" not found`) {
		t.Fatalf("missing user error, got %v", res.Errors)
	}

	var count int64
	e.DB.Model(&Models.UserRouteMapping{}).Where("user_id = ?", u.ID).Count(&count)
	if count != 1 {
		t.Fatalf("duplicate row should not insert twice, got %d", count)
	}
}

func TestTemplate_KnownTypes(t *testing.T) {
	for _, typ := range Types() {
		header, err := Template(typ)
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		if header == "" || strings.Contains(header, " ") {
			t.Fatalf("%s: suspicious template %q", typ, header)
		}
	}
	if _, err := Template("unknown"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
