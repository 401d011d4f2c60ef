package FiberConfig

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"

	"Meridian/BulkUpload"
	"Meridian/Controllers"
	"Meridian/Models"
	"Meridian/middleware"
)

// FiberConfig builds the app, mounts every route and listens.
func FiberConfig() {
	engine := html.New("./Templates", ".html")

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 20 * 1024 * 1024,
	})

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	app.Static("/receipts", Controllers.ReceiptDir, fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{"Title": "Meridian Sales Backend"})
	})

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}

// SetupRoutes mounts the API. Staff roles write masters; field staff enter
// documents; customer accounts only read their own.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authHandler := Controllers.NewAuthHandler(db)
	branchHandler := Controllers.NewBranchHandler(db)
	customerHandler := Controllers.NewCustomerHandler(db)
	productHandler := Controllers.NewProductHandler(db)
	routeHandler := Controllers.NewRouteHandler(db)
	orderHandler := Controllers.NewOrderHandler(db)
	invoiceHandler := Controllers.NewInvoiceHandler(db)
	collectionHandler := Controllers.NewCollectionHandler(db)
	stockHandler := Controllers.NewStockHandler(db)
	reportHandler := Controllers.NewReportHandler(db)
	uploadHandler := Controllers.NewUploadHandler(db, BulkUpload.NewEngine(db, Models.Log))

	api := app.Group("/api")

	// Auth
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/user", middleware.Verify(), authHandler.User)

	// User administration
	users := api.Group("/users", middleware.Verify(Models.RoleAdmin))
	users.Get("/", authHandler.GetUsers)
	users.Post("/", authHandler.RegisterUser)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	staff := middleware.Verify(Models.RoleAdmin, Models.RoleManager, Models.RoleBackendUser)
	entry := middleware.Verify(Models.RoleAdmin, Models.RoleManager, Models.RoleFieldStaff, Models.RoleBackendUser)
	anyUser := middleware.Verify()

	// Companies and branches
	api.Get("/companies", anyUser, branchHandler.GetCompanies)
	api.Post("/companies", staff, branchHandler.CreateCompany)
	branches := api.Group("/branches")
	branches.Get("/", anyUser, branchHandler.GetBranches)
	branches.Get("/:id", anyUser, branchHandler.GetBranch)
	branches.Post("/", staff, branchHandler.CreateBranch)
	branches.Put("/:id", staff, branchHandler.UpdateBranch)
	branches.Delete("/:id", staff, branchHandler.DeleteBranch)

	// Customers
	customers := api.Group("/customers")
	customers.Get("/", entry, customerHandler.GetCustomers)
	customers.Get("/:id", entry, customerHandler.GetCustomer)
	customers.Get("/:id/purchase-pattern", entry, reportHandler.CustomerPurchasePattern)
	customers.Post("/", entry, customerHandler.CreateCustomer)
	customers.Put("/:id", staff, customerHandler.UpdateCustomer)
	customers.Delete("/:id", staff, customerHandler.DeleteCustomer)

	// Brands, products and prices
	api.Get("/brands", anyUser, productHandler.GetBrands)
	api.Post("/brands", staff, productHandler.CreateBrand)
	products := api.Group("/products")
	products.Get("/", anyUser, productHandler.GetProducts)
	products.Get("/:id", anyUser, productHandler.GetProduct)
	products.Get("/:id/prices", staff, productHandler.GetProductPrices)
	products.Get("/:id/effective-price", anyUser, productHandler.GetEffectivePrice)
	products.Post("/", staff, productHandler.CreateProduct)
	products.Post("/prices", staff, productHandler.CreateProductPrice)
	products.Put("/:id", staff, productHandler.UpdateProduct)
	products.Delete("/:id", staff, productHandler.DeleteProduct)

	// Routes and assignments
	routes := api.Group("/routes")
	routes.Get("/", entry, routeHandler.GetRoutes)
	routes.Get("/:id/customers", entry, routeHandler.GetRouteCustomers)
	routes.Get("/:id/users", staff, routeHandler.GetRouteUsers)
	routes.Post("/", staff, routeHandler.CreateRoute)
	routes.Post("/assign-customer", staff, routeHandler.AssignCustomer)
	routes.Post("/assign-user", staff, routeHandler.AssignUser)
	routes.Put("/:id", staff, routeHandler.UpdateRoute)

	// Orders
	orders := api.Group("/orders")
	orders.Get("/", anyUser, orderHandler.GetOrders)
	orders.Get("/:id", anyUser, orderHandler.GetOrder)
	orders.Post("/", entry, orderHandler.CreateOrder)
	orders.Delete("/:id", staff, orderHandler.DeleteOrder)

	// Invoices
	invoices := api.Group("/invoices")
	invoices.Get("/", anyUser, invoiceHandler.GetInvoices)
	invoices.Get("/:id", anyUser, invoiceHandler.GetInvoice)
	invoices.Post("/", entry, invoiceHandler.CreateInvoice)
	invoices.Put("/:id/payment-status", staff, invoiceHandler.UpdatePaymentStatus)
	invoices.Delete("/:id", staff, invoiceHandler.DeleteInvoice)

	// Collections
	collections := api.Group("/collections")
	collections.Get("/", anyUser, collectionHandler.GetCollections)
	collections.Get("/:id", anyUser, collectionHandler.GetCollection)
	collections.Post("/", entry, collectionHandler.CreateCollection)
	collections.Post("/:id/receipt", entry, collectionHandler.UploadReceipt)

	// Stock and outstanding snapshots
	api.Get("/daily-stock", entry, stockHandler.GetDailyStock)
	api.Get("/outstanding", entry, stockHandler.GetOutstanding)

	// Reports
	reports := api.Group("/reports", staff)
	reports.Get("/summary", reportHandler.SalesSummary)
	reports.Get("/route-wise", reportHandler.RouteWiseSales)
	reports.Get("/field-staff", reportHandler.FieldStaffSales)
	reports.Get("/brand-wise", reportHandler.BrandWiseSales)
	reports.Get("/invoice-register.xlsx", reportHandler.ExportInvoiceRegister)

	// Bulk uploads
	uploads := api.Group("/uploads", middleware.Verify(Models.RoleAdmin, Models.RoleBackendUser))
	uploads.Get("/types", uploadHandler.GetTypes)
	uploads.Get("/template/:type", uploadHandler.GetTemplate)
	uploads.Post("/:type", uploadHandler.Upload)
	uploads.Get("/batches", uploadHandler.GetBatches)
	uploads.Get("/batches/:id", uploadHandler.GetBatch)
	uploads.Delete("/batches/:id", uploadHandler.DeleteBatch)
}
