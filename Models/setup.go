package Models

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// Connect opens the database and runs migrations. DB_DSN selects MySQL;
// without it a local sqlite file is used so the server runs out of the box.
func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		Log.Info("no .env file, using environment defaults")
	}

	var err error
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		dbFile := os.Getenv("DB_FILE")
		if dbFile == "" {
			dbFile = "database.db"
		}
		DB, err = gorm.Open(sqlite.Open(dbFile), &gorm.Config{})
	}
	if err != nil {
		Log.Fatalf("database connection failed: %v", err)
	}

	Migrate(DB)
}

// Migrate runs AutoMigrate in dependency order. Split into its own function so
// tests can run it against their own connection.
func Migrate(db *gorm.DB) {
	// 1. Masters with no dependencies
	db.AutoMigrate(
		&Company{},
		&User{},
		&Brand{},
		&Route{},
	)

	// 2. Masters with simple foreign keys
	db.AutoMigrate(
		&Branch{},   // depends on Company
		&Customer{}, // route association lives in RouteCustomerMapping
		&Product{},  // depends on Brand
		&ProductPrice{},
		&RouteCustomerMapping{},
		&UserRouteMapping{},
	)

	// 3. Documents and uploads
	db.AutoMigrate(
		&SaleOrderHeader{},
		&SaleOrderDetail{},
		&InvoiceHeader{},
		&InvoiceDetail{},
		&Collection{},
		&CollectionLine{},
		&DailyStock{},
		&AgeWiseOutstanding{},
		&BulkUploadRef{},
	)
}
