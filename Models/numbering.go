package Models

import (
	"fmt"
	"math/rand"
	"time"
)

// Document numbers use the <PREFIX>-<millisecond timestamp> shape. Two saves
// in the same millisecond would collide; an acknowledged weakness, kept.

func NewOrderNo() string {
	return fmt.Sprintf("ORD-%d", time.Now().UnixMilli())
}

func NewInvoiceNo() string {
	return fmt.Sprintf("INV-%d", time.Now().UnixMilli())
}

func NewCollectionNo() string {
	return fmt.Sprintf("COL-%d", time.Now().UnixMilli())
}

// NewBulkUploadRefNo returns BU-<yyyymmdd>-<5 random digits>.
func NewBulkUploadRefNo() string {
	return fmt.Sprintf("BU-%s-%d", time.Now().Format("20060102"), 10000+rand.Intn(90000))
}
