// Package testkit opens throwaway sqlite databases and seeds marketplace rows for tests.
package testkit

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/pkg/common"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// OpenDB returns a migrated in-memory database private to the test.
// The pool is limited to one connection, which also serialises concurrent transactions.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_busy_timeout=5000", name, atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(domain.Tables...), "migrate test database")
	return db
}

func Vendor(t testing.TB, db *gorm.DB, name string) *domain.Vendor {
	t.Helper()
	v := &domain.Vendor{
		ID:           common.UUIDint64(),
		Name:         name,
		Email:        fmt.Sprintf("%s-%d@vendor.test", strings.ToLower(name), atomic.AddInt64(&dbSeq, 1)),
		BusinessType: domain.CategoryElectronics,
	}
	require.NoError(t, db.Create(v).Error)
	return v
}

func Customer(t testing.TB, db *gorm.DB, name string) *domain.Customer {
	t.Helper()
	c := &domain.Customer{
		ID:    common.UUIDint64(),
		Name:  name,
		Email: fmt.Sprintf("%s-%d@customer.test", strings.ToLower(name), atomic.AddInt64(&dbSeq, 1)),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Product(t testing.TB, db *gorm.DB, vendorID int64, price string, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		ID:       common.UUIDint64(),
		VendorID: vendorID,
		Name:     "product",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Category: domain.CategoryOthers,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func Order(t testing.TB, db *gorm.DB, customerID, productID int64, status domain.OrderStatus) *domain.Order {
	t.Helper()
	o := &domain.Order{
		ID:         common.UUIDint64(),
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   1,
		Status:     status,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

// Review inserts a review row directly, bypassing the submission workflow.
func Review(t testing.TB, db *gorm.DB, customerID, productID, vendorID int64, rating int, at time.Time) *domain.Review {
	t.Helper()
	r := &domain.Review{
		ID:         common.UUIDint64(),
		CustomerID: customerID,
		ProductID:  productID,
		VendorID:   vendorID,
		Rating:     rating,
		Sentiment:  domain.SentimentNeutral,
		CreatedAt:  at,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// Stock reads the current stock of a product.
func Stock(t testing.TB, db *gorm.DB, productID int64) int {
	t.Helper()
	var p domain.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.Stock
}

// Count returns the number of rows of model matching the optional condition.
func Count(t testing.TB, db *gorm.DB, model interface{}, query ...interface{}) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if len(query) > 0 {
		tx = tx.Where(query[0], query[1:]...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}
