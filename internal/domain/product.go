package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product categories
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryGrocery     = "Grocery"
	CategoryBooks       = "Books"
	CategoryHome        = "Home"
	CategoryOthers      = "Others"
)

var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryGrocery,
	CategoryBooks,
	CategoryHome,
	CategoryOthers,
}

// Product is a catalog item owned by exactly one vendor.
// Stock is only ever changed through the catalog repository's conditional decrement.
type Product struct {
	ID          int64           `json:"id,string" form:"id"`
	VendorID    int64           `gorm:"index;not null" json:"vendor_id,string"`
	Name        string          `gorm:"size:200;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Category    string          `gorm:"size:32;index" json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "product"
}

// ParseCategory returns the canonical category name.
func ParseCategory(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(c, s) {
			return c, true
		}
	}
	return "", false
}
