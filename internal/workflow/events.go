package workflow

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/vendorhub/internal/domain"
)

// Event bus topics
const (
	TopicOrderPlaced        = "order:placed"
	TopicOrderStatusChanged = "order:status"
	TopicReviewSubmitted    = "review:submitted"
	TopicProductAdded       = "product:added"
)

type OrderPlaced struct {
	OrderID    int64
	CustomerID int64
	ProductID  int64
	Quantity   int
	Amount     decimal.Decimal
	At         time.Time
}

type OrderStatusChanged struct {
	OrderID  int64
	VendorID int64
	From     domain.OrderStatus
	To       domain.OrderStatus
	At       time.Time
}

type ReviewSubmitted struct {
	ReviewID  int64
	VendorID  int64
	ProductID int64
	Rating    int
	AvgRating *float64
	At        time.Time
}

type ProductAdded struct {
	ProductID int64
	VendorID  int64
	At        time.Time
}
