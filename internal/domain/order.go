package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderProcessing,
	OrderShipped,
	OrderDelivered,
	OrderCancelled,
}

// ParseOrderStatus matches s case-insensitively against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range OrderStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Order is a customer purchase of a single product.
type Order struct {
	ID         int64       `json:"id,string"`
	CustomerID int64       `gorm:"index:idx_order_customer_product;not null" json:"customer_id,string"`
	ProductID  int64       `gorm:"index:idx_order_customer_product;not null" json:"product_id,string"`
	Quantity   int         `gorm:"not null" json:"quantity"`
	Status     OrderStatus `gorm:"size:20;index;not null" json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

type PaymentMethod string

const (
	PaymentUPI        PaymentMethod = "UPI"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentCash       PaymentMethod = "Cash"
	PaymentWallet     PaymentMethod = "Wallet"
)

var PaymentMethods = []PaymentMethod{
	PaymentUPI,
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentCash,
	PaymentWallet,
}

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	s = strings.TrimSpace(s)
	for _, m := range PaymentMethods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}

const PaymentCompleted = "Completed"

// Payment settles exactly one order and is never modified after creation.
type Payment struct {
	ID         int64           `json:"id,string"`
	OrderID    int64           `gorm:"uniqueIndex;not null" json:"order_id,string"`
	CustomerID int64           `gorm:"index;not null" json:"customer_id,string"`
	Method     PaymentMethod   `gorm:"size:20" json:"method"`
	Status     string          `gorm:"size:20" json:"status"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Payment) TableName() string {
	return "payment"
}
