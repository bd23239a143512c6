package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"gorm.io/gorm"
)

// OrderRepository is the order ledger.
type OrderRepository interface {
	// Create inserts a new order
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// OwnerVendor resolves the vendor owning the ordered product (orders -> product -> vendor)
	OwnerVendor(ctx context.Context, orderID int64) (int64, error)

	// UpdateStatus overwrites the order status
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error

	// HasDelivered reports whether the customer has a Delivered order on the product
	HasDelivered(ctx context.Context, customerID, productID int64) (bool, error)

	// ListByCustomer retrieves a customer's orders, newest first
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)

	// ListByVendor retrieves the orders placed on a vendor's products, newest first
	ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(order).Error, "create order")
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, notFound(err, "order")
	}
	return &order, nil
}

func (r *GormOrderRepository) OwnerVendor(ctx context.Context, orderID int64) (int64, error) {
	var row struct {
		VendorID int64
	}
	err := r.db.WithContext(ctx).
		Table(domain.Order{}.TableName()+" o").
		Select("p.vendor_id AS vendor_id").
		Joins("JOIN "+domain.Product{}.TableName()+" p ON p.id = o.product_id").
		Where("o.id = ?", orderID).
		Take(&row).Error
	if err != nil {
		return 0, notFound(err, "order owner")
	}
	return row.VendorID, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update status of order %d", id)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormOrderRepository) HasDelivered(ctx context.Context, customerID, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("customer_id = ? AND product_id = ? AND status = ?", customerID, productID, domain.OrderDelivered).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count delivered orders")
	}
	return count > 0, nil
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, errors.Wrap(err, "list orders")
}

func (r *GormOrderRepository) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Table(domain.Order{}.TableName()+" o").
		Select("o.*").
		Joins("JOIN "+domain.Product{}.TableName()+" p ON p.id = o.product_id").
		Where("p.vendor_id = ?", vendorID).
		Order("o.created_at DESC").
		Find(&orders).Error
	return orders, errors.Wrap(err, "list vendor orders")
}
