package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the catalog store. It is the only writer of product stock.
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// DecrementStock removes quantity units from stock only if at least that many remain.
	// Returns ErrInsufficientStock when the guard rejects the update.
	DecrementStock(ctx context.Context, id int64, quantity int) error

	// ListByVendor retrieves a vendor's products
	ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Product, error)
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(product).Error, "create product")
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err, "product")
	}
	return &product, nil
}

func (r *GormProductRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "decrement stock of product %d", id)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (r *GormProductRepository) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id DESC").
		Find(&products).Error
	return products, errors.Wrap(err, "list products")
}
