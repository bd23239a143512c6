package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PartyRepository looks up vendors and customers.
type PartyRepository interface {
	GetVendor(ctx context.Context, id int64) (*domain.Vendor, error)
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	// LockVendor reads the vendor row FOR UPDATE, holding it until the transaction ends
	LockVendor(ctx context.Context, id int64) (*domain.Vendor, error)
	CreateVendor(ctx context.Context, vendor *domain.Vendor) error
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
}

type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

func (r *GormPartyRepository) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFound(err, "vendor")
	}
	return &v, nil
}

// LockVendor serializes writers of vendor-derived rows such as the reputation.
// SQLite has no row locks; its single writer gives the same ordering.
func (r *GormPartyRepository) LockVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&v, id).Error
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	return &v, nil
}

func (r *GormPartyRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "customer")
	}
	return &c, nil
}

func (r *GormPartyRepository) CreateVendor(ctx context.Context, vendor *domain.Vendor) error {
	err := r.db.WithContext(ctx).Create(vendor).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "create vendor")
}

func (r *GormPartyRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	err := r.db.WithContext(ctx).Create(customer).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "create customer")
}
