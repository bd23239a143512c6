package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"gorm.io/gorm"
)

// PaymentRepository is the payment ledger. Payments are write-once.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error)
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "create payment")
}

func (r *GormPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	return &payment, nil
}
