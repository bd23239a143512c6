package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock is returned by a conditional decrement that matched no row.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicate is returned when a uniqueness constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the repositories over one gorm handle. A Store obtained inside
// Transaction is bound to that transaction, so every repository it hands out
// reads and writes within the same unit of work.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn in a database transaction. fn's error rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Products() ProductRepository {
	return &GormProductRepository{db: s.db}
}

func (s *Store) Parties() PartyRepository {
	return &GormPartyRepository{db: s.db}
}

func (s *Store) Orders() OrderRepository {
	return &GormOrderRepository{db: s.db}
}

func (s *Store) Payments() PaymentRepository {
	return &GormPaymentRepository{db: s.db}
}

func (s *Store) Reviews() ReviewRepository {
	return &GormReviewRepository{db: s.db}
}

func (s *Store) Reputations() ReputationRepository {
	return &GormReputationRepository{db: s.db}
}

func (s *Store) Audit() AuditRepository {
	return &GormAuditRepository{db: s.db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return errors.Wrapf(err, "query %s", what)
}

// isUniqueViolation recognises unique-constraint failures from postgres and sqlite,
// whether or not gorm's error translation is enabled.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "sqlstate 23505")
}
