package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingPoint is the part of a review the reputation aggregator reads.
type RatingPoint struct {
	Rating    int
	CreatedAt time.Time
}

// ReviewRepository is the append-only review store.
type ReviewRepository interface {
	// Create inserts a review. Returns ErrDuplicate if the customer already reviewed the product.
	Create(ctx context.Context, review *domain.Review) error

	// Exists reports whether the customer has reviewed the product
	Exists(ctx context.Context, customerID, productID int64) (bool, error)

	// RatingsForVendor returns every rating currently on file for the vendor
	RatingsForVendor(ctx context.Context, vendorID int64) ([]RatingPoint, error)

	// ListByVendor retrieves a vendor's reviews, newest first
	ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Review, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "create review")
}

func (r *GormReviewRepository) Exists(ctx context.Context, customerID, productID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count reviews")
	}
	return count > 0, nil
}

func (r *GormReviewRepository) RatingsForVendor(ctx context.Context, vendorID int64) ([]RatingPoint, error) {
	var points []RatingPoint
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("rating, created_at").
		Where("vendor_id = ?", vendorID).
		Find(&points).Error
	return points, errors.Wrap(err, "load vendor ratings")
}

func (r *GormReviewRepository) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Review, error) {
	var reviews []*domain.Review
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, errors.Wrap(err, "list reviews")
}

// ReputationRepository stores the derived vendor reputation view.
type ReputationRepository interface {
	// Save upserts the reputation row for rep.VendorID
	Save(ctx context.Context, rep *domain.VendorReputation) error

	// Get returns the stored reputation, or ErrNotFound if never computed
	Get(ctx context.Context, vendorID int64) (*domain.VendorReputation, error)
}

type GormReputationRepository struct {
	db *gorm.DB
}

func NewGormReputationRepository(db *gorm.DB) *GormReputationRepository {
	return &GormReputationRepository{db: db}
}

func (r *GormReputationRepository) Save(ctx context.Context, rep *domain.VendorReputation) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"avg_review_rating", "last_feedback_at", "review_count", "updated_at"}),
		}).
		Create(rep).Error
	return errors.Wrap(err, "save vendor reputation")
}

func (r *GormReputationRepository) Get(ctx context.Context, vendorID int64) (*domain.VendorReputation, error) {
	var rep domain.VendorReputation
	if err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&rep).Error; err != nil {
		return nil, notFound(err, "vendor reputation")
	}
	return &rep, nil
}
