package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/pkg/common"
	"go.uber.org/zap"
)

type SubmitReviewInput struct {
	CustomerID int64
	ProductID  int64
	Rating     int
	Sentiment  string
	Comment    string
}

type ReviewResult struct {
	ReviewID  int64    `json:"review_id,string"`
	VendorID  int64    `json:"vendor_id,string"`
	AvgRating *float64 `json:"avg_rating"`
}

// SubmitReview records a customer's review of a product it received and recomputes
// the vendor's reputation in the same transaction.
func (s *Service) SubmitReview(ctx context.Context, actor Actor, in SubmitReviewInput) (*ReviewResult, error) {
	const op = "submit_review"
	if err := actor.actingAs(op, RoleCustomer, in.CustomerID); err != nil {
		return nil, err
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return nil, newError(op, KindInvalidInput, "rating must be between %d and %d, got %d",
			domain.MinRating, domain.MaxRating, in.Rating)
	}
	sentiment, ok := domain.ParseSentiment(in.Sentiment)
	if !ok {
		return nil, newError(op, KindInvalidInput, "unknown sentiment %q", in.Sentiment)
	}

	var (
		result *ReviewResult
		event  ReviewSubmitted
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		product, err := tx.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return lookupErr(op, "product", in.ProductID, err)
		}
		// reviews of one vendor recompute in lock order, so each sees the previous commit
		if _, err := tx.Parties().LockVendor(ctx, product.VendorID); err != nil {
			return lookupErr(op, "vendor", product.VendorID, err)
		}
		delivered, err := tx.Orders().HasDelivered(ctx, in.CustomerID, in.ProductID)
		if err != nil {
			return err
		}
		if !delivered {
			return newError(op, KindNotEligible, "customer %d has no delivered order for product %d",
				in.CustomerID, in.ProductID)
		}
		exists, err := tx.Reviews().Exists(ctx, in.CustomerID, in.ProductID)
		if err != nil {
			return err
		}
		if exists {
			return duplicateReview(op, in)
		}

		s.beforeGuardedWrite(ctx, tx)

		now := s.now()
		review := &domain.Review{
			ID:         common.UUIDint64(),
			CustomerID: in.CustomerID,
			ProductID:  product.ID,
			VendorID:   product.VendorID,
			Rating:     in.Rating,
			Sentiment:  sentiment,
			Comment:    strings.TrimSpace(in.Comment),
			CreatedAt:  now,
		}
		// a concurrent submission that passed Exists is stopped here by the unique index
		if err := tx.Reviews().Create(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return duplicateReview(op, in)
			}
			return err
		}

		rep, err := s.Recompute(ctx, tx, product.VendorID)
		if err != nil {
			return err
		}
		if err := tx.Audit().Record(ctx,
			s.audit(actor, "review", domain.AuditInsert, review.ID, itoa(review.Rating)),
		); err != nil {
			return err
		}

		result = &ReviewResult{
			ReviewID:  review.ID,
			VendorID:  product.VendorID,
			AvgRating: rep.AvgReviewRating,
		}
		event = ReviewSubmitted{
			ReviewID:  review.ID,
			VendorID:  product.VendorID,
			ProductID: product.ID,
			Rating:    review.Rating,
			AvgRating: rep.AvgReviewRating,
			At:        now,
		}
		return nil
	})
	if err != nil {
		return nil, s.finish(op, err)
	}

	zap.L().Info("review submitted",
		zap.String("namespace", "workflow"),
		zap.Int64("review_id", result.ReviewID),
		zap.Int64("vendor_id", result.VendorID),
		zap.Int("rating", in.Rating),
	)
	s.publish(TopicReviewSubmitted, event)
	return result, nil
}

func duplicateReview(op string, in SubmitReviewInput) error {
	return newError(op, KindDuplicateReview, "customer %d already reviewed product %d",
		in.CustomerID, in.ProductID)
}
