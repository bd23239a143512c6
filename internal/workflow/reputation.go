package workflow

import (
	"context"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
)

// Recompute rebuilds the vendor's reputation from every review currently on file
// and stores it through tx. Callers hold the vendor lock (LockVendor) so that
// concurrent recomputes cannot overwrite each other with partial review sets. The result depends only on the review set, so calling
// it again without new reviews changes nothing but UpdatedAt.
func (s *Service) Recompute(ctx context.Context, tx *repository.Store, vendorID int64) (*domain.VendorReputation, error) {
	points, err := tx.Reviews().RatingsForVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	rep := &domain.VendorReputation{
		VendorID:    vendorID,
		ReviewCount: len(points),
		UpdatedAt:   s.now(),
	}
	if len(points) > 0 {
		ratings := make(stats.Float64Data, 0, len(points))
		last := points[0].CreatedAt
		for _, p := range points {
			ratings = append(ratings, float64(p.Rating))
			if p.CreatedAt.After(last) {
				last = p.CreatedAt
			}
		}
		mean, err := ratings.Mean()
		if err != nil {
			return nil, errors.Wrap(err, "mean rating")
		}
		rep.AvgReviewRating = &mean
		rep.LastFeedbackAt = &last
	}
	if err := tx.Reputations().Save(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// RecomputeVendor runs Recompute in its own transaction.
func (s *Service) RecomputeVendor(ctx context.Context, vendorID int64) (*domain.VendorReputation, error) {
	const op = "recompute_reputation"
	var rep *domain.VendorReputation
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Parties().LockVendor(ctx, vendorID); err != nil {
			return lookupErr(op, "vendor", vendorID, err)
		}
		var err error
		rep, err = s.Recompute(ctx, tx, vendorID)
		return err
	})
	if err != nil {
		return nil, s.finish(op, err)
	}
	return rep, nil
}
