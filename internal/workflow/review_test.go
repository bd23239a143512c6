package workflow

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/internal/testkit"
	"github.com/talkincode/vendorhub/pkg/common"
	"golang.org/x/sync/errgroup"
)

func TestSubmitReview_FirstThenDuplicate(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	q := testkit.Product(t, db, v.ID, "30", 3)
	testkit.Order(t, db, c.ID, q.ID, domain.OrderDelivered)

	in := SubmitReviewInput{CustomerID: c.ID, ProductID: q.ID, Rating: 5, Sentiment: "Positive", Comment: " great "}
	res, err := svc.SubmitReview(ctx, CustomerActor(c.ID), in)
	require.NoError(t, err)
	assert.Equal(t, v.ID, res.VendorID)
	require.NotNil(t, res.AvgRating)
	assert.Equal(t, 5.0, *res.AvgRating)

	rep, err := svc.Reputation(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, rep.AvgReviewRating)
	assert.Equal(t, 5.0, *rep.AvgReviewRating)
	require.NotNil(t, rep.LastFeedbackAt)
	assert.True(t, rep.LastFeedbackAt.Equal(testNow))
	assert.Equal(t, 1, rep.ReviewCount)

	var review domain.Review
	require.NoError(t, db.First(&review, res.ReviewID).Error)
	assert.Equal(t, "great", review.Comment)
	assert.Equal(t, v.ID, review.VendorID)

	_, err = svc.SubmitReview(ctx, CustomerActor(c.ID), in)
	requireKind(t, err, KindDuplicateReview)
	assert.EqualValues(t, 1, testkit.Count(t, db, &domain.Review{}))
}

func TestSubmitReview_AverageMatchesReviews(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	p1 := testkit.Product(t, db, v.ID, "10", 1)
	p2 := testkit.Product(t, db, v.ID, "10", 1)

	for i, rating := range []int{5, 3, 4} {
		c := testkit.Customer(t, db, "Buyer")
		p := p1
		if i == 2 {
			p = p2
		}
		testkit.Order(t, db, c.ID, p.ID, domain.OrderDelivered)
		_, err := svc.SubmitReview(ctx, CustomerActor(c.ID), SubmitReviewInput{
			CustomerID: c.ID, ProductID: p.ID, Rating: rating, Sentiment: "Neutral",
		})
		require.NoError(t, err)
	}

	rep, err := svc.Reputation(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, rep.AvgReviewRating)
	assert.Equal(t, 4.0, *rep.AvgReviewRating)
	assert.Equal(t, 3, rep.ReviewCount)
}

func TestSubmitReview_Rejections(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	other := testkit.Customer(t, db, "Mina")
	shipped := testkit.Product(t, db, v.ID, "10", 1)
	delivered := testkit.Product(t, db, v.ID, "10", 1)
	testkit.Order(t, db, c.ID, shipped.ID, domain.OrderShipped)
	testkit.Order(t, db, c.ID, delivered.ID, domain.OrderDelivered)

	tests := []struct {
		name  string
		actor Actor
		in    SubmitReviewInput
		kind  Kind
	}{
		{"rating too low", CustomerActor(c.ID), SubmitReviewInput{c.ID, delivered.ID, 0, "Positive", ""}, KindInvalidInput},
		{"rating too high", CustomerActor(c.ID), SubmitReviewInput{c.ID, delivered.ID, 6, "Positive", ""}, KindInvalidInput},
		{"unknown sentiment", CustomerActor(c.ID), SubmitReviewInput{c.ID, delivered.ID, 4, "Meh", ""}, KindInvalidInput},
		{"unknown product", CustomerActor(c.ID), SubmitReviewInput{c.ID, 4242, 4, "Positive", ""}, KindNotFound},
		{"not delivered yet", CustomerActor(c.ID), SubmitReviewInput{c.ID, shipped.ID, 4, "Positive", ""}, KindNotEligible},
		{"never ordered", CustomerActor(other.ID), SubmitReviewInput{other.ID, delivered.ID, 4, "Positive", ""}, KindNotEligible},
		{"reviewing as someone else", CustomerActor(other.ID), SubmitReviewInput{c.ID, delivered.ID, 4, "Positive", ""}, KindForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitReview(ctx, tt.actor, tt.in)
			requireKind(t, err, tt.kind)
		})
	}
	assert.Zero(t, testkit.Count(t, db, &domain.Review{}))
	assert.Zero(t, testkit.Count(t, db, &domain.VendorReputation{}))
}

func TestSubmitReview_ConcurrentDuplicates(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, v.ID, "10", 1)
	testkit.Order(t, db, c.ID, p.ID, domain.OrderDelivered)

	var ok, dup int64
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		rating := i%5 + 1
		g.Go(func() error {
			_, err := svc.SubmitReview(ctx, CustomerActor(c.ID), SubmitReviewInput{
				CustomerID: c.ID, ProductID: p.ID, Rating: rating, Sentiment: "Positive",
			})
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case KindOf(err) == KindDuplicateReview:
				atomic.AddInt64(&dup, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, ok)
	assert.EqualValues(t, 7, dup)
	assert.EqualValues(t, 1, testkit.Count(t, db, &domain.Review{}, "customer_id = ? AND product_id = ?", c.ID, p.ID))
}

func TestSubmitReview_UniqueIndexCatchesLateDuplicate(t *testing.T) {
	svc, db := newTestService(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, v.ID, "10", 1)
	testkit.Order(t, db, c.ID, p.ID, domain.OrderDelivered)

	// a competing submission lands after the Exists check
	svc.interleave = func(ctx context.Context, tx *repository.Store) {
		require.NoError(t, tx.Reviews().Create(ctx, &domain.Review{
			ID: common.UUIDint64(), CustomerID: c.ID, ProductID: p.ID, VendorID: v.ID,
			Rating: 2, Sentiment: domain.SentimentNegative, CreatedAt: testNow,
		}))
	}
	_, err := svc.SubmitReview(ctxT(t), CustomerActor(c.ID), SubmitReviewInput{
		CustomerID: c.ID, ProductID: p.ID, Rating: 5, Sentiment: "Positive",
	})
	requireKind(t, err, KindDuplicateReview)

	assert.Zero(t, testkit.Count(t, db, &domain.Review{}))
	assert.Zero(t, testkit.Count(t, db, &domain.VendorReputation{}))
}

func TestSubmitReview_ConcurrentVendorReviewsAllCounted(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	p := testkit.Product(t, db, v.ID, "10", 1)

	const n = 6
	customers := make([]*domain.Customer, n)
	for i := range customers {
		customers[i] = testkit.Customer(t, db, "Buyer")
		testkit.Order(t, db, customers[i].ID, p.ID, domain.OrderDelivered)
	}

	var g errgroup.Group
	for i, c := range customers {
		c, rating := c, i%5+1
		g.Go(func() error {
			_, err := svc.SubmitReview(ctx, CustomerActor(c.ID), SubmitReviewInput{
				CustomerID: c.ID, ProductID: p.ID, Rating: rating, Sentiment: "Neutral",
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	rep, err := svc.Reputation(ctx, v.ID)
	require.NoError(t, err)
	assert.EqualValues(t, testkit.Count(t, db, &domain.Review{}, "vendor_id = ?", v.ID), rep.ReviewCount)
	assert.Equal(t, n, rep.ReviewCount)
	require.NotNil(t, rep.AvgReviewRating)
	// ratings 1,2,3,4,5,1
	assert.InDelta(t, 16.0/6, *rep.AvgReviewRating, 1e-9)
}

func TestRecompute(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")

	t.Run("no reviews", func(t *testing.T) {
		rep, err := svc.RecomputeVendor(ctx, v.ID)
		require.NoError(t, err)
		assert.Nil(t, rep.AvgReviewRating)
		assert.Nil(t, rep.LastFeedbackAt)
		assert.Zero(t, rep.ReviewCount)
	})

	older := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	c1 := testkit.Customer(t, db, "One")
	c2 := testkit.Customer(t, db, "Two")
	p := testkit.Product(t, db, v.ID, "1", 1)
	testkit.Review(t, db, c1.ID, p.ID, v.ID, 2, newer)
	testkit.Review(t, db, c2.ID, p.ID, v.ID, 5, older)

	t.Run("idempotent", func(t *testing.T) {
		first, err := svc.RecomputeVendor(ctx, v.ID)
		require.NoError(t, err)
		second, err := svc.RecomputeVendor(ctx, v.ID)
		require.NoError(t, err)

		require.NotNil(t, first.AvgReviewRating)
		assert.Equal(t, 3.5, *first.AvgReviewRating)
		assert.Equal(t, *first.AvgReviewRating, *second.AvgReviewRating)
		assert.True(t, first.LastFeedbackAt.Equal(newer))
		assert.True(t, second.LastFeedbackAt.Equal(newer))

		stored, err := svc.Reputation(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, 3.5, *stored.AvgReviewRating)
		assert.EqualValues(t, 1, testkit.Count(t, db, &domain.VendorReputation{}))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, err := svc.RecomputeVendor(ctx, 99)
		requireKind(t, err, KindNotFound)
		_, err = svc.Reputation(ctx, 99)
		requireKind(t, err, KindNotFound)
	})
}
