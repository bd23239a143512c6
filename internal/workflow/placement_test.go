package workflow

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/internal/testkit"
	"golang.org/x/sync/errgroup"
)

func TestPlaceOrder_StockAndPayment(t *testing.T) {
	bus := EventBus.New()
	svc, db := newTestService(t, WithEventBus(bus))
	ctx := ctxT(t)

	var placed []OrderPlaced
	require.NoError(t, bus.Subscribe(TopicOrderPlaced, func(e OrderPlaced) { placed = append(placed, e) }))

	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, v.ID, "50.00", 10)

	res, err := svc.PlaceOrder(ctx, CustomerActor(c.ID), PlaceOrderInput{
		CustomerID: c.ID, ProductID: p.ID, Quantity: 3, PaymentMethod: "upi",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, res.Status)
	assert.True(t, dec("150.00").Equal(res.Amount), "amount %s", res.Amount)
	assert.Equal(t, 7, testkit.Stock(t, db, p.ID))

	var payment domain.Payment
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&payment).Error)
	assert.Equal(t, domain.PaymentCompleted, payment.Status)
	assert.Equal(t, domain.PaymentUPI, payment.Method)
	assert.Equal(t, res.PaymentID, payment.ID)
	assert.True(t, dec("150").Equal(payment.Amount))

	var order domain.Order
	require.NoError(t, db.First(&order, res.OrderID).Error)
	assert.Equal(t, c.ID, order.CustomerID)
	assert.Equal(t, 3, order.Quantity)

	assert.EqualValues(t, 3, testkit.Count(t, db, &domain.AuditLog{}))
	require.Len(t, placed, 1)
	assert.Equal(t, res.OrderID, placed[0].OrderID)

	// 7 left, 8 requested
	_, err = svc.PlaceOrder(ctx, CustomerActor(c.ID), PlaceOrderInput{
		CustomerID: c.ID, ProductID: p.ID, Quantity: 8, PaymentMethod: "UPI",
	})
	requireKind(t, err, KindInsufficientStock)
	assert.Equal(t, 7, testkit.Stock(t, db, p.ID))
	assert.EqualValues(t, 1, testkit.Count(t, db, &domain.Order{}))
	assert.EqualValues(t, 1, testkit.Count(t, db, &domain.Payment{}))
	assert.Len(t, placed, 1)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	other := testkit.Customer(t, db, "Mina")
	p := testkit.Product(t, db, v.ID, "9.99", 2)

	tests := []struct {
		name  string
		actor Actor
		in    PlaceOrderInput
		kind  Kind
	}{
		{"zero quantity", CustomerActor(c.ID), PlaceOrderInput{c.ID, p.ID, 0, "Cash"}, KindInvalidInput},
		{"negative quantity", CustomerActor(c.ID), PlaceOrderInput{c.ID, p.ID, -1, "Cash"}, KindInvalidInput},
		{"unknown method", CustomerActor(c.ID), PlaceOrderInput{c.ID, p.ID, 1, "Barter"}, KindInvalidInput},
		{"unknown product", CustomerActor(c.ID), PlaceOrderInput{c.ID, 12345, 1, "Cash"}, KindNotFound},
		{"unknown customer", Admin(), PlaceOrderInput{999, p.ID, 1, "Cash"}, KindNotFound},
		{"ordering for someone else", CustomerActor(other.ID), PlaceOrderInput{c.ID, p.ID, 1, "Cash"}, KindForbidden},
		{"vendor cannot order", VendorActor(v.ID), PlaceOrderInput{c.ID, p.ID, 1, "Cash"}, KindForbidden},
		{"more than stock", CustomerActor(c.ID), PlaceOrderInput{c.ID, p.ID, 3, "Cash"}, KindInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(ctx, tt.actor, tt.in)
			requireKind(t, err, tt.kind)
			assert.False(t, IsRetryable(err))
		})
	}
	assert.Equal(t, 2, testkit.Stock(t, db, p.ID))
	assert.Zero(t, testkit.Count(t, db, &domain.Order{}))
	assert.Zero(t, testkit.Count(t, db, &domain.Payment{}))
	assert.Zero(t, testkit.Count(t, db, &domain.AuditLog{}))
}

func TestPlaceOrder_AdminOnBehalf(t *testing.T) {
	svc, db := newTestService(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, v.ID, "12.50", 4)

	res, err := svc.PlaceOrder(ctxT(t), Admin(), PlaceOrderInput{c.ID, p.ID, 4, "Wallet"})
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(res.Amount))
	assert.Equal(t, 0, testkit.Stock(t, db, p.ID))
}

func TestPlaceOrder_ConcurrentNeverOversells(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, v.ID, "50.00", 10)

	var ok, short int64
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := svc.PlaceOrder(ctx, CustomerActor(c.ID), PlaceOrderInput{c.ID, p.ID, 3, "UPI"})
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case KindOf(err) == KindInsufficientStock:
				atomic.AddInt64(&short, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 3, ok)
	assert.EqualValues(t, 7, short)
	assert.Equal(t, 1, testkit.Stock(t, db, p.ID))
	assert.EqualValues(t, 3, testkit.Count(t, db, &domain.Order{}))
	assert.EqualValues(t, 3, testkit.Count(t, db, &domain.Payment{}))
}

func TestPlaceOrder_StockTakenAfterCheck(t *testing.T) {
	svc, db := newTestService(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, v.ID, "50.00", 10)

	// another buyer takes all but one unit between the stock check and the decrement
	svc.interleave = func(ctx context.Context, tx *repository.Store) {
		require.NoError(t, tx.Products().DecrementStock(ctx, p.ID, 9))
	}
	_, err := svc.PlaceOrder(ctxT(t), CustomerActor(c.ID), PlaceOrderInput{c.ID, p.ID, 3, "UPI"})
	requireKind(t, err, KindInsufficientStock)

	assert.Equal(t, 10, testkit.Stock(t, db, p.ID), "rolled back with the order")
	assert.Zero(t, testkit.Count(t, db, &domain.Order{}))
	assert.Zero(t, testkit.Count(t, db, &domain.Payment{}))
	assert.Zero(t, testkit.Count(t, db, &domain.AuditLog{}))
}

func TestPlaceOrder_StoreUnavailable(t *testing.T) {
	svc, db := newTestService(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.PlaceOrder(ctxT(t), Admin(), PlaceOrderInput{1, 2, 1, "UPI"})
	requireKind(t, err, KindStoreUnavailable)
	assert.True(t, IsRetryable(err))
}
