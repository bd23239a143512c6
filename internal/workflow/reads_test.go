package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/testkit"
)

func TestListings(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	c := testkit.Customer(t, db, "Ravi")
	other := testkit.Customer(t, db, "Mina")
	p := testkit.Product(t, db, v.ID, "3", 10)
	testkit.Product(t, db, v.ID, "4", 10)
	testkit.Order(t, db, c.ID, p.ID, domain.OrderDelivered)
	testkit.Review(t, db, c.ID, p.ID, v.ID, 4, time.Now())

	orders, err := svc.CustomerOrders(ctx, CustomerActor(c.ID), c.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = svc.CustomerOrders(ctx, CustomerActor(other.ID), c.ID)
	requireKind(t, err, KindForbidden)
	_, err = svc.CustomerOrders(ctx, Admin(), 5)
	requireKind(t, err, KindNotFound)

	reviews, err := svc.VendorReviews(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)

	products, err := svc.VendorProducts(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = svc.VendorProducts(ctx, 5)
	requireKind(t, err, KindNotFound)
}

func TestVendorOrders(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	acme := testkit.Vendor(t, db, "Acme")
	beta := testkit.Vendor(t, db, "Beta")
	c := testkit.Customer(t, db, "Ravi")
	p := testkit.Product(t, db, acme.ID, "5", 10)
	q := testkit.Product(t, db, beta.ID, "5", 10)
	mine := testkit.Order(t, db, c.ID, p.ID, domain.OrderPending)
	testkit.Order(t, db, c.ID, q.ID, domain.OrderPending)

	orders, err := svc.VendorOrders(ctx, VendorActor(acme.ID), acme.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)

	// the listed id is accepted by fulfillment
	require.NoError(t, svc.UpdateOrderStatus(ctx, VendorActor(acme.ID), acme.ID, orders[0].ID, "Shipped"))

	_, err = svc.VendorOrders(ctx, VendorActor(beta.ID), acme.ID)
	requireKind(t, err, KindForbidden)
	_, err = svc.VendorOrders(ctx, CustomerActor(c.ID), acme.ID)
	requireKind(t, err, KindForbidden)

	orders, err = svc.VendorOrders(ctx, Admin(), beta.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, err = svc.VendorOrders(ctx, Admin(), 5)
	requireKind(t, err, KindNotFound)
}
