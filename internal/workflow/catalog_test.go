package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/testkit"
)

func TestAddProduct(t *testing.T) {
	svc, db := newTestService(t)
	ctx := ctxT(t)
	v := testkit.Vendor(t, db, "Acme")
	other := testkit.Vendor(t, db, "Beta")

	p, err := svc.AddProduct(ctx, VendorActor(v.ID), AddProductInput{
		VendorID: v.ID, Name: " Kettle ", Price: dec("24.999"), Stock: 12, Category: "home",
	})
	require.NoError(t, err)
	assert.Equal(t, "Kettle", p.Name)
	assert.Equal(t, domain.CategoryHome, p.Category)
	assert.True(t, dec("25.00").Equal(p.Price), "price %s", p.Price)

	got, err := svc.Product(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	defaulted, err := svc.AddProduct(ctx, VendorActor(v.ID), AddProductInput{VendorID: v.ID, Name: "Misc", Price: dec("0")})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOthers, defaulted.Category)

	tests := []struct {
		name  string
		actor Actor
		in    AddProductInput
		kind  Kind
	}{
		{"other vendor's catalog", VendorActor(other.ID), AddProductInput{VendorID: v.ID, Name: "x", Price: dec("1")}, KindForbidden},
		{"blank name", VendorActor(v.ID), AddProductInput{VendorID: v.ID, Name: " ", Price: dec("1")}, KindInvalidInput},
		{"negative price", VendorActor(v.ID), AddProductInput{VendorID: v.ID, Name: "x", Price: dec("-1")}, KindInvalidInput},
		{"negative stock", VendorActor(v.ID), AddProductInput{VendorID: v.ID, Name: "x", Price: dec("1"), Stock: -2}, KindInvalidInput},
		{"unknown category", VendorActor(v.ID), AddProductInput{VendorID: v.ID, Name: "x", Price: dec("1"), Category: "Toys"}, KindInvalidInput},
		{"unknown vendor", Admin(), AddProductInput{VendorID: 5, Name: "x", Price: dec("1")}, KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddProduct(ctx, tt.actor, tt.in)
			requireKind(t, err, tt.kind)
		})
	}
	assert.EqualValues(t, 2, testkit.Count(t, db, &domain.Product{}))

	_, err = svc.Product(ctx, 1)
	requireKind(t, err, KindNotFound)
}
