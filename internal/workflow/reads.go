package workflow

import (
	"context"

	"github.com/talkincode/vendorhub/internal/domain"
)

// CustomerOrders lists a customer's orders, newest first.
func (s *Service) CustomerOrders(ctx context.Context, actor Actor, customerID int64) ([]*domain.Order, error) {
	const op = "list_customer_orders"
	if err := actor.actingAs(op, RoleCustomer, customerID); err != nil {
		return nil, err
	}
	if _, err := s.store.Parties().GetCustomer(ctx, customerID); err != nil {
		return nil, s.finish(op, lookupErr(op, "customer", customerID, err))
	}
	orders, err := s.store.Orders().ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.finish(op, err)
	}
	return orders, nil
}

// VendorOrders lists the orders placed on a vendor's products, newest first.
// These are the orders the vendor may move through UpdateOrderStatus.
func (s *Service) VendorOrders(ctx context.Context, actor Actor, vendorID int64) ([]*domain.Order, error) {
	const op = "list_vendor_orders"
	if err := actor.actingAs(op, RoleVendor, vendorID); err != nil {
		return nil, err
	}
	if _, err := s.store.Parties().GetVendor(ctx, vendorID); err != nil {
		return nil, s.finish(op, lookupErr(op, "vendor", vendorID, err))
	}
	orders, err := s.store.Orders().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, s.finish(op, err)
	}
	return orders, nil
}

// VendorReviews lists the reviews on a vendor's products, newest first.
func (s *Service) VendorReviews(ctx context.Context, vendorID int64) ([]*domain.Review, error) {
	const op = "list_vendor_reviews"
	if _, err := s.store.Parties().GetVendor(ctx, vendorID); err != nil {
		return nil, s.finish(op, lookupErr(op, "vendor", vendorID, err))
	}
	reviews, err := s.store.Reviews().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, s.finish(op, err)
	}
	return reviews, nil
}

func (s *Service) VendorProducts(ctx context.Context, vendorID int64) ([]*domain.Product, error) {
	const op = "list_vendor_products"
	if _, err := s.store.Parties().GetVendor(ctx, vendorID); err != nil {
		return nil, s.finish(op, lookupErr(op, "vendor", vendorID, err))
	}
	products, err := s.store.Products().ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, s.finish(op, err)
	}
	return products, nil
}
