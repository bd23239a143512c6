package workflow

import (
	"context"

	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"go.uber.org/zap"
)

// UpdateOrderStatus overwrites the status of an order whose product belongs to vendorID.
// Any status may follow any other.
func (s *Service) UpdateOrderStatus(ctx context.Context, actor Actor, vendorID, orderID int64, newStatus string) error {
	const op = "update_order_status"
	if err := actor.actingAs(op, RoleVendor, vendorID); err != nil {
		return err
	}
	status, ok := domain.ParseOrderStatus(newStatus)
	if !ok {
		return newError(op, KindInvalidInput, "unknown order status %q", newStatus)
	}

	var event OrderStatusChanged
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return lookupErr(op, "order", orderID, err)
		}
		owner, err := tx.Orders().OwnerVendor(ctx, orderID)
		if err != nil {
			return lookupErr(op, "order", orderID, err)
		}
		if owner != vendorID {
			return newError(op, KindForbidden, "order %d does not belong to vendor %d", orderID, vendorID)
		}
		if err := tx.Orders().UpdateStatus(ctx, orderID, status); err != nil {
			return lookupErr(op, "order", orderID, err)
		}
		if err := tx.Audit().Record(ctx,
			s.audit(actor, "orders", domain.AuditUpdate, orderID, string(order.Status)+" -> "+string(status)),
		); err != nil {
			return err
		}
		event = OrderStatusChanged{
			OrderID:  orderID,
			VendorID: vendorID,
			From:     order.Status,
			To:       status,
			At:       s.now(),
		}
		return nil
	})
	if err != nil {
		return s.finish(op, err)
	}

	zap.L().Info("order status updated",
		zap.String("namespace", "workflow"),
		zap.Int64("order_id", orderID),
		zap.String("from", string(event.From)),
		zap.String("to", string(event.To)),
	)
	s.publish(TopicOrderStatusChanged, event)
	return nil
}
