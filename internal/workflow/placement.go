package workflow

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/pkg/common"
	"go.uber.org/zap"
)

type PlaceOrderInput struct {
	CustomerID    int64
	ProductID     int64
	Quantity      int
	PaymentMethod string
}

type OrderResult struct {
	OrderID   int64              `json:"order_id,string"`
	PaymentID int64              `json:"payment_id,string"`
	Amount    decimal.Decimal    `json:"amount"`
	Status    domain.OrderStatus `json:"status"`
}

// PlaceOrder reserves stock, records a Pending order and its Completed payment.
// Either all three effects commit or none do.
func (s *Service) PlaceOrder(ctx context.Context, actor Actor, in PlaceOrderInput) (*OrderResult, error) {
	const op = "place_order"
	if err := actor.actingAs(op, RoleCustomer, in.CustomerID); err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, newError(op, KindInvalidInput, "quantity must be positive, got %d", in.Quantity)
	}
	method, ok := domain.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return nil, newError(op, KindInvalidInput, "unknown payment method %q", in.PaymentMethod)
	}

	var (
		result *OrderResult
		event  OrderPlaced
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Parties().GetCustomer(ctx, in.CustomerID); err != nil {
			return lookupErr(op, "customer", in.CustomerID, err)
		}
		product, err := tx.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return lookupErr(op, "product", in.ProductID, err)
		}
		if in.Quantity > product.Stock {
			return newError(op, KindInsufficientStock, "product %d has %d in stock, %d requested",
				product.ID, product.Stock, in.Quantity)
		}
		s.beforeGuardedWrite(ctx, tx)
		// the guard in DecrementStock is what serializes concurrent placements
		if err := tx.Products().DecrementStock(ctx, product.ID, in.Quantity); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				return newError(op, KindInsufficientStock, "product %d has fewer than %d in stock",
					product.ID, in.Quantity)
			}
			return err
		}

		now := s.now()
		order := &domain.Order{
			ID:         common.UUIDint64(),
			CustomerID: in.CustomerID,
			ProductID:  product.ID,
			Quantity:   in.Quantity,
			Status:     domain.OrderPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		payment := &domain.Payment{
			ID:         common.UUIDint64(),
			OrderID:    order.ID,
			CustomerID: in.CustomerID,
			Method:     method,
			Status:     domain.PaymentCompleted,
			Amount:     product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			CreatedAt:  now,
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return err
		}

		err = tx.Audit().Record(ctx,
			s.audit(actor, "orders", domain.AuditInsert, order.ID, string(order.Status)),
			s.audit(actor, "payment", domain.AuditInsert, payment.ID, payment.Amount.StringFixed(2)),
			s.audit(actor, "product", domain.AuditUpdate, product.ID, "stock -"+itoa(in.Quantity)),
		)
		if err != nil {
			return err
		}

		result = &OrderResult{
			OrderID:   order.ID,
			PaymentID: payment.ID,
			Amount:    payment.Amount,
			Status:    order.Status,
		}
		event = OrderPlaced{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			ProductID:  order.ProductID,
			Quantity:   order.Quantity,
			Amount:     payment.Amount,
			At:         now,
		}
		return nil
	})
	if err != nil {
		return nil, s.finish(op, err)
	}

	zap.L().Info("order placed",
		zap.String("namespace", "workflow"),
		zap.Int64("order_id", result.OrderID),
		zap.Int64("product_id", in.ProductID),
		zap.Int("quantity", in.Quantity),
		zap.String("amount", result.Amount.StringFixed(2)),
	)
	s.publish(TopicOrderPlaced, event)
	return result, nil
}
