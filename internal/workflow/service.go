package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/pkg/common"
	"go.uber.org/zap"
)

// Service runs the marketplace workflows. Every call is one transaction against
// the store; events are published only after commit.
type Service struct {
	store *repository.Store
	bus   EventBus.Bus
	now   func() time.Time

	// interleave, when set, runs inside the transaction after a workflow's read
	// checks and before its guarded write. Nil in production.
	interleave func(ctx context.Context, tx *repository.Store)
}

type Option func(*Service)

// WithEventBus publishes committed workflow events on bus.
func WithEventBus(bus EventBus.Bus) Option {
	return func(s *Service) { s.bus = bus }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store *repository.Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// finish converts anything that is not already a workflow error into StoreUnavailable.
func (s *Service) finish(op string, err error) error {
	var werr *Error
	if errors.As(err, &werr) {
		if werr.Op == "" {
			werr.Op = op
		}
		return werr
	}
	zap.L().Error("workflow store failure",
		zap.String("namespace", "workflow"),
		zap.String("op", op),
		zap.Error(err),
	)
	return &Error{Kind: KindStoreUnavailable, Op: op, Err: err}
}

// lookupErr maps a repository lookup failure to NotFound, passing other errors through.
func lookupErr(op, what string, id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(op, KindNotFound, "%s %d not found", what, id)
	}
	return err
}

func (s *Service) audit(actor Actor, entity, operation string, recordID int64, detail string) *domain.AuditLog {
	return &domain.AuditLog{
		ID:            common.UUIDint64(),
		Entity:        entity,
		Operation:     operation,
		RecordID:      recordID,
		ActorRole:     string(actor.Role),
		ActorID:       actor.ID,
		Detail:        detail,
		OperationTime: s.now(),
	}
}

func (s *Service) publish(topic string, event interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(topic, event)
}

// Reputation returns the stored reputation of a vendor. A vendor that exists but has
// never been reviewed gets an empty reputation.
func (s *Service) Reputation(ctx context.Context, vendorID int64) (*domain.VendorReputation, error) {
	const op = "get_reputation"
	if _, err := s.store.Parties().GetVendor(ctx, vendorID); err != nil {
		return nil, s.finish(op, lookupErr(op, "vendor", vendorID, err))
	}
	rep, err := s.store.Reputations().Get(ctx, vendorID)
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.VendorReputation{VendorID: vendorID}, nil
	}
	if err != nil {
		return nil, s.finish(op, err)
	}
	return rep, nil
}

// Order returns an order visible to the actor: its customer, the vendor of its product, or an admin.
func (s *Service) Order(ctx context.Context, actor Actor, orderID int64) (*domain.Order, *domain.Payment, error) {
	const op = "get_order"
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, s.finish(op, lookupErr(op, "order", orderID, err))
	}
	switch actor.Role {
	case RoleAdmin:
	case RoleCustomer:
		if order.CustomerID != actor.ID {
			return nil, nil, newError(op, KindForbidden, "order %d belongs to another customer", orderID)
		}
	case RoleVendor:
		owner, err := s.store.Orders().OwnerVendor(ctx, orderID)
		if err != nil {
			return nil, nil, s.finish(op, lookupErr(op, "order", orderID, err))
		}
		if owner != actor.ID {
			return nil, nil, newError(op, KindForbidden, "order %d belongs to another vendor", orderID)
		}
	default:
		return nil, nil, newError(op, KindForbidden, "unknown role %q", actor.Role)
	}
	payment, err := s.store.Payments().GetByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, nil, s.finish(op, err)
	}
	return order, payment, nil
}

func (s *Service) beforeGuardedWrite(ctx context.Context, tx *repository.Store) {
	if s.interleave != nil {
		s.interleave(ctx, tx)
	}
}
