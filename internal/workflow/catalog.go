package workflow

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/pkg/common"
	"go.uber.org/zap"
)

type AddProductInput struct {
	VendorID    int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
}

// AddProduct lists a new product in the vendor's catalog.
func (s *Service) AddProduct(ctx context.Context, actor Actor, in AddProductInput) (*domain.Product, error) {
	const op = "add_product"
	if err := actor.actingAs(op, RoleVendor, in.VendorID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(op, KindInvalidInput, "product name is required")
	}
	if in.Price.IsNegative() {
		return nil, newError(op, KindInvalidInput, "price must not be negative")
	}
	if in.Stock < 0 {
		return nil, newError(op, KindInvalidInput, "stock must not be negative")
	}
	category, ok := domain.ParseCategory(common.IfEmptyStr(in.Category, domain.CategoryOthers))
	if !ok {
		return nil, newError(op, KindInvalidInput, "unknown category %q", in.Category)
	}

	now := s.now()
	product := &domain.Product{
		ID:          common.UUIDint64(),
		VendorID:    in.VendorID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		Stock:       in.Stock,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Parties().GetVendor(ctx, in.VendorID); err != nil {
			return lookupErr(op, "vendor", in.VendorID, err)
		}
		if err := tx.Products().Create(ctx, product); err != nil {
			return err
		}
		return tx.Audit().Record(ctx, s.audit(actor, "product", domain.AuditInsert, product.ID, product.Name))
	})
	if err != nil {
		return nil, s.finish(op, err)
	}

	zap.L().Info("product added",
		zap.String("namespace", "workflow"),
		zap.Int64("product_id", product.ID),
		zap.Int64("vendor_id", product.VendorID),
	)
	s.publish(TopicProductAdded, ProductAdded{ProductID: product.ID, VendorID: product.VendorID, At: now})
	return product, nil
}

func (s *Service) Product(ctx context.Context, productID int64) (*domain.Product, error) {
	const op = "get_product"
	product, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, s.finish(op, lookupErr(op, "product", productID, err))
	}
	return product, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
