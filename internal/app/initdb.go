package app

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/repository"
	"github.com/talkincode/vendorhub/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoVendorEmail   = "demo@vendor.vendorhub.local"
	demoCustomerEmail = "demo@customer.vendorhub.local"
)

// DemoData identifies the rows created by SeedDemo.
type DemoData struct {
	VendorID   int64
	CustomerID int64
	ProductIDs []int64
}

// SeedDemo creates a demo vendor, customer and catalog. Existing demo rows are reused.
func (a *Application) SeedDemo() (*DemoData, error) {
	vendor, err := a.checkDemoVendor()
	if err != nil {
		return nil, err
	}
	customer, err := a.checkDemoCustomer()
	if err != nil {
		return nil, err
	}
	ids, err := a.checkDemoProducts(vendor.ID)
	if err != nil {
		return nil, err
	}
	return &DemoData{VendorID: vendor.ID, CustomerID: customer.ID, ProductIDs: ids}, nil
}

func (a *Application) checkDemoVendor() (*domain.Vendor, error) {
	var vendor domain.Vendor
	err := a.gormDB.Where("email = ?", demoVendorEmail).First(&vendor).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &vendor, err
	}
	vendor = domain.Vendor{
		ID:           common.UUIDint64(),
		Name:         "Demo Traders",
		Email:        demoVendorEmail,
		ContactNo:    "0000000000",
		BusinessType: domain.CategoryElectronics,
	}
	if err := repository.NewStore(a.gormDB).Parties().CreateVendor(context.Background(), &vendor); err != nil {
		zap.L().Error("failed to create demo vendor", zap.Error(err))
		return nil, err
	}
	zap.L().Info("initialized demo vendor", zap.Int64("id", vendor.ID))
	return &vendor, nil
}

func (a *Application) checkDemoCustomer() (*domain.Customer, error) {
	var customer domain.Customer
	err := a.gormDB.Where("email = ?", demoCustomerEmail).First(&customer).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &customer, err
	}
	customer = domain.Customer{
		ID:      common.UUIDint64(),
		Name:    "Demo Customer",
		Email:   demoCustomerEmail,
		Phone:   "0000000000",
		Address: "N/A",
	}
	if err := repository.NewStore(a.gormDB).Parties().CreateCustomer(context.Background(), &customer); err != nil {
		zap.L().Error("failed to create demo customer", zap.Error(err))
		return nil, err
	}
	zap.L().Info("initialized demo customer", zap.Int64("id", customer.ID))
	return &customer, nil
}

func (a *Application) checkDemoProducts(vendorID int64) ([]int64, error) {
	defaultProducts := []domain.Product{
		{Name: "demo-headphones", Price: decimal.RequireFromString("49.99"), Stock: 100, Category: domain.CategoryElectronics},
		{Name: "demo-tshirt", Price: decimal.RequireFromString("12.50"), Stock: 250, Category: domain.CategoryClothing},
		{Name: "demo-novel", Price: decimal.RequireFromString("8.00"), Stock: 40, Category: domain.CategoryBooks},
	}

	ids := make([]int64, 0, len(defaultProducts))
	for _, p := range defaultProducts {
		var existing domain.Product
		err := a.gormDB.Where("vendor_id = ? AND name = ?", vendorID, p.Name).First(&existing).Error
		if err == nil {
			ids = append(ids, existing.ID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p.ID = common.UUIDint64()
		p.VendorID = vendorID
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create demo product", zap.String("name", p.Name), zap.Error(err))
			return nil, err
		}
		zap.L().Info("initialized demo product", zap.String("name", p.Name))
		ids = append(ids, p.ID)
	}
	return ids, nil
}
