package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/talkincode/vendorhub/internal/domain"
	"gorm.io/gorm"
)

// AuditRepository handles the audit trail written by the workflows.
type AuditRepository interface {
	// Record inserts audit entries
	Record(ctx context.Context, entries ...*domain.AuditLog) error

	// ListByRecord retrieves the entries for one record, oldest first
	ListByRecord(ctx context.Context, entity string, recordID int64) ([]*domain.AuditLog, error)

	// DeleteOlderThan removes entries written before t
	DeleteOlderThan(ctx context.Context, t time.Time) (int64, error)
}

type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Record(ctx context.Context, entries ...*domain.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return errors.Wrap(r.db.WithContext(ctx).Create(entries).Error, "write audit log")
}

func (r *GormAuditRepository) ListByRecord(ctx context.Context, entity string, recordID int64) ([]*domain.AuditLog, error) {
	var logs []*domain.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity = ? AND record_id = ?", entity, recordID).
		Order("operation_time ASC, id ASC").
		Find(&logs).Error
	return logs, errors.Wrap(err, "list audit log")
}

func (r *GormAuditRepository) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("operation_time < ?", t).
		Delete(&domain.AuditLog{})
	return result.RowsAffected, errors.Wrap(result.Error, "purge audit log")
}
