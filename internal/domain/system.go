package domain

import (
	"time"
)

// Audit operations
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
)

// AuditLog records every row a workflow writes, in the same transaction as the write.
type AuditLog struct {
	ID            int64     `json:"id,string"`
	Entity        string    `gorm:"size:32;index" json:"entity"`
	Operation     string    `gorm:"size:16" json:"operation"`
	RecordID      int64     `gorm:"index" json:"record_id,string"`
	ActorRole     string    `gorm:"size:16" json:"actor_role"`
	ActorID       int64     `json:"actor_id,string"`
	Detail        string    `json:"detail"`
	OperationTime time.Time `gorm:"index" json:"operation_time"`
}

// TableName Specify table name
func (AuditLog) TableName() string {
	return "audit_log"
}
