package app

import (
	"github.com/robfig/cron/v3"
	"github.com/talkincode/vendorhub/config"
	"github.com/talkincode/vendorhub/internal/workflow"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// WorkflowProvider provides the marketplace workflows
type WorkflowProvider interface {
	Workflows() *workflow.Service
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	WorkflowProvider

	MigrateDB(track bool) error
	InitDb()
	DropAll()
	// PurgeAuditLog deletes audit rows older than the given number of days
	PurgeAuditLog(days int) (int64, error)
}
