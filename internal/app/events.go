package app

import (
	"strconv"

	"github.com/talkincode/vendorhub/internal/workflow"
	"github.com/talkincode/vendorhub/pkg/metrics"
	"go.uber.org/zap"
)

// Metric names fed by workflow events
const (
	MetricOrdersPlaced  = "vendorhub_orders_placed"
	MetricOrderUpdates  = "vendorhub_order_status_updates"
	MetricReviews       = "vendorhub_reviews_submitted"
	MetricProductsAdded = "vendorhub_products_added"
	MetricSystemCpuUse  = "system_cpuuse"
	MetricSystemMemUse  = "system_memuse"
	MetricProcessCpuUse = "vendorhub_cpuuse"
	MetricProcessMemUse = "vendorhub_memuse"
	MetricAuditPurged   = "vendorhub_audit_purged"
)

func (a *Application) onOrderPlaced(e workflow.OrderPlaced) {
	metrics.Incr(MetricOrdersPlaced)
	zap.L().Debug("order placed event",
		zap.String("namespace", "events"),
		zap.Int64("order_id", e.OrderID),
		zap.String("amount", e.Amount.StringFixed(2)))
}

func (a *Application) onOrderStatusChanged(e workflow.OrderStatusChanged) {
	metrics.Incr(MetricOrderUpdates)
	zap.L().Debug("order status event",
		zap.String("namespace", "events"),
		zap.Int64("order_id", e.OrderID),
		zap.String("to", string(e.To)))
}

func (a *Application) onReviewSubmitted(e workflow.ReviewSubmitted) {
	metrics.Incr(MetricReviews)
	if e.AvgRating != nil {
		// stored as rating * 100
		metrics.SetGauge("vendor_rating_"+strconv.FormatInt(e.VendorID, 10), int64(*e.AvgRating*100))
	}
}

func (a *Application) onProductAdded(e workflow.ProductAdded) {
	metrics.Incr(MetricProductsAdded)
}

func (a *Application) eventHandlers() map[string]interface{} {
	return map[string]interface{}{
		workflow.TopicOrderPlaced:        a.onOrderPlaced,
		workflow.TopicOrderStatusChanged: a.onOrderStatusChanged,
		workflow.TopicReviewSubmitted:    a.onReviewSubmitted,
		workflow.TopicProductAdded:       a.onProductAdded,
	}
}

func (a *Application) subscribeEvents() {
	if a.subscribed {
		return
	}
	for topic, fn := range a.eventHandlers() {
		if err := a.bus.Subscribe(topic, fn); err != nil {
			zap.L().Error("event subscribe failed", zap.String("namespace", "events"),
				zap.String("topic", topic), zap.Error(err))
		}
	}
	a.subscribed = true
}

func (a *Application) unsubscribeEvents() {
	if !a.subscribed {
		return
	}
	for topic, fn := range a.eventHandlers() {
		_ = a.bus.Unsubscribe(topic, fn)
	}
	a.subscribed = false
}
