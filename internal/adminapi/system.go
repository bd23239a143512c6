package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
	"github.com/talkincode/vendorhub/pkg/metrics"
)

type metricPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

func registerSystemRoutes() {
	webserver.ApiGET("/system/metrics/:name", getMetricSeries, requireRole(workflow.RoleAdmin))
	webserver.ApiPOST("/system/audit/purge", purgeAuditLog, requireRole(workflow.RoleAdmin))
}

// getMetricSeries returns the last ?minutes (default 60) of a metric.
func getMetricSeries(c echo.Context) error {
	name := c.Param("name")
	minutes, err := strconv.Atoi(c.QueryParam("minutes"))
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	end := time.Now()
	points, err := metrics.Query(name, end.Add(-time.Duration(minutes)*time.Minute), end)
	if err != nil {
		return fail(c, http.StatusServiceUnavailable, "METRICS_ERROR", "Failed to query metrics", err.Error())
	}
	series := make([]metricPoint, 0, len(points))
	for _, p := range points {
		series = append(series, metricPoint{Timestamp: p.Timestamp, Value: p.Value})
	}
	return ok(c, map[string]interface{}{"name": name, "points": series})
}

func purgeAuditLog(c echo.Context) error {
	days, err := strconv.Atoi(c.QueryParam("days"))
	if err != nil || days <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "days must be a positive integer", nil)
	}
	n, err := GetAppContext(c).PurgeAuditLog(days)
	if err != nil {
		return fail(c, http.StatusServiceUnavailable, string(workflow.KindStoreUnavailable), "Failed to purge audit log", err.Error())
	}
	return ok(c, map[string]int64{"deleted": n})
}
