package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
)

func registerVendorRoutes() {
	webserver.ApiGET("/vendors/:id/reputation", getVendorReputation)
	webserver.ApiPOST("/vendors/:id/reputation/recompute", recomputeVendorReputation, requireRole(workflow.RoleAdmin))
}

func getVendorReputation(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID", nil)
	}
	rep, err := workflows(c).Reputation(c.Request().Context(), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	return ok(c, rep)
}

func recomputeVendorReputation(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID", nil)
	}
	rep, err := workflows(c).RecomputeVendor(c.Request().Context(), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	return ok(c, rep)
}
