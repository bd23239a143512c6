package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/vendorhub/internal/domain"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
)

// Ids are carried as JSON strings, matching how they are rendered.
type placeOrderPayload struct {
	CustomerID    int64  `json:"customer_id,string"`
	ProductID     int64  `json:"product_id,string" validate:"required"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type orderStatusPayload struct {
	VendorID int64  `json:"vendor_id,string"`
	Status   string `json:"status" validate:"required"`
}

type orderDetail struct {
	Order   *domain.Order   `json:"order"`
	Payment *domain.Payment `json:"payment,omitempty"`
}

func registerOrderRoutes() {
	webserver.ApiPOST("/orders", placeOrder, requireRole(workflow.RoleCustomer, workflow.RoleAdmin))
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus, requireRole(workflow.RoleVendor, workflow.RoleAdmin))
	webserver.ApiGET("/customers/:id/orders", listCustomerOrders, requireRole(workflow.RoleCustomer, workflow.RoleAdmin))
	webserver.ApiGET("/vendors/:id/orders", listVendorOrders, requireRole(workflow.RoleVendor, workflow.RoleAdmin))
}

func placeOrder(c echo.Context) error {
	var payload placeOrderPayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}
	actor := currentActor(c)
	if payload.CustomerID == 0 && actor.Role == workflow.RoleCustomer {
		payload.CustomerID = actor.ID
	}

	result, err := workflows(c).PlaceOrder(c.Request().Context(), actor, workflow.PlaceOrderInput{
		CustomerID:    payload.CustomerID,
		ProductID:     payload.ProductID,
		Quantity:      payload.Quantity,
		PaymentMethod: payload.PaymentMethod,
	})
	if err != nil {
		return failWorkflow(c, err)
	}
	return created(c, result)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, payment, err := workflows(c).Order(c.Request().Context(), currentActor(c), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	return ok(c, orderDetail{Order: order, Payment: payment})
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderStatusPayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}
	actor := currentActor(c)
	if payload.VendorID == 0 && actor.Role == workflow.RoleVendor {
		payload.VendorID = actor.ID
	}

	err = workflows(c).UpdateOrderStatus(c.Request().Context(), actor, payload.VendorID, id, payload.Status)
	if err != nil {
		return failWorkflow(c, err)
	}
	// accepted by the workflow, so the name parses
	status, _ := domain.ParseOrderStatus(payload.Status)
	return ok(c, map[string]interface{}{"order_id": strconv.FormatInt(id, 10), "status": status})
}

func listCustomerOrders(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	orders, err := workflows(c).CustomerOrders(c.Request().Context(), currentActor(c), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	page, pageSize := parsePagination(c)
	return paged(c, pageOf(orders, page, pageSize), int64(len(orders)), page, pageSize)
}

func listVendorOrders(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID", nil)
	}
	orders, err := workflows(c).VendorOrders(c.Request().Context(), currentActor(c), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	page, pageSize := parsePagination(c)
	return paged(c, pageOf(orders, page, pageSize), int64(len(orders)), page, pageSize)
}
