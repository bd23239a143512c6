package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
)

type productPayload struct {
	VendorID    int64           `json:"vendor_id,string"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"omitempty,max=4000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

func registerProductRoutes() {
	webserver.ApiPOST("/products", createProduct, requireRole(workflow.RoleVendor, workflow.RoleAdmin))
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiGET("/vendors/:id/products", listVendorProducts)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}
	actor := currentActor(c)
	if payload.VendorID == 0 && actor.Role == workflow.RoleVendor {
		payload.VendorID = actor.ID
	}

	product, err := workflows(c).AddProduct(c.Request().Context(), actor, workflow.AddProductInput{
		VendorID:    payload.VendorID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
	})
	if err != nil {
		return failWorkflow(c, err)
	}
	return created(c, product)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := workflows(c).Product(c.Request().Context(), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	return ok(c, product)
}

func listVendorProducts(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID", nil)
	}
	products, err := workflows(c).VendorProducts(c.Request().Context(), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	page, pageSize := parsePagination(c)
	return paged(c, pageOf(products, page, pageSize), int64(len(products)), page, pageSize)
}
