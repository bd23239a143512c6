package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
)

type reviewPayload struct {
	CustomerID int64  `json:"customer_id,string"`
	ProductID  int64  `json:"product_id,string" validate:"required"`
	Rating     int    `json:"rating"`
	Sentiment  string `json:"sentiment" validate:"required"`
	Comment    string `json:"comment" validate:"omitempty,max=2000"`
}

func registerReviewRoutes() {
	webserver.ApiPOST("/reviews", submitReview, requireRole(workflow.RoleCustomer, workflow.RoleAdmin))
	webserver.ApiGET("/vendors/:id/reviews", listVendorReviews)
}

func submitReview(c echo.Context) error {
	var payload reviewPayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}
	actor := currentActor(c)
	if payload.CustomerID == 0 && actor.Role == workflow.RoleCustomer {
		payload.CustomerID = actor.ID
	}

	result, err := workflows(c).SubmitReview(c.Request().Context(), actor, workflow.SubmitReviewInput{
		CustomerID: payload.CustomerID,
		ProductID:  payload.ProductID,
		Rating:     payload.Rating,
		Sentiment:  payload.Sentiment,
		Comment:    payload.Comment,
	})
	if err != nil {
		return failWorkflow(c, err)
	}
	return created(c, result)
}

func listVendorReviews(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID", nil)
	}
	reviews, err := workflows(c).VendorReviews(c.Request().Context(), id)
	if err != nil {
		return failWorkflow(c, err)
	}
	page, pageSize := parsePagination(c)
	return paged(c, pageOf(reviews, page, pageSize), int64(len(reviews)), page, pageSize)
}
