package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
	"go.uber.org/zap"
)

type Response struct {
	Code    string      `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

type ListResponse struct {
	Code string      `json:"code"`
	Data interface{} `json:"data"`
	Meta PageMeta    `json:"meta"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "OK", Data: data})
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Code: "OK", Data: data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, Response{Code: code, Message: message, Detail: detail})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, ListResponse{
		Code: "OK",
		Data: data,
		Meta: PageMeta{Total: total, Page: page, PageSize: pageSize},
	})
}

// parsePagination reads page and pageSize query params, defaulting to 1 and 20.
func parsePagination(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

// pageOf slices one page out of an in-memory listing.
func pageOf[T any](rows []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []T{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func currentActor(c echo.Context) workflow.Actor {
	actor, _ := webserver.GetActor(c)
	return actor
}

// workflowStatus maps a workflow error kind to its HTTP status.
func workflowStatus(kind workflow.Kind) int {
	switch kind {
	case workflow.KindNotFound:
		return http.StatusNotFound
	case workflow.KindInsufficientStock, workflow.KindDuplicateReview:
		return http.StatusConflict
	case workflow.KindForbidden:
		return http.StatusForbidden
	case workflow.KindNotEligible:
		return http.StatusUnprocessableEntity
	case workflow.KindInvalidInput:
		return http.StatusBadRequest
	case workflow.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func failWorkflow(c echo.Context, err error) error {
	kind := workflow.KindOf(err)
	status := workflowStatus(kind)
	if kind == "" {
		zap.L().Error("unexpected workflow error", zap.String("namespace", "adminapi"), zap.Error(err))
		return fail(c, status, "SERVER_ERROR", "Internal error", nil)
	}
	if workflow.IsRetryable(err) {
		c.Response().Header().Set("Retry-After", "1")
		return fail(c, status, string(kind), "Storage temporarily unavailable, retry later", nil)
	}
	return fail(c, status, string(kind), err.Error(), nil)
}

// bindAndValidate decodes the body into payload and checks its validate tags.
func bindAndValidate(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to parse request body").SetInternal(err)
	}
	if err := c.Validate(payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// requireRole rejects callers whose role is not listed.
func requireRole(roles ...workflow.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := currentActor(c)
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return fail(c, http.StatusForbidden, string(workflow.KindForbidden), "Role not permitted", nil)
		}
	}
}
