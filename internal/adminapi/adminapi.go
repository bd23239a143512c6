package adminapi

import (
	"github.com/labstack/echo/v4"
	"github.com/talkincode/vendorhub/internal/app"
	"github.com/talkincode/vendorhub/internal/webserver"
	"github.com/talkincode/vendorhub/internal/workflow"
	"gorm.io/gorm"
)

const appContextKey = "appctx"

// Init wires the application into the api group and registers every route.
// webserver.Init must have been called first.
func Init(appCtx app.AppContext) {
	webserver.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})
	registerOrderRoutes()
	registerReviewRoutes()
	registerProductRoutes()
	registerVendorRoutes()
	registerSystemRoutes()
}

func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}

func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

func workflows(c echo.Context) *workflow.Service {
	return GetAppContext(c).Workflows()
}
