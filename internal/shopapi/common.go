package shopapi

import (
	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/app"
	"github.com/vitalhub/storefront/internal/webserver"
)

// Register wires the storefront endpoints. Call after webserver.Init.
func Register() {
	registerCatalogRoutes()
	registerCartRoutes()
	registerCheckoutRoutes()
	registerBargainRoutes()
}

func getApp(c echo.Context) app.AppContext {
	return webserver.GetApp(c)
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return webserver.Fail(c, status, code, message, detail)
}

func failErr(c echo.Context, err error) error {
	return webserver.FailErr(c, err)
}
