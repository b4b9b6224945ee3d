package adminapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/vitalhub/storefront/internal/app"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/webserver"
	"go.uber.org/zap"
)

// Register wires every admin endpoint. Call after webserver.Init.
func Register() {
	registerLoginRoutes()
	registerCategoryRoutes()
	registerProductRoutes()
	registerBargainRoutes()
	registerSystemRoutes()
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

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return webserver.Paged(c, items, total, page, pageSize)
}

// parsePagination accepts both perPage (front-end) and pageSize params.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
		return
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// auditLog records an operator mutation in the audit trail. A failed write
// is logged and swallowed; auditing never fails the request that succeeded.
func auditLog(c echo.Context, action, desc string) {
	l := &domain.SysOprLog{
		OprName:   webserver.UserID(c),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
	}
	if err := getApp(c).Store().SaveOprLog(c.Request().Context(), l); err != nil {
		zap.L().Error("save operator log failed", zap.String("action", action), zap.Error(err))
		return
	}
	zap.L().Info("operator action",
		zap.String("operator", l.OprName),
		zap.String("action", action),
		zap.String("desc", desc),
		zap.String("namespace", "audit"))
}

func errRequired(field string) error {
	return errors.Errorf("%s is required", field)
}

func errNegative(field string) error {
	return errors.Errorf("%s must not be negative", field)
}
