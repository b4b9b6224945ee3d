package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/webserver"
)

type bargainResponsePayload struct {
	Status   string `json:"status" validate:"required"`
	Response string `json:"response" validate:"omitempty,max=2000"`
}

func registerBargainRoutes() {
	webserver.ApiGET("/bargains", listBargains)
	webserver.ApiPUT("/bargains/:id", respondBargain)
}

func listBargains(c echo.Context) error {
	page, pageSize := parsePagination(c)
	status := strings.TrimSpace(c.QueryParam("status"))
	if status != "" && !domain.ValidBargainStatus(status) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown bargain status", status)
	}

	rows, err := getApp(c).Bargain().List(c.Request().Context(), status)
	if err != nil {
		return failErr(c, err)
	}

	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return paged(c, rows[start:end], total, page, pageSize)
}

func respondBargain(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid offer ID", nil)
	}
	var payload bargainResponsePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse response", err.Error())
	}
	if err := getApp(c).Bargain().Respond(c.Request().Context(), id, payload.Status, payload.Response); err != nil {
		return failErr(c, err)
	}
	auditLog(c, "respond_bargain", fmt.Sprintf("offer %d -> %s", id, payload.Status))
	return ok(c, map[string]interface{}{"id": c.Param("id"), "status": payload.Status})
}
