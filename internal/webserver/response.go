package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/store"
)

// RestResult is the uniform response envelope.
type RestResult struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Detail  interface{} `json:"detail,omitempty"`
}

// PageResult wraps a paginated listing.
type PageResult struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// OK renders a successful response.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, RestResult{Code: "OK", Data: data})
}

// Fail renders a typed error response. Detail is for operators, not users;
// raw backend errors never travel in Message.
func Fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, RestResult{Code: code, Message: message, Detail: detail})
}

// Paged renders a paginated successful response.
func Paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, RestResult{Code: "OK", Data: PageResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}})
}

// FailErr maps a service error onto the shared taxonomy codes.
func FailErr(c echo.Context, err error) error {
	switch {
	case store.IsValidation(err):
		return Fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case store.IsAuthRequired(err):
		return Fail(c, http.StatusUnauthorized, "AUTH_REQUIRED", "Sign in to continue", nil)
	case store.IsNotFound(err):
		return Fail(c, http.StatusNotFound, "NOT_FOUND", "Requested item was not found", nil)
	case store.IsUnavailable(err):
		return Fail(c, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE", "Service is temporarily unavailable, please retry", nil)
	default:
		return Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected server error", nil)
	}
}
