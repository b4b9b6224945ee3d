package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/webserver"
)

type categoryPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Slug        string `json:"slug" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Image       string `json:"image" validate:"omitempty,max=1024"`
}

// registerCategoryRoutes registers category CRUD endpoints
func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiGET("/categories/:id", getCategory)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	rows, err := getApp(c).Catalog().Categories(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		filtered := make([]domain.Category, 0, len(rows))
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), strings.ToLower(q)) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	return ok(c, rows)
}

func getCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	row, err := getApp(c).Store().GetCategory(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, row)
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	row := domain.Category{
		Name:        payload.Name,
		Slug:        strings.TrimSpace(payload.Slug),
		Description: strings.TrimSpace(payload.Description),
		Image:       strings.TrimSpace(payload.Image),
	}
	if err := getApp(c).Catalog().CreateCategory(c.Request().Context(), &row); err != nil {
		return failErr(c, err)
	}
	auditLog(c, "create_category", fmt.Sprintf("category %d %q", row.ID, row.Name))
	return ok(c, row)
}

// deleteCategory removes the category only; products referencing it keep
// their dangling id and render with the Unknown label.
func deleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	if err := getApp(c).Catalog().DeleteCategory(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	auditLog(c, "delete_category", fmt.Sprintf("category %d", id))
	return ok(c, map[string]interface{}{"id": id})
}
