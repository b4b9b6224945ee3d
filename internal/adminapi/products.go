package adminapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/webserver"
)

type productPayload struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Slug        string   `json:"slug" validate:"omitempty,max=200"`
	Description string   `json:"description" validate:"omitempty,max=4000"`
	PriceCents  int64    `json:"price_cents"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Active      *bool    `json:"active"`
	CategoryID  int64    `json:"category_id,string"`
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	registerProductCsvRoutes()
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	rows, err := getApp(c).Catalog().Products(c.Request().Context(), 0)
	if err != nil {
		return failErr(c, err)
	}

	// Filters: q matches name, created_after/created_before accept any
	// reasonable date format
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		lq := strings.ToLower(q)
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), lq) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}
	if rows, err = filterCreatedRange(c, rows); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse date filter", err.Error())
	}

	// Sorting: field and order, whitelisted
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	desc := strings.EqualFold(strings.TrimSpace(c.QueryParam("order")), "DESC")
	sortProductRows(rows, sortField, desc)

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

func filterCreatedRange(c echo.Context, rows []domain.ProductView) ([]domain.ProductView, error) {
	after, before := time.Time{}, time.Time{}
	if s := strings.TrimSpace(c.QueryParam("created_after")); s != "" {
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return nil, err
		}
		after = t
	}
	if s := strings.TrimSpace(c.QueryParam("created_before")); s != "" {
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return nil, err
		}
		before = t
	}
	if after.IsZero() && before.IsZero() {
		return rows, nil
	}
	filtered := rows[:0]
	for _, row := range rows {
		if !after.IsZero() && row.CreatedAt.Before(after) {
			continue
		}
		if !before.IsZero() && row.CreatedAt.After(before) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

func sortProductRows(rows []domain.ProductView, field string, desc bool) {
	var less func(i, j int) bool
	switch field {
	case "name":
		less = func(i, j int) bool { return rows[i].Name < rows[j].Name }
	case "price":
		less = func(i, j int) bool { return rows[i].PriceCents < rows[j].PriceCents }
	case "stock":
		less = func(i, j int) bool { return rows[i].Stock < rows[j].Stock }
	case "created_at":
		less = func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) }
	default:
		less = func(i, j int) bool { return rows[i].ID < rows[j].ID }
	}
	if desc {
		orig := less
		less = func(i, j int) bool { return orig(j, i) }
	}
	sort.SliceStable(rows, less)
}

func getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	row, err := getApp(c).Catalog().Product(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, row)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	row, err := productFromPayload(&payload)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	if err := getApp(c).Catalog().CreateProduct(c.Request().Context(), row); err != nil {
		return failErr(c, err)
	}
	auditLog(c, "create_product", fmt.Sprintf("product %d %q", row.ID, row.Name))
	return ok(c, row)
}

func updateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	row, err := productFromPayload(&payload)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	row.ID = id
	if err := getApp(c).Catalog().UpdateProduct(c.Request().Context(), row); err != nil {
		return failErr(c, err)
	}
	auditLog(c, "update_product", fmt.Sprintf("product %d %q", row.ID, row.Name))
	return ok(c, row)
}

func deleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := getApp(c).Catalog().DeleteProduct(c.Request().Context(), id); err != nil {
		return failErr(c, err)
	}
	auditLog(c, "delete_product", fmt.Sprintf("product %d", id))
	return ok(c, map[string]interface{}{"id": strconv.FormatInt(id, 10)})
}

func productFromPayload(payload *productPayload) (*domain.Product, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return nil, errRequired("name")
	}
	if payload.PriceCents < 0 {
		return nil, errNegative("price_cents")
	}
	if payload.Stock < 0 {
		return nil, errNegative("stock")
	}
	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	row := &domain.Product{
		Name:        payload.Name,
		Slug:        strings.TrimSpace(payload.Slug),
		Description: strings.TrimSpace(payload.Description),
		PriceCents:  payload.PriceCents,
		Stock:       payload.Stock,
		Active:      active,
		CategoryID:  payload.CategoryID,
	}
	row.SetImageList(payload.Images)
	return row, nil
}
