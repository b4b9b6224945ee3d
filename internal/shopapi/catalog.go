package shopapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/catalog"
	"github.com/vitalhub/storefront/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.PubGET("/categories", listCategories)
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
}

func listCategories(c echo.Context) error {
	rows, err := getApp(c).Catalog().Categories(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, rows)
}

// listProducts serves the storefront grid. Filtering and sorting happen
// in-memory over the full active catalog, mirroring what the client does.
func listProducts(c echo.Context) error {
	crit := catalog.Criteria{
		Search:     strings.TrimSpace(c.QueryParam("search")),
		SortKey:    strings.TrimSpace(c.QueryParam("sort")),
		ActiveOnly: true,
	}
	if s := c.QueryParam("category_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid category_id", s)
		}
		crit.CategoryID = id
	}
	if s := c.QueryParam("min_price_cents"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid min_price_cents", s)
		}
		crit.MinPriceCents = v
	}
	if s := c.QueryParam("max_price_cents"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid max_price_cents", s)
		}
		crit.MaxPriceCents = v
	}
	if crit.MaxPriceCents > 0 && crit.MinPriceCents > crit.MaxPriceCents {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "min_price_cents exceeds max_price_cents", nil)
	}

	rows, err := getApp(c).Catalog().Products(c.Request().Context(), 0)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, catalog.FilterAndSort(rows, crit))
}

func getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	row, err := getApp(c).Catalog().Product(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, row)
}
