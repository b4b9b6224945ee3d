package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/webserver"
	"go.uber.org/zap"
)

// productCsvRow is the flat CSV shape for product export and import.
type productCsvRow struct {
	ID           int64  `csv:"id"`
	Name         string `csv:"name"`
	Slug         string `csv:"slug"`
	Description  string `csv:"description"`
	PriceCents   int64  `csv:"price_cents"`
	Stock        int    `csv:"stock"`
	Active       bool   `csv:"active"`
	CategoryID   int64  `csv:"category_id"`
	CategoryName string `csv:"category_name"`
	Images       string `csv:"images"`
}

func registerProductCsvRoutes() {
	webserver.ApiGET("/products/export", exportProductsCsv)
	webserver.ApiPOST("/products/import", importProductsCsv)
}

func exportProductsCsv(c echo.Context) error {
	rows, err := getApp(c).Catalog().Products(c.Request().Context(), 0)
	if err != nil {
		return failErr(c, err)
	}
	csvRows := make([]productCsvRow, 0, len(rows))
	for _, row := range rows {
		csvRows = append(csvRows, productCsvRow{
			ID:           row.ID,
			Name:         row.Name,
			Slug:         row.Slug,
			Description:  row.Description,
			PriceCents:   row.PriceCents,
			Stock:        row.Stock,
			Active:       row.Active,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Images:       strings.Join(row.ImageURLs, "|"),
		})
	}
	data, err := gocsv.MarshalBytes(&csvRows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "CSV export failed", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// importProductsCsv creates or updates products from an uploaded CSV.
// Rows with an ID update the existing product, rows without create a new one.
func importProductsCsv(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing CSV upload", err.Error())
	}
	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to open upload", err.Error())
	}
	defer src.Close()

	var csvRows []productCsvRow
	if err := gocsv.Unmarshal(src, &csvRows); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse CSV", err.Error())
	}

	ctx := c.Request().Context()
	catalog := getApp(c).Catalog()
	created, updated, failed := 0, 0, 0
	for _, row := range csvRows {
		p := &domain.Product{
			ID:          row.ID,
			Name:        strings.TrimSpace(row.Name),
			Slug:        strings.TrimSpace(row.Slug),
			Description: row.Description,
			PriceCents:  row.PriceCents,
			Stock:       row.Stock,
			Active:      row.Active,
			CategoryID:  row.CategoryID,
		}
		if row.Images != "" {
			p.SetImageList(strings.Split(row.Images, "|"))
		}
		if p.ID > 0 {
			err = catalog.UpdateProduct(ctx, p)
		} else {
			err = catalog.CreateProduct(ctx, p)
		}
		switch {
		case err != nil:
			failed++
			zap.L().Warn("product import row skipped",
				zap.String("name", row.Name), zap.Error(err))
		case row.ID > 0:
			updated++
		default:
			created++
		}
	}
	auditLog(c, "import_products_csv",
		fmt.Sprintf("created %d, updated %d, failed %d", created, updated, failed))
	return ok(c, map[string]int{"created": created, "updated": updated, "failed": failed})
}
