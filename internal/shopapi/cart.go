package shopapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/webserver"
)

type cartAddPayload struct {
	ProductID int64 `json:"product_id,string" validate:"required"`
	Qty       int   `json:"qty" validate:"required,min=1"`
}

type cartQtyPayload struct {
	Qty int `json:"qty" validate:"required,min=1"`
}

func registerCartRoutes() {
	webserver.UserGET("/cart", loadCart)
	webserver.UserPOST("/cart/items", addCartItem)
	webserver.UserPUT("/cart/items/:productId", updateCartItem)
	webserver.UserDELETE("/cart/items/:productId", removeCartItem)
	webserver.UserDELETE("/cart", clearCart)
}

func loadCart(c echo.Context) error {
	lines, err := getApp(c).Cart().Load(c.Request().Context(), webserver.UserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, lines)
}

// addCartItem merges qty into any existing line for the same product; the
// unit price is snapshotted from the catalog on first add.
func addCartItem(c echo.Context) error {
	var payload cartAddPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	ctx := c.Request().Context()
	ap := getApp(c)
	view, err := ap.Catalog().Product(ctx, payload.ProductID)
	if err != nil {
		return failErr(c, err)
	}
	lines, err := ap.Cart().Add(ctx, webserver.UserID(c), &view.Product, payload.Qty)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, lines)
}

func updateCartItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload cartQtyPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	lines, err := getApp(c).Cart().UpdateQuantity(c.Request().Context(), webserver.UserID(c), productID, payload.Qty)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, lines)
}

func removeCartItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	lines, err := getApp(c).Cart().Remove(c.Request().Context(), webserver.UserID(c), productID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, lines)
}

func clearCart(c echo.Context) error {
	if err := getApp(c).Cart().Clear(c.Request().Context(), webserver.UserID(c)); err != nil {
		return failErr(c, err)
	}
	return ok(c, []struct{}{})
}
