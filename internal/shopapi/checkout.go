package shopapi

import (
	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/webserver"
)

func registerCheckoutRoutes() {
	webserver.UserPOST("/checkout/whatsapp", checkoutWhatsapp)
}

// checkoutWhatsapp renders the current cart as a WhatsApp order message and
// returns the wa.me deep link. The cart itself is left untouched; the
// conversation with the store finishes the order.
func checkoutWhatsapp(c echo.Context) error {
	ctx := c.Request().Context()
	ap := getApp(c)
	lines, err := ap.Cart().Load(ctx, webserver.UserID(c))
	if err != nil {
		return failErr(c, err)
	}
	msg, err := ap.Composer().Compose(lines)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, msg)
}
