package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/webserver"
)

type bargainPayload struct {
	ProductID         int64  `json:"product_id,string" validate:"required"`
	CustomerName      string `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerPhone     string `json:"customer_phone" validate:"required,min=5,max=32"`
	OfferedPriceCents int64  `json:"offered_price_cents" validate:"required,min=1"`
	Qty               int    `json:"qty"`
	Message           string `json:"message" validate:"omitempty,max=2000"`
}

func registerBargainRoutes() {
	webserver.PubPOST("/bargains", submitBargain)
}

// submitBargain accepts a price proposal from the storefront. The product
// must exist; the offer lands in the admin queue as pending.
func submitBargain(c echo.Context) error {
	var payload bargainPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse offer", err.Error())
	}
	ctx := c.Request().Context()
	ap := getApp(c)
	if _, err := ap.Catalog().Product(ctx, payload.ProductID); err != nil {
		return failErr(c, err)
	}
	qty := payload.Qty
	if qty < 1 {
		qty = 1
	}
	offer := &domain.BargainOffer{
		ProductID:         payload.ProductID,
		CustomerName:      strings.TrimSpace(payload.CustomerName),
		CustomerPhone:     strings.TrimSpace(payload.CustomerPhone),
		OfferedPriceCents: payload.OfferedPriceCents,
		Qty:               qty,
		Message:           strings.TrimSpace(payload.Message),
	}
	if err := ap.Bargain().Submit(ctx, offer); err != nil {
		return failErr(c, err)
	}
	return ok(c, offer)
}
