package shopapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/app"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store/boltstore"
	"github.com/vitalhub/storefront/internal/webserver"
)

const testSecret = "test-secret"

func setupAPI(t *testing.T) (*echo.Echo, *boltstore.Store) {
	t.Helper()
	st, err := boltstore.Open(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.AppConfig{
		Web: config.WebConfig{JwtSecret: testSecret},
		Checkout: config.CheckoutConfig{
			BusinessPhone: "+256789230136",
			StoreName:     "Vital Electronics",
		},
	}
	application := app.NewApplication(cfg)
	application.OverrideStore(st)

	e := webserver.Init(application)
	Register()
	return e, st
}

func userToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := webserver.IssueOperatorToken(testSecret, userID, "", time.Hour)
	require.NoError(t, err)
	return token
}

func doJSON(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Code string          `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "OK", envelope.Code)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func seedCatalog(t *testing.T, st *boltstore.Store) (phones *domain.Category, iphone, hidden *domain.Product) {
	t.Helper()
	ctx := context.Background()
	phones = &domain.Category{Name: "Phones", Slug: "phones"}
	require.NoError(t, st.CreateCategory(ctx, phones))

	iphone = &domain.Product{
		Name: "iPhone 15 Pro", Slug: "iphone-15-pro",
		PriceCents: 4500000, Stock: 5, Active: true, CategoryID: phones.ID,
	}
	require.NoError(t, st.CreateProduct(ctx, iphone))

	hidden = &domain.Product{
		Name: "Old Stock Phone", PriceCents: 100000, Active: false, CategoryID: phones.ID,
	}
	require.NoError(t, st.CreateProduct(ctx, hidden))
	return phones, iphone, hidden
}

func TestListProductsPublic(t *testing.T) {
	e, st := setupAPI(t)
	_, _, _ = seedCatalog(t, st)

	rec := doJSON(e, http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.ProductView
	decodeData(t, rec, &rows)
	// Inactive products never reach the storefront
	require.Len(t, rows, 1)
	assert.Equal(t, "iPhone 15 Pro", rows[0].Name)
	assert.Equal(t, "Phones", rows[0].CategoryName)
}

func TestListProductsFilterParams(t *testing.T) {
	e, st := setupAPI(t)
	seedCatalog(t, st)

	rec := doJSON(e, http.MethodGet, "/api/products?search=iphone&sort=price-low", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []domain.ProductView
	decodeData(t, rec, &rows)
	assert.Len(t, rows, 1)

	rec = doJSON(e, http.MethodGet, "/api/products?min_price_cents=9000000", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rows = nil
	decodeData(t, rec, &rows)
	assert.Empty(t, rows)

	rec = doJSON(e, http.MethodGet, "/api/products?min_price_cents=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/products?min_price_cents=200&max_price_cents=100", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProductNotFound(t *testing.T) {
	e, _ := setupAPI(t)
	rec := doJSON(e, http.MethodGet, "/api/products/424242", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestCartRequiresToken(t *testing.T) {
	e, _ := setupAPI(t)
	rec := doJSON(e, http.MethodGet, "/api/cart", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartFlow(t *testing.T) {
	e, st := setupAPI(t)
	_, iphone, _ := seedCatalog(t, st)
	token := userToken(t, "customer-7")

	body := `{"product_id":"` + strconv.FormatInt(iphone.ID, 10) + `","qty":2}`
	rec := doJSON(e, http.MethodPost, "/api/cart/items", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var lines []domain.CartLine
	decodeData(t, rec, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, "iPhone 15 Pro", lines[0].ProductName)

	// Same product again merges, never a second line
	rec = doJSON(e, http.MethodPost, "/api/cart/items", token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	lines = nil
	decodeData(t, rec, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Qty)

	// Update quantity in place
	pid := strconv.FormatInt(iphone.ID, 10)
	rec = doJSON(e, http.MethodPut, "/api/cart/items/"+pid, token, `{"qty":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	lines = nil
	decodeData(t, rec, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty)

	// Checkout composes the WhatsApp message from the live cart
	rec = doJSON(e, http.MethodPost, "/api/checkout/whatsapp", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var msg struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	decodeData(t, rec, &msg)
	assert.Contains(t, msg.Text, "iPhone 15 Pro")
	assert.Contains(t, msg.Text, "UGX 4,500,000")
	assert.True(t, strings.HasPrefix(msg.URL, "https://wa.me/256789230136?text="), msg.URL)

	// Clear, then checkout is a validation error
	rec = doJSON(e, http.MethodDelete, "/api/cart", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/checkout/whatsapp", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
}

func TestCartRejectsZeroQty(t *testing.T) {
	e, st := setupAPI(t)
	_, iphone, _ := seedCatalog(t, st)
	token := userToken(t, "customer-7")

	body := `{"product_id":"` + strconv.FormatInt(iphone.ID, 10) + `","qty":0}`
	rec := doJSON(e, http.MethodPost, "/api/cart/items", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAddUnknownProduct(t *testing.T) {
	e, _ := setupAPI(t)
	token := userToken(t, "customer-7")
	rec := doJSON(e, http.MethodPost, "/api/cart/items", token, `{"product_id":"99999","qty":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitBargainPublic(t *testing.T) {
	e, st := setupAPI(t)
	_, iphone, _ := seedCatalog(t, st)

	body := `{"product_id":"` + strconv.FormatInt(iphone.ID, 10) + `",` +
		`"customer_name":"Okello James","customer_phone":"+256700000001",` +
		`"offered_price_cents":4000000,"message":"Can you do 4M?"}`
	rec := doJSON(e, http.MethodPost, "/api/bargains", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var offer domain.BargainOffer
	decodeData(t, rec, &offer)
	assert.Equal(t, domain.BargainStatusPending, offer.Status)
	assert.Equal(t, 1, offer.Qty)

	// Unknown product is rejected
	rec = doJSON(e, http.MethodPost, "/api/bargains",
		"", `{"product_id":"777","customer_name":"x","customer_phone":"12345","offered_price_cents":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
