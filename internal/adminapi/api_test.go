package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/app"
	"github.com/vitalhub/storefront/internal/domain"
	"github.com/vitalhub/storefront/internal/store"
	"github.com/vitalhub/storefront/internal/store/boltstore"
	"github.com/vitalhub/storefront/internal/webserver"
	"github.com/vitalhub/storefront/pkg/common"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func setupAdmin(t *testing.T) (*echo.Echo, *boltstore.Store) {
	t.Helper()
	st, err := boltstore.Open(filepath.Join(t.TempDir(), "admin_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	hashed, err := bcrypt.GenerateFromPassword([]byte("storefront"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, st.SaveOperator(context.Background(), &domain.SysOpr{
		Username: "admin",
		Password: string(hashed),
		Level:    webserver.LevelSuper,
		Status:   common.ENABLED,
	}))

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

func operatorToken(t *testing.T) string {
	t.Helper()
	token, err := webserver.IssueOperatorToken(testSecret, "admin", webserver.LevelSuper, time.Hour)
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

// slowCategoryStore widens the window in which concurrent category fetches
// collapse into one shared result.
type slowCategoryStore struct {
	store.Store
	delay time.Duration
}

func (s *slowCategoryStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	time.Sleep(s.delay)
	return s.Store.ListCategories(ctx)
}

func TestConcurrentCategoryFilterLeavesListingIntact(t *testing.T) {
	st, err := boltstore.Open(filepath.Join(t.TempDir(), "cat_race_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	for _, name := range []string{"Phones", "Accessories", "Laptops"} {
		require.NoError(t, st.CreateCategory(context.Background(), &domain.Category{Name: name}))
	}

	cfg := &config.AppConfig{Web: config.WebConfig{JwtSecret: testSecret}}
	application := app.NewApplication(cfg)
	application.OverrideStore(&slowCategoryStore{Store: st, delay: 20 * time.Millisecond})
	e := webserver.Init(application)
	Register()
	token := operatorToken(t)

	// Filtered requests must never disturb what a concurrent unfiltered
	// request is serializing from the same fetch.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		filtered := i%2 == 0
		wg.Add(1)
		go func(filtered bool) {
			defer wg.Done()
			target := "/admin/categories"
			if filtered {
				target += "?q=acc"
			}
			rec := doJSON(e, http.MethodGet, target, token, "")
			if !assert.Equal(t, http.StatusOK, rec.Code) {
				return
			}
			var envelope struct {
				Code string            `json:"code"`
				Data []domain.Category `json:"data"`
			}
			if !assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope)) {
				return
			}
			if filtered {
				if assert.Len(t, envelope.Data, 1) {
					assert.Equal(t, "Accessories", envelope.Data[0].Name)
				}
				return
			}
			got := make([]string, 0, len(envelope.Data))
			for _, c := range envelope.Data {
				got = append(got, c.Name)
			}
			assert.ElementsMatch(t, []string{"Phones", "Accessories", "Laptops"}, got)
		}(filtered)
	}
	wg.Wait()
}

func TestLoginIssuesToken(t *testing.T) {
	e, _ := setupAdmin(t)

	rec := doJSON(e, http.MethodPost, "/admin/login", "", `{"username":"admin","password":"storefront"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	decodeData(t, rec, &resp)
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "admin", resp["username"])
	assert.Equal(t, webserver.LevelSuper, resp["level"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e, _ := setupAdmin(t)

	rec := doJSON(e, http.MethodPost, "/admin/login", "", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "LOGIN_FAILED")

	// Unknown account reads exactly like a wrong password
	rec2 := doJSON(e, http.MethodPost, "/admin/login", "", `{"username":"ghost","password":"wrong"}`)
	assert.Equal(t, rec.Body.String(), rec2.Body.String())
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	e, st := setupAdmin(t)
	opr, err := st.GetOperator(context.Background(), "admin")
	require.NoError(t, err)
	opr.Status = common.DISABLED
	require.NoError(t, st.SaveOperator(context.Background(), opr))

	rec := doJSON(e, http.MethodPost, "/admin/login", "", `{"username":"admin","password":"storefront"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_DISABLED")
}

func TestAdminRoutesRequireOperatorLevel(t *testing.T) {
	e, _ := setupAdmin(t)

	rec := doJSON(e, http.MethodGet, "/admin/products", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A customer token carries no operator level
	customer, err := webserver.IssueOperatorToken(testSecret, "customer-7", "", time.Hour)
	require.NoError(t, err)
	rec = doJSON(e, http.MethodGet, "/admin/products", customer, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCategoryCrud(t *testing.T) {
	e, _ := setupAdmin(t)
	token := operatorToken(t)

	rec := doJSON(e, http.MethodPost, "/admin/categories", token, `{"name":"Phones","slug":"phones"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cat domain.Category
	decodeData(t, rec, &cat)
	require.NotZero(t, cat.ID)

	rec = doJSON(e, http.MethodGet, "/admin/categories?q=pho", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []domain.Category
	decodeData(t, rec, &rows)
	assert.Len(t, rows, 1)

	rec = doJSON(e, http.MethodDelete, "/admin/categories/"+strconv.FormatInt(cat.ID, 10), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/admin/categories/"+strconv.FormatInt(cat.ID, 10), token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductCrudAndPagination(t *testing.T) {
	e, _ := setupAdmin(t)
	token := operatorToken(t)

	for _, name := range []string{"iPhone 15 Pro", "Galaxy S24", "Power Bank"} {
		body := `{"name":"` + name + `","price_cents":100000,"stock":3}`
		rec := doJSON(e, http.MethodPost, "/admin/products", token, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doJSON(e, http.MethodGet, "/admin/products?perPage=2&sort=name", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pageData struct {
		Items []domain.ProductView `json:"items"`
		Total int64                `json:"total"`
		Page  int                  `json:"page"`
	}
	decodeData(t, rec, &pageData)
	assert.EqualValues(t, 3, pageData.Total)
	assert.Len(t, pageData.Items, 2)

	rec = doJSON(e, http.MethodGet, "/admin/products?q=galaxy", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &pageData)
	assert.EqualValues(t, 1, pageData.Total)

	// Update and verify
	id := strconv.FormatInt(pageData.Items[0].ID, 10)
	rec = doJSON(e, http.MethodPut, "/admin/products/"+id, token,
		`{"name":"Galaxy S24 Ultra","price_cents":5500000,"stock":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodGet, "/admin/products/"+id, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var row domain.ProductView
	decodeData(t, rec, &row)
	assert.Equal(t, "Galaxy S24 Ultra", row.Name)
	assert.EqualValues(t, 5500000, row.PriceCents)

	rec = doJSON(e, http.MethodDelete, "/admin/products/"+id, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(e, http.MethodGet, "/admin/products/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidation(t *testing.T) {
	e, _ := setupAdmin(t)
	token := operatorToken(t)

	rec := doJSON(e, http.MethodPost, "/admin/products", token, `{"name":"","price_cents":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/admin/products", token, `{"name":"x","price_cents":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBargainRespondFlow(t *testing.T) {
	e, st := setupAdmin(t)
	token := operatorToken(t)

	offer := &domain.BargainOffer{
		ProductID: 1, CustomerName: "Okello James",
		CustomerPhone: "+256700000001", OfferedPriceCents: 4000000, Qty: 1,
	}
	require.NoError(t, st.CreateOffer(context.Background(), offer))

	rec := doJSON(e, http.MethodGet, "/admin/bargains?status=pending", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pageData struct {
		Items []domain.BargainOffer `json:"items"`
		Total int64                 `json:"total"`
	}
	decodeData(t, rec, &pageData)
	require.EqualValues(t, 1, pageData.Total)

	id := strconv.FormatInt(offer.ID, 10)
	rec = doJSON(e, http.MethodPut, "/admin/bargains/"+id, token,
		`{"status":"accepted","response":"Deal."}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rows, err := st.ListOffers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.BargainStatusAccepted, rows[0].Status)
	assert.Equal(t, "Deal.", rows[0].AdminResponse)

	rec = doJSON(e, http.MethodPut, "/admin/bargains/"+id, token, `{"status":"haggled"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodGet, "/admin/bargains?status=haggled", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportProductsCsv(t *testing.T) {
	e, st := setupAdmin(t)
	token := operatorToken(t)

	require.NoError(t, st.CreateProduct(context.Background(), &domain.Product{
		Name: "iPhone 15 Pro", PriceCents: 4500000, Stock: 5, Active: true,
	}))

	rec := doJSON(e, http.MethodGet, "/admin/products/export", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "products.csv")
	body := rec.Body.String()
	assert.Contains(t, body, "name")
	assert.Contains(t, body, "iPhone 15 Pro")
	assert.Contains(t, body, "4500000")
}

func TestSystemInfo(t *testing.T) {
	e, _ := setupAdmin(t)
	rec := doJSON(e, http.MethodGet, "/admin/system/info", operatorToken(t), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info map[string]interface{}
	decodeData(t, rec, &info)
	assert.Equal(t, "bolt", info["backend"])
	assert.NotEmpty(t, info["go_version"])
}

// Every admin mutation leaves a row in the operator audit trail, readable
// back through /admin/oprlogs newest first.
func TestAdminMutationsWriteAuditTrail(t *testing.T) {
	e, st := setupAdmin(t)
	token := operatorToken(t)

	rec := doJSON(e, http.MethodPost, "/admin/categories", token, `{"name":"Phones"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cat domain.Category
	decodeData(t, rec, &cat)

	rec = doJSON(e, http.MethodDelete, "/admin/categories/"+strconv.FormatInt(cat.ID, 10), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	logs, err := st.ListOprLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "delete_category", logs[0].OptAction)
	assert.Equal(t, "create_category", logs[1].OptAction)
	assert.Equal(t, "admin", logs[0].OprName)
	assert.NotEmpty(t, logs[0].OprIp)
	assert.Contains(t, logs[1].OptDesc, "Phones")

	rec = doJSON(e, http.MethodGet, "/admin/oprlogs", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []domain.SysOprLog `json:"items"`
		Total int64              `json:"total"`
	}
	decodeData(t, rec, &page)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "delete_category", page.Items[0].OptAction)
}
