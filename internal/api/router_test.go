package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodmart/storefront/internal/api"
	"github.com/woodmart/storefront/internal/api/middleware"
	"github.com/woodmart/storefront/internal/infrastructure/db/sqlstore"
	"github.com/woodmart/storefront/internal/infrastructure/http/handlers"
	"github.com/woodmart/storefront/internal/infrastructure/seed"
	"github.com/woodmart/storefront/internal/infrastructure/session"
)

// client keeps the session cookie between requests like a browser would.
type client struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func (c *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name != middleware.DefaultCookieName {
			continue
		}
		if ck.MaxAge < 0 {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) json(method, path, body string) *httptest.ResponseRecorder {
	return c.do(method, path, echo.MIMEApplicationJSON, body)
}

func (c *client) form(path, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, echo.MIMEApplicationForm, body)
}

type summary struct {
	Items []struct {
		ProductID string  `json:"product_id"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
		LineTotal float64 `json:"line_total"`
	} `json:"items"`
	Total           float64 `json:"total"`
	Count           int     `json:"count"`
	IsAuthenticated bool    `json:"is_authenticated"`
}

func (c *client) summary() summary {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/api/cart", "", "")
	require.Equal(c.t, http.StatusOK, rec.Code)
	var s summary
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func setupRouter(t *testing.T) (*echo.Echo, *session.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	db, err := sqlstore.Open(ctx, sqlstore.Config{Dialect: sqlstore.SQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlstore.Migrate(db, sqlstore.SQLite))

	users := sqlstore.NewUserRepository(db, sqlstore.SQLite)
	products := sqlstore.NewProductRepository(db, sqlstore.SQLite)
	require.NoError(t, seed.Run(ctx, users, products, zerolog.Nop()))

	sessions := session.NewMemoryStore(time.Hour)
	e := api.NewRouter(api.Dependencies{
		Products:      products,
		Users:         users,
		Sessions:      sessions,
		SessionSecret: "test-secret",
		Checks:        []handlers.Check{handlers.SQLCheck("sqlite", db)},
		Log:           zerolog.Nop(),
	})
	return e, sessions
}

func TestStorefront_ShoppingScenario(t *testing.T) {
	e, sessions := setupRouter(t)
	shopper := &client{t: t, e: e}

	// Anonymous callers can read but not mutate the cart.
	s := shopper.summary()
	assert.False(t, s.IsAuthenticated)
	assert.Equal(t, 0, s.Count)

	rec := shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":"4","quantity":2}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong password leaves the session anonymous.
	rec = shopper.form("/login", "username=user&password=nope")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "invalid credentials", rec.Body.String())
	assert.False(t, shopper.summary().IsAuthenticated)

	rec = shopper.form("/login", "username=user&password=111")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	rec = shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":"4","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product added to cart","cart_count":1}`, rec.Body.String())

	rec = shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	s = shopper.summary()
	require.Len(t, s.Items, 1)
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.Equal(t, 354.0, s.Items[0].Price)
	assert.Equal(t, 1062.0, s.Total)

	rec = shopper.json(http.MethodPut, "/api/cart/update/4", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1770.0, shopper.summary().Total)

	rec = shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":"999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":"1","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// An admin reprices the product; the cart keeps its snapshot.
	admin := &client{t: t, e: e}
	require.Equal(t, http.StatusFound, admin.form("/login", "username=admin&password=admin123").Code)
	rec = admin.form("/admin/products/edit/4", "name=Доска&price=1000&image_url=assets/Доска 4.webp")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	s = shopper.summary()
	assert.Equal(t, 354.0, s.Items[0].Price)

	// A fresh add of the same product still uses the original snapshot.
	require.Equal(t, http.StatusOK, shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":4}`).Code)
	assert.Equal(t, 354.0*6, shopper.summary().Total)

	rec = shopper.json(http.MethodPut, "/api/cart/update/4", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, shopper.summary().Count)

	rec = shopper.do(http.MethodDelete, "/api/cart/remove/4", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Customers cannot reach the panel.
	rec = shopper.do(http.MethodGet, "/admin", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access denied", rec.Body.String())

	// Logout drops the session and its cart.
	require.Equal(t, http.StatusOK, shopper.json(http.MethodPost, "/api/cart/add", `{"product_id":1}`).Code)
	before := sessions.Len()
	rec = shopper.do(http.MethodGet, "/logout", "", "")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Nil(t, shopper.cookie)
	assert.Equal(t, before-1, sessions.Len())

	s = shopper.summary()
	assert.False(t, s.IsAuthenticated)
	assert.Equal(t, 0, s.Count)
}

func TestStorefront_Registration(t *testing.T) {
	e, _ := setupRouter(t)
	c := &client{t: t, e: e}

	rec := c.form("/register", "username=alice&password=pw")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	rec = c.form("/register", "username=alice&password=other")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "user already exists", rec.Body.String())

	rec = c.form("/register", "username=&password=pw")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The first password still works.
	rec = c.json(http.MethodPost, "/login", `{"username":"alice","password":"pw"}`)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestStorefront_AdminCatalog(t *testing.T) {
	e, _ := setupRouter(t)
	anon := &client{t: t, e: e}

	rec := anon.do(http.MethodGet, "/admin", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access denied", rec.Body.String())

	admin := &client{t: t, e: e}
	require.Equal(t, http.StatusFound, admin.form("/login", "username=admin&password=admin123").Code)

	rec = admin.json(http.MethodPost, "/admin/products/add", `{"name":"Брус","price":"250.50","image_url":"assets/brus.webp"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = admin.do(http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 10)
	assert.Equal(t, "Брус", products[9]["name"])
	assert.Equal(t, 250.5, products[9]["price"])

	rec = admin.json(http.MethodPost, "/admin/products/add", `{"name":"Брус","price":-1,"image_url":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = admin.do(http.MethodGet, "/admin/products/edit/404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "product not found", rec.Body.String())

	rec = admin.do(http.MethodGet, "/admin/products/edit/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = admin.do(http.MethodPost, "/admin/products/delete/10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = admin.do(http.MethodPost, "/admin/products/delete/10", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = admin.do(http.MethodGet, "/admin", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 9)
}

func TestStorefront_Probes(t *testing.T) {
	e, sessions := setupRouter(t)
	c := &client{t: t, e: e}

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health/ready", "", "").Code)

	rec := c.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "_requests_total")

	// Probes do not create sessions.
	assert.Equal(t, 0, sessions.Len())
	assert.Nil(t, c.cookie)
}

func TestStorefront_AnonymousLoginAddUpdate(t *testing.T) {
	e, _ := setupRouter(t)
	c := &client{t: t, e: e}

	rec := c.do(http.MethodGet, "/api/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"count":0,"is_authenticated":false}`, rec.Body.String())

	require.Equal(t, http.StatusFound, c.form("/login", "username=user&password=111").Code)

	rec = c.json(http.MethodPost, "/api/cart/add", `{"product_id":"1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product added to cart","cart_count":1}`, rec.Body.String())

	s := c.summary()
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, s.Items[0].Price*2, s.Total)
	assert.Equal(t, 206.0, s.Total)

	rec = c.json(http.MethodPut, "/api/cart/update/1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Cart updated"}`, rec.Body.String())

	assert.Equal(t, 0, c.summary().Count)
}

func TestStorefront_CartQuantityCap(t *testing.T) {
	e, _ := setupRouter(t)
	c := &client{t: t, e: e}
	require.Equal(t, http.StatusFound, c.form("/login", "username=user&password=111").Code)

	rec := c.json(http.MethodPost, "/api/cart/add", `{"product_id":"1","quantity":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, c.json(http.MethodPost, "/api/cart/add", `{"product_id":"1","quantity":10000}`).Code)
	rec = c.json(http.MethodPost, "/api/cart/add", `{"product_id":"1","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s := c.summary()
	require.Len(t, s.Items, 1)
	assert.Equal(t, 10000, s.Items[0].Quantity)
	assert.Positive(t, s.Total)
}

func TestStorefront_LoginIssuesNewSessionCookie(t *testing.T) {
	e, sessions := setupRouter(t)
	c := &client{t: t, e: e}

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/cart", "", "").Code)
	require.NotNil(t, c.cookie)
	anonymous := c.cookie.Value

	require.Equal(t, http.StatusFound, c.form("/login", "username=user&password=111").Code)
	require.NotNil(t, c.cookie)
	assert.NotEqual(t, anonymous, c.cookie.Value)
	assert.Equal(t, 1, sessions.Len())

	// The pre-login cookie no longer resolves to the signed-in session.
	stale := &client{t: t, e: e, cookie: &http.Cookie{Name: middleware.DefaultCookieName, Value: anonymous}}
	assert.False(t, stale.summary().IsAuthenticated)
	assert.True(t, c.summary().IsAuthenticated)
}
