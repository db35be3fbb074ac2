package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/woodmart/storefront/internal/api/middleware"
	"github.com/woodmart/storefront/internal/core/domain"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, sess *domain.Session, username, password string) (*domain.User, error)
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	logoutFn   func(ctx context.Context, sess *domain.Session) error
}

func (s *stubAuthService) Login(ctx context.Context, sess *domain.Session, username, password string) (*domain.User, error) {
	return s.loginFn(ctx, sess, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sess *domain.Session) error {
	return s.logoutFn(ctx, sess)
}

type stubCartService struct {
	addFn       func(ctx context.Context, sess *domain.Session, productID string, quantity int) (int, error)
	updateFn    func(ctx context.Context, sess *domain.Session, productID string, quantity int) error
	removeFn    func(ctx context.Context, sess *domain.Session, productID string) error
	clearFn     func(ctx context.Context, sess *domain.Session) error
	summarizeFn func(ctx context.Context, sess *domain.Session) domain.CartSummary
}

func (s *stubCartService) Add(ctx context.Context, sess *domain.Session, productID string, quantity int) (int, error) {
	return s.addFn(ctx, sess, productID, quantity)
}

func (s *stubCartService) Update(ctx context.Context, sess *domain.Session, productID string, quantity int) error {
	return s.updateFn(ctx, sess, productID, quantity)
}

func (s *stubCartService) Remove(ctx context.Context, sess *domain.Session, productID string) error {
	return s.removeFn(ctx, sess, productID)
}

func (s *stubCartService) Clear(ctx context.Context, sess *domain.Session) error {
	return s.clearFn(ctx, sess)
}

func (s *stubCartService) Summarize(ctx context.Context, sess *domain.Session) domain.CartSummary {
	return s.summarizeFn(ctx, sess)
}

type stubCatalogService struct {
	listFn   func(ctx context.Context) ([]domain.Product, error)
	getFn    func(ctx context.Context, who domain.Identity, id int64) (*domain.Product, error)
	createFn func(ctx context.Context, who domain.Identity, in domain.ProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, who domain.Identity, id int64, in domain.ProductInput) error
	deleteFn func(ctx context.Context, who domain.Identity, id int64) error
}

func (s *stubCatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubCatalogService) Get(ctx context.Context, who domain.Identity, id int64) (*domain.Product, error) {
	return s.getFn(ctx, who, id)
}

func (s *stubCatalogService) Create(ctx context.Context, who domain.Identity, in domain.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, who, in)
}

func (s *stubCatalogService) Update(ctx context.Context, who domain.Identity, id int64, in domain.ProductInput) error {
	return s.updateFn(ctx, who, id, in)
}

func (s *stubCatalogService) Delete(ctx context.Context, who domain.Identity, id int64) error {
	return s.deleteFn(ctx, who, id)
}

// newContext builds an echo context carrying sess, with the validator
// installed the way the router does it.
func newContext(method, target, contentType, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.WithSession(c, sess)
	return c, rec
}

func sessionAs(role domain.Role) *domain.Session {
	sess := domain.NewSession("test-session")
	sess.SignIn(&domain.User{ID: 1, Username: string(role), Role: role})
	return sess
}
