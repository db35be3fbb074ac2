package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/woodmart/storefront/internal/api/middleware"
	"github.com/woodmart/storefront/internal/core/domain"
	"github.com/woodmart/storefront/internal/core/ports"
)

// AdminHandler serves the product management panel. Denials and missing
// products are answered in plain text.
type AdminHandler struct {
	catalog ports.CatalogService
}

func NewAdminHandler(catalog ports.CatalogService) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// List returns the full catalog for the panel.
//
// @Summary      Admin product list
// @Tags         admin
// @Produce      json
// @Success      200  {array}   productResponse
// @Failure      403  {string}  string  "access denied"
// @Router       /admin [get]
func (h *AdminHandler) List(c echo.Context) error {
	if err := middleware.IdentityFrom(c).RequireAdmin(); err != nil {
		return adminError(c, err)
	}
	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponses(products))
}

// Get returns one product for the edit form.
//
// @Summary      Admin product detail
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      403  {string}  string  "access denied"
// @Failure      404  {string}  string  "product not found"
// @Router       /admin/products/edit/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return err
	}
	p, err := h.catalog.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return adminError(c, err)
	}
	return c.JSON(http.StatusOK, toProductResponse(*p))
}

// Create adds a product.
//
// @Summary      Admin create product
// @Tags         admin
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {string}  string  "access denied"
// @Router       /admin/products/add [post]
func (h *AdminHandler) Create(c echo.Context) error {
	in, err := bindProduct(c)
	if err != nil {
		return err
	}
	if _, err := h.catalog.Create(c.Request().Context(), middleware.IdentityFrom(c), in); err != nil {
		return adminError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Update overwrites name, price and image of a product.
//
// @Summary      Admin update product
// @Tags         admin
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {string}  string  "access denied"
// @Failure      404   {string}  string  "product not found"
// @Router       /admin/products/edit/{id} [post]
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return err
	}
	in, err := bindProduct(c)
	if err != nil {
		return err
	}
	if err := h.catalog.Update(c.Request().Context(), middleware.IdentityFrom(c), id, in); err != nil {
		return adminError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete removes a product; deleting a missing id still succeeds.
//
// @Summary      Admin delete product
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  successResponse
// @Failure      403  {string}  string  "access denied"
// @Router       /admin/products/delete/{id} [post]
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return adminError(c, err)
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func productIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	return id, nil
}

func bindProduct(c echo.Context) (domain.ProductInput, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return domain.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ProductInput{}, err
	}
	return req.toInput()
}

func adminError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.String(http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrProductNotFound):
		return c.String(http.StatusNotFound, "product not found")
	default:
		return err
	}
}
