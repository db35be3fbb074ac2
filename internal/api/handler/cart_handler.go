package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woodmart/storefront/internal/api/metrics"
	"github.com/woodmart/storefront/internal/core/ports"
)

type CartHandler struct {
	cartService ports.CartService
}

func NewCartHandler(cartService ports.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Summary renders the session cart.
//
// @Summary      Cart summary
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartSummaryResponse
// @Router       /api/cart [get]
func (h *CartHandler) Summary(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	summary := h.cartService.Summarize(c.Request().Context(), sess)
	return c.JSON(http.StatusOK, toCartSummaryResponse(summary))
}

// Add puts a product into the cart.
//
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Product and quantity (default 1)"
// @Success      200   {object}  cartAddResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	count, err := h.cartService.Add(c.Request().Context(), sess, string(req.ProductID), quantity)
	metrics.CartOperationsTotal.WithLabelValues("add", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartAddResponse{Message: "Product added to cart", CartCount: count})
}

// Update replaces the quantity of a cart line; zero or less removes it.
//
// @Summary      Update cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        item_id  path      string             true  "Product id of the line"
// @Param        body     body      updateCartRequest  true  "New quantity (default 1)"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/cart/update/{item_id} [put]
func (h *CartHandler) Update(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	err = h.cartService.Update(c.Request().Context(), sess, c.Param("item_id"), quantity)
	metrics.CartOperationsTotal.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart updated"})
}

// Remove deletes a cart line.
//
// @Summary      Remove cart line
// @Tags         cart
// @Produce      json
// @Param        item_id  path      string  true  "Product id of the line"
// @Success      200      {object}  messageResponse
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/cart/remove/{item_id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	err = h.cartService.Remove(c.Request().Context(), sess, c.Param("item_id"))
	metrics.CartOperationsTotal.WithLabelValues("remove", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Item removed from cart"})
}

// Clear empties the cart.
//
// @Summary      Clear cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/cart/clear [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	err = h.cartService.Clear(c.Request().Context(), sess)
	metrics.CartOperationsTotal.WithLabelValues("clear", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart cleared"})
}
