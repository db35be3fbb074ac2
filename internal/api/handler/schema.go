package handler

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type registerRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=64"`
	Password string `json:"password" form:"password" validate:"required,max=128"`
}

type addToCartRequest struct {
	ProductID flexibleID `json:"product_id"`
	Quantity  *int       `json:"quantity"`
}

type updateCartRequest struct {
	Quantity *int `json:"quantity"`
}

type productRequest struct {
	Name     string       `json:"name" form:"name" validate:"required,max=255"`
	Price    decimalParam `json:"price" form:"price"`
	ImageURL string       `json:"image_url" form:"image_url" validate:"required,max=1024"`
}

type productResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type cartItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	ImageURL  string  `json:"image_url"`
}

type cartSummaryResponse struct {
	Items           []cartItemResponse `json:"items"`
	Total           float64            `json:"total"`
	Count           int                `json:"count"`
	IsAuthenticated bool               `json:"is_authenticated"`
}

type cartAddResponse struct {
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// flexibleID accepts a product id sent either as a JSON number or a string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("product_id must be a number or a string")
	}
	*f = flexibleID(n.String())
	return nil
}

// decimalParam is a price read from JSON (number or string) or a form field.
// set stays false when the field was absent.
type decimalParam struct {
	value decimal.Decimal
	set   bool
}

func (d *decimalParam) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if err := d.value.UnmarshalJSON(b); err != nil {
		return err
	}
	d.set = true
	return nil
}

// UnmarshalParam satisfies echo.BindUnmarshaler for form and query values.
func (d *decimalParam) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil
	}
	v, err := decimal.NewFromString(param)
	if err != nil {
		return err
	}
	d.value, d.set = v, true
	return nil
}
