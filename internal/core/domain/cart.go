package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity caps the units a single cart line may hold.
const MaxLineQuantity = 10000

// CartLine is one product in a cart together with the name, price and image
// captured when the product was first added. Later catalog edits do not
// touch the snapshot.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
}

// LineTotal is price * quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart maps product ids to lines. Lines keep insertion order and no two
// lines share a product id; a stored line always has Quantity >= 1.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.Lines)
}

func (c *Cart) index(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Line returns the line for productID, if present.
func (c *Cart) Line(productID string) (CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.Lines[i], true
}

// Add sums quantity into the existing line for p, or appends a new line
// snapshotting p. Quantity must be positive and the resulting line may not
// exceed MaxLineQuantity.
func (c *Cart) Add(p Product, quantity int) error {
	if quantity < 1 {
		return NewValidationError("quantity", "must be at least 1")
	}
	if quantity > MaxLineQuantity {
		return errQuantityTooLarge
	}
	productID := strconv.FormatInt(p.ID, 10)
	if i := c.index(productID); i >= 0 {
		if c.Lines[i].Quantity > MaxLineQuantity-quantity {
			return errQuantityTooLarge
		}
		c.Lines[i].Quantity += quantity
		return nil
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: productID,
		Quantity:  quantity,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	})
	return nil
}

// SetQuantity replaces the quantity of a line. A quantity <= 0 removes it.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	i := c.index(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		c.removeAt(i)
		return nil
	}
	if quantity > MaxLineQuantity {
		return errQuantityTooLarge
	}
	c.Lines[i].Quantity = quantity
	return nil
}

// Remove deletes the line for productID.
func (c *Cart) Remove(productID string) error {
	i := c.index(productID)
	if i < 0 {
		return ErrCartItemNotFound
	}
	c.removeAt(i)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

var errQuantityTooLarge = NewValidationError("quantity", "must not exceed "+strconv.Itoa(MaxLineQuantity))

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

// CartSummaryItem is a rendered cart line.
type CartSummaryItem struct {
	ID        string
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	ImageURL  string
}

// CartSummary is the read model of a cart.
type CartSummary struct {
	Items           []CartSummaryItem
	Total           decimal.Decimal
	Count           int
	IsAuthenticated bool
}

// Summarize renders every line and aggregates the totals.
func (c *Cart) Summarize(authenticated bool) CartSummary {
	s := CartSummary{
		Items:           make([]CartSummaryItem, 0, len(c.Lines)),
		Total:           decimal.Zero,
		IsAuthenticated: authenticated,
	}
	for _, l := range c.Lines {
		lineTotal := l.LineTotal()
		s.Total = s.Total.Add(lineTotal)
		s.Items = append(s.Items, CartSummaryItem{
			ID:        l.ProductID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			LineTotal: lineTotal,
			ImageURL:  l.ImageURL,
		})
	}
	s.Count = len(s.Items)
	return s
}
