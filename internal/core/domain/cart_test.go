package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCart_AddUpdateRemove(t *testing.T) {
	var c Cart
	p := Product{ID: 3, Name: "Plank", Price: decimal.RequireFromString("354"), ImageURL: "a.webp"}

	if err := c.Add(p, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero quantity, got %v", err)
	}
	if err := c.Add(p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(p, 1); err != nil {
		t.Fatalf("add again: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected a single line, got %d", c.Len())
	}
	if l, _ := c.Line("3"); l.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", l.Quantity)
	}

	if err := c.SetQuantity("3", -1); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected line removed")
	}
	if err := c.Remove("3"); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCart_KeepsInsertionOrderAfterRemoval(t *testing.T) {
	var c Cart
	for id := int64(1); id <= 3; id++ {
		_ = c.Add(Product{ID: id, Price: decimal.NewFromInt(id)}, 1)
	}
	_ = c.Remove("2")

	sum := c.Summarize(true)
	if sum.Count != 2 || sum.Items[0].ProductID != "1" || sum.Items[1].ProductID != "3" {
		t.Fatalf("unexpected order: %+v", sum.Items)
	}
	if !sum.Total.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected total 4, got %s", sum.Total)
	}
}

func TestSession_JSONRoundTripKeepsCart(t *testing.T) {
	s := NewSession("abc")
	s.SignIn(&User{ID: 9, Username: "user", Role: RoleUser})
	_ = s.Cart.Add(Product{ID: 1, Name: "Board", Price: decimal.RequireFromString("103.5")}, 2)

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Session
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.UserID == nil || *back.UserID != 9 || back.Role != RoleUser {
		t.Fatalf("identity lost: %+v", back)
	}
	l, ok := back.Cart.Line("1")
	if !ok || l.Quantity != 2 || !l.Price.Equal(decimal.RequireFromString("103.5")) {
		t.Fatalf("cart lost: %+v", back.Cart)
	}
}

func TestCart_QuantityIsBounded(t *testing.T) {
	var c Cart
	p := Product{ID: 1, Name: "Board", Price: decimal.RequireFromString("103")}

	if err := c.Add(p, math.MaxInt); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for a huge quantity, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("rejected add must not create a line")
	}

	if err := c.Add(p, MaxLineQuantity); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(p, 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation when the line would exceed the cap, got %v", err)
	}
	if l, _ := c.Line("1"); l.Quantity != MaxLineQuantity {
		t.Fatalf("rejected add changed quantity to %d", l.Quantity)
	}
	if err := c.SetQuantity("1", MaxLineQuantity+1); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation on update above the cap, got %v", err)
	}

	sum := c.Summarize(true)
	if !sum.Total.Equal(decimal.NewFromInt(103 * MaxLineQuantity)) {
		t.Fatalf("unexpected total %s", sum.Total)
	}
}
