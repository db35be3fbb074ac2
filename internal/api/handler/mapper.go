package handler

import (
	"github.com/woodmart/storefront/internal/core/domain"
)

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price.InexactFloat64(),
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCartSummaryResponse(s domain.CartSummary) cartSummaryResponse {
	items := make([]cartItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, cartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.InexactFloat64(),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal.InexactFloat64(),
			ImageURL:  it.ImageURL,
		})
	}
	return cartSummaryResponse{
		Items:           items,
		Total:           s.Total.InexactFloat64(),
		Count:           s.Count,
		IsAuthenticated: s.IsAuthenticated,
	}
}

func (r productRequest) toInput() (domain.ProductInput, error) {
	if !r.Price.set {
		return domain.ProductInput{}, domain.NewValidationError("price", "is required")
	}
	return domain.ProductInput{
		Name:     r.Name,
		Price:    r.Price.value,
		ImageURL: r.ImageURL,
	}, nil
}
