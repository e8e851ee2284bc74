package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/brb-shop/storefront/internal/storefront/model"
)

// View returns the products matching category and query, ordered by sort.
// A product matches when its category equals category (or category is All)
// and its name contains query, ignoring case. The input slice is not modified.
func View(products []model.Product, query string, category model.Category, sort model.SortKey) []model.Product {
	q := strings.ToLower(query)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != model.CategoryAll && p.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
	}

	switch sort {
	case model.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b model.Product) int { return cmp.Compare(a.Price, b.Price) })
	case model.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b model.Product) int { return cmp.Compare(b.Price, a.Price) })
	case model.SortRating:
		slices.SortStableFunc(out, func(a, b model.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	}
	return out
}
