package model

// SortKey selects the ordering of a catalog view.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

// SortKeys lists the sort choices in display order.
var SortKeys = []SortKey{SortPopular, SortPriceAsc, SortPriceDesc, SortRating}

// Label is the human readable name shown in sort pickers.
func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Price: Low → High"
	case SortPriceDesc:
		return "Price: High → Low"
	case SortRating:
		return "Top rated"
	default:
		return "Most popular"
	}
}
