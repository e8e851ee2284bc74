package model

// Category groups products in the catalog.
type Category string

const (
	// CategoryAll is the wildcard used by filters; no product carries it.
	CategoryAll         Category = "All"
	CategoryApparel     Category = "Apparel"
	CategoryElectronics Category = "Electronics"
	CategoryHome        Category = "Home"
	CategoryAccessories Category = "Accessories"
)

// Categories lists the filter choices in display order, wildcard first.
var Categories = []Category{
	CategoryAll,
	CategoryApparel,
	CategoryElectronics,
	CategoryHome,
	CategoryAccessories,
}

func (c Category) String() string {
	return string(c)
}

// Product is an immutable catalog entry. Price is whole taka.
type Product struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Price    int64    `json:"price" yaml:"price"`
	Rating   float64  `json:"rating" yaml:"rating"`
	Reviews  int      `json:"reviews" yaml:"reviews"`
	Image    string   `json:"image" yaml:"image"`
	Category Category `json:"category" yaml:"category"`
	Stock    int      `json:"stock" yaml:"stock"`
	Badge    string   `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool {
	return p.Stock > 0
}
