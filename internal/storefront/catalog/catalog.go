package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/brb-shop/storefront/internal/storefront/model"
)

//go:embed seed.yaml
var seedYAML []byte

// Catalog is a read-only product list in its original order.
type Catalog struct {
	products []model.Product
	byID     map[string]int
}

// New builds a catalog from products. Duplicate ids and negative stock are rejected.
func New(products []model.Product) (*Catalog, error) {
	c := &Catalog{
		products: slices.Clone(products),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %q has negative stock %d", p.ID, p.Stock)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Parse decodes a YAML product list into a catalog.
func Parse(data []byte) (*Catalog, error) {
	var products []model.Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(products)
}

// Seed returns the embedded mock catalog.
func Seed() *Catalog {
	c, err := Parse(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Products returns a copy of the catalog in its original order.
func (c *Catalog) Products() []model.Product {
	return slices.Clone(c.products)
}

// Lookup finds a product by id.
func (c *Catalog) Lookup(id string) (model.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

// Categories returns the filter choices, wildcard first.
func (c *Catalog) Categories() []model.Category {
	return slices.Clone(model.Categories)
}

// View filters and sorts the catalog. See the package-level View.
func (c *Catalog) View(query string, category model.Category, sort model.SortKey) []model.Product {
	return View(c.products, query, category, sort)
}
