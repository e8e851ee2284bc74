package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brb-shop/storefront/internal/storefront/model"
)

func ids(products []model.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestSeed(t *testing.T) {
	c := Seed()
	products := c.Products()
	require.Len(t, products, 9)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9"}, ids(products))

	tee, ok := c.Lookup("p4")
	require.True(t, ok)
	assert.Equal(t, 0, tee.Stock)
	assert.False(t, tee.InStock())

	mouse, ok := c.Lookup("p2")
	require.True(t, ok)
	want := model.Product{
		ID:       "p2",
		Name:     "Gaming Mouse",
		Price:    1990,
		Rating:   4.8,
		Reviews:  842,
		Image:    "https://images.unsplash.com/photo-1547394765-185e1e68f34e?q=80&w=1200&auto=format&fit=crop",
		Category: model.CategoryElectronics,
		Stock:    57,
		Badge:    "Best Seller",
	}
	if diff := cmp.Diff(want, mouse); diff != "" {
		t.Errorf("Lookup(p2) mismatch (-want +got):\n%s", diff)
	}

	_, ok = c.Lookup("nope")
	assert.False(t, ok)
}

func TestProductsReturnsCopy(t *testing.T) {
	c := Seed()
	products := c.Products()
	products[0].Name = "changed"

	p, _ := c.Lookup("p1")
	assert.Equal(t, "Hoodie", p.Name)
}

func TestCategories(t *testing.T) {
	c := Seed()
	assert.Equal(t, model.Categories, c.Categories())
	assert.Equal(t, model.CategoryAll, c.Categories()[0])
}

func TestNewRejectsInvalidProducts(t *testing.T) {
	tests := []struct {
		name     string
		products []model.Product
	}{
		{"missing id", []model.Product{{Name: "x"}}},
		{"duplicate id", []model.Product{{ID: "a"}, {ID: "a"}}},
		{"negative stock", []model.Product{{ID: "a", Stock: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products)
			assert.Error(t, err)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("- id: [unterminated"))
	assert.Error(t, err)
}
