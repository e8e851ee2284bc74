package model

import (
	"context"
)

// CartLine is one product's entry in the cart. Name, price, image and stock
// are a snapshot taken when the product was first added.
type CartLine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Qty   int    `json:"qty"`
	Stock int    `json:"stock"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Qty)
}

// NewCartLine snapshots p into a line with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
		Image: p.Image,
		Qty:   1,
		Stock: p.Stock,
	}
}

type KeyValueStore interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
