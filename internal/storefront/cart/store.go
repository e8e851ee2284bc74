package cart

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	errx "github.com/brb-shop/storefront/internal/core/error"
	"github.com/brb-shop/storefront/internal/storefront/model"
	logx "github.com/brb-shop/storefront/pkg/logger"
)

// DefaultKey is the key the cart is persisted under.
const DefaultKey = "cart"

// Store holds the cart lines keyed by product id, in insertion order.
// Every mutation writes the whole cart back through the key-value port;
// write failures are logged and otherwise ignored.
type Store struct {
	mu    sync.Mutex
	kv    model.KeyValueStore
	key   string
	lines []model.CartLine
}

type Option func(*Store)

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// Open restores the cart persisted in kv. A missing, unreadable or malformed
// value yields an empty cart.
func Open(ctx context.Context, kv model.KeyValueStore, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey, lines: []model.CartLine{}}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Get(ctx, s.key)
	if err != nil {
		logx.Warn().Err(err).Str("key", s.key).Msg("failed to read persisted cart; starting empty")
		return s
	}
	if !ok {
		return s
	}

	lines, err := decode(raw)
	if err != nil {
		logx.Warn().Err(err).Str("key", s.key).Msg("persisted cart is malformed; starting empty")
		return s
	}
	s.lines = lines
	logx.Debug().Str("key", s.key).Int("lines", len(lines)).Msg("cart restored")
	return s
}

// decode parses a persisted cart and normalises it: lines without an id or
// stock are dropped, duplicates keep the first occurrence and quantities are
// clamped into [1, stock].
func decode(raw string) ([]model.CartLine, error) {
	var in []model.CartLine
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}

	out := make([]model.CartLine, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, l := range in {
		if l.ID == "" || l.Stock < 1 || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		l.Qty = clamp(l.Qty, 1, l.Stock)
		out = append(out, l)
	}
	return out, nil
}

// Add puts one unit of p in the cart. An existing line grows by one up to
// p.Stock; at the ceiling nothing changes. Products with no stock are refused.
func (s *Store) Add(ctx context.Context, p model.Product) error {
	if !p.InStock() {
		return errx.OutOfStock(p.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(p.ID); i >= 0 {
		// the ceiling is the product's current stock, not the line snapshot
		// ChangeQuantity clamps to; a lower stock pulls the line down to it
		qty := min(s.lines[i].Qty+1, p.Stock)
		if qty == s.lines[i].Qty {
			return nil
		}
		s.lines[i].Qty = qty
	} else {
		s.lines = append(s.lines, model.NewCartLine(p))
	}
	s.persist(ctx)
	return nil
}

// ChangeQuantity adds delta to the line's quantity, clamped to [1, stock].
// Unknown ids are ignored.
func (s *Store) ChangeQuantity(ctx context.Context, id string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	qty := clamp(s.lines[i].Qty+delta, 1, s.lines[i].Stock)
	if qty == s.lines[i].Qty {
		return
	}
	s.lines[i].Qty = qty
	s.persist(ctx)
}

// Remove deletes the line for id regardless of its quantity.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []model.CartLine{}
	s.persist(ctx)
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// Line returns the line for id.
func (s *Store) Line(id string) (model.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return model.CartLine{}, false
	}
	return s.lines[i], true
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Count is the total number of items, the sum of all quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Qty
	}
	return n
}

// Total is the amount payable, the sum of price times quantity.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.lines, func(l model.CartLine) bool { return l.ID == id })
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	b, err := json.Marshal(s.lines)
	if err != nil {
		logx.Error().Err(err).Str("key", s.key).Msg("failed to marshal cart")
		return
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		logx.Warn().Err(err).Str("key", s.key).Msg("failed to persist cart")
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
