package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	errx "github.com/brb-shop/storefront/internal/core/error"
	"github.com/brb-shop/storefront/internal/storefront/catalog"
	"github.com/brb-shop/storefront/internal/storefront/model"
	"github.com/brb-shop/storefront/internal/storefront/repo"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// failingKV errors on every call and counts writes.
type failingKV struct {
	writes int
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (f *failingKV) Set(context.Context, string, string) error {
	f.writes++
	return errors.New("storage unavailable")
}

func product(id string, price int64, stock int) model.Product {
	return model.Product{ID: id, Name: "Item " + id, Price: price, Image: id + ".jpg", Stock: stock}
}

func TestAddTwiceWithinStock(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	p := product("p1", 1490, 5)

	require.NoError(t, s.Add(ctx, p))
	require.NoError(t, s.Add(ctx, p))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Qty)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, int64(2*1490), s.Total())
}

func TestAddClampsToStock(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	p := product("p1", 100, 1)

	for range 3 {
		require.NoError(t, s.Add(ctx, p))
	}

	line, ok := s.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 1, line.Qty)
}

func TestAddNeverExceedsStock(t *testing.T) {
	ctx := context.Background()
	for stock := 1; stock <= 6; stock++ {
		s := Open(ctx, repo.NewMemoryStore())
		p := product("p", 10, stock)
		for range stock * 3 {
			require.NoError(t, s.Add(ctx, p))
			line, _ := s.Line("p")
			assert.LessOrEqual(t, line.Qty, stock)
		}
		line, _ := s.Line("p")
		assert.Equal(t, stock, line.Qty)
	}
}

func TestAddUsesCurrentStockChangeQuantityUsesSnapshot(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())

	for range 4 {
		require.NoError(t, s.Add(ctx, product("p1", 100, 5)))
	}
	require.NoError(t, s.Add(ctx, product("p1", 100, 2)))

	line, ok := s.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, 5, line.Stock)

	s.ChangeQuantity(ctx, "p1", 10)
	line, _ = s.Line("p1")
	assert.Equal(t, 5, line.Qty)
}

func TestAddOutOfStockIsRefused(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()
	s := Open(ctx, kv)

	err := s.Add(ctx, product("p4", 890, 0))
	assert.ErrorIs(t, err, errx.ErrOutOfStock)
	assert.Zero(t, s.Len())

	_, ok, _ := kv.Get(ctx, DefaultKey)
	assert.False(t, ok, "refused add must not persist")
}

func TestAddSnapshotsProduct(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	p := product("p2", 1990, 57)
	require.NoError(t, s.Add(ctx, p))

	line, ok := s.Line("p2")
	require.True(t, ok)
	assert.Equal(t, model.CartLine{ID: "p2", Name: "Item p2", Price: 1990, Image: "p2.jpg", Qty: 1, Stock: 57}, line)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Add(ctx, product(id, 1, 3)))
	}
	require.NoError(t, s.Add(ctx, product("a", 1, 3)))

	var got []string
	for _, l := range s.Lines() {
		got = append(got, l.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestChangeQuantityClamps(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	require.NoError(t, s.Add(ctx, product("p", 10, 4)))

	tests := []struct {
		delta int
		want  int
	}{
		{+1, 2},
		{+100, 4},
		{-1, 3},
		{-100, 1},
		{0, 1},
		{+2, 3},
	}
	for _, tt := range tests {
		s.ChangeQuantity(ctx, "p", tt.delta)
		line, ok := s.Line("p")
		require.True(t, ok)
		assert.Equal(t, tt.want, line.Qty, "after delta %d", tt.delta)
	}
}

func TestChangeQuantityAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	require.NoError(t, s.Add(ctx, product("p", 10, 4)))
	before := s.Lines()

	s.ChangeQuantity(ctx, "missing", 3)
	s.ChangeQuantity(ctx, "missing", -3)

	assert.Equal(t, before, s.Lines())
}

func TestRemoveThenAddResetsQuantity(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	p := product("p", 10, 9)
	for range 4 {
		require.NoError(t, s.Add(ctx, p))
	}

	s.Remove(ctx, "p")
	_, ok := s.Line("p")
	assert.False(t, ok)

	require.NoError(t, s.Add(ctx, p))
	line, ok := s.Line("p")
	require.True(t, ok)
	assert.Equal(t, 1, line.Qty)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{}
	s := Open(ctx, kv)
	s.Remove(ctx, "missing")
	assert.Zero(t, kv.writes)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	require.NoError(t, s.Add(ctx, product("a", 10, 2)))
	require.NoError(t, s.Add(ctx, product("b", 20, 2)))

	s.Clear(ctx)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Count())
	assert.Zero(t, s.Total())
	assert.NotNil(t, s.Lines())
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	c := catalog.Seed()

	hoodie, _ := c.Lookup("p1")
	keyboard, _ := c.Lookup("p6")
	require.NoError(t, s.Add(ctx, hoodie))
	require.NoError(t, s.Add(ctx, keyboard))
	s.ChangeQuantity(ctx, "p6", 2)

	assert.Equal(t, 4, s.Count())
	assert.Equal(t, int64(1490+3*3990), s.Total())
}

func TestPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()
	s := Open(ctx, kv)

	require.NoError(t, s.Add(ctx, model.Product{ID: "p1", Name: "Hoodie", Price: 1490, Image: "h.jpg", Stock: 23}))
	raw, ok, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1","name":"Hoodie","price":1490,"image":"h.jpg","qty":1,"stock":23}]`, raw)

	s.ChangeQuantity(ctx, "p1", 2)
	raw, _, _ = kv.Get(ctx, DefaultKey)
	assert.JSONEq(t, `[{"id":"p1","name":"Hoodie","price":1490,"image":"h.jpg","qty":3,"stock":23}]`, raw)

	s.Clear(ctx)
	raw, _, _ = kv.Get(ctx, DefaultKey)
	assert.JSONEq(t, `[]`, raw)
}

func TestRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()
	first := Open(ctx, kv)
	require.NoError(t, first.Add(ctx, product("a", 10, 3)))
	require.NoError(t, first.Add(ctx, product("b", 20, 3)))
	first.ChangeQuantity(ctx, "b", 1)

	second := Open(ctx, kv)
	assert.Equal(t, first.Lines(), second.Lines())
	assert.Equal(t, int64(10+2*20), second.Total())
}

func TestRestoreWithCustomKey(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "guest-cart", `[{"id":"a","name":"A","price":5,"image":"","qty":2,"stock":3}]`))

	assert.Zero(t, Open(ctx, kv).Len())
	assert.Equal(t, 2, Open(ctx, kv, WithKey("guest-cart")).Count())
}

func TestRestoreFallsBackToEmpty(t *testing.T) {
	tests := map[string]string{
		"invalid text":   "not json at all",
		"wrong shape":    `{"id":"p1"}`,
		"truncated":      `[{"id":"p1","qty":`,
		"null":           `null`,
		"empty string":   ``,
		"wrong qty type": `[{"id":"p1","qty":"two","stock":3}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := repo.NewMemoryStore()
			require.NoError(t, kv.Set(ctx, DefaultKey, raw))

			s := Open(ctx, kv)
			assert.Zero(t, s.Len())
			assert.Zero(t, s.Total())
		})
	}
}

func TestRestoreReadErrorFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{}
	s := Open(ctx, kv)
	assert.Zero(t, s.Len())

	// writes still attempted and failures swallowed
	require.NoError(t, s.Add(ctx, product("a", 1, 2)))
	assert.Equal(t, 1, kv.writes)
	assert.Equal(t, 1, s.Count())
}

func TestRestoreNormalisesLines(t *testing.T) {
	ctx := context.Background()
	kv := repo.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, DefaultKey, `[
		{"id":"a","name":"A","price":10,"qty":9,"stock":3},
		{"id":"","name":"nameless","price":10,"qty":1,"stock":3},
		{"id":"b","name":"B","price":20,"qty":0,"stock":2},
		{"id":"a","name":"dup","price":99,"qty":1,"stock":3},
		{"id":"c","name":"C","price":30,"qty":1,"stock":0}
	]`))

	lines := Open(ctx, kv).Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ID)
	assert.Equal(t, "A", lines[0].Name)
	assert.Equal(t, 3, lines[0].Qty)
	assert.Equal(t, "b", lines[1].ID)
	assert.Equal(t, 1, lines[1].Qty)
}

func TestLinesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, repo.NewMemoryStore())
	require.NoError(t, s.Add(ctx, product("a", 1, 2)))

	lines := s.Lines()
	lines[0].Qty = 99
	line, _ := s.Line("a")
	assert.Equal(t, 1, line.Qty)
}
