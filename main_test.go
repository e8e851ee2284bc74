package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brb-shop/storefront/internal/storefront/cart"
	"github.com/brb-shop/storefront/internal/storefront/catalog"
	"github.com/brb-shop/storefront/internal/storefront/model"
	pkgredis "github.com/brb-shop/storefront/pkg/redis"
)

func testConfig(t *testing.T, backend string) AppConfig {
	t.Helper()
	return AppConfig{
		Storage: model.StorageConfig{
			Backend:    backend,
			SQLitePath: filepath.Join(t.TempDir(), "storefront.db"),
		},
		Cart:     model.CartConfig{Namespace: "brbshop", TTL: "720h"},
		Currency: model.CurrencyConfig{Locale: "en-US"},
	}
}

func runCmd(t *testing.T, cfg AppConfig, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(cfg)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestOpenKVBackends(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{"memory", "sqlite", "SQLite", ""} {
		t.Run("backend="+backend, func(t *testing.T) {
			kv, closeKV, err := openKV(ctx, testConfig(t, backend))
			require.NoError(t, err)
			defer closeKV()

			require.NoError(t, kv.Set(ctx, "cart", "[]"))
			v, ok, err := kv.Get(ctx, "cart")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestOpenKVRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, "redis")
	cfg.Redis = pkgredis.Config{URL: "redis://" + mr.Addr() + "/0", ReadTimeout: 1, WriteTimeout: 1, DialTimeout: 1}

	kv, closeKV, err := openKV(context.Background(), cfg)
	require.NoError(t, err)
	defer closeKV()

	require.NoError(t, kv.Set(context.Background(), "cart", "[]"))
	assert.True(t, mr.Exists("brbshop:cart"))
}

func TestOpenKVRejectsBadConfig(t *testing.T) {
	_, _, err := openKV(context.Background(), testConfig(t, "floppy"))
	assert.ErrorContains(t, err, "unknown STORAGE_BACKEND")

	cfg := testConfig(t, "redis")
	cfg.Cart.TTL = "forever"
	_, _, err = openKV(context.Background(), cfg)
	assert.ErrorContains(t, err, "invalid CART_TTL")
}

func TestCatalogCommand(t *testing.T) {
	out := runCmd(t, testConfig(t, "memory"), "catalog", "--category", "Electronics", "--sort", "price-asc")

	assert.Contains(t, out, "Gaming Mouse")
	assert.Contains(t, out, "Smart Watch")
	assert.NotContains(t, out, "Hoodie")
	assert.Less(t, strings.Index(out, "Gaming Mouse"), strings.Index(out, "Wireless Earbuds"))
	assert.Less(t, strings.Index(out, "Mechanical Keyboard"), strings.Index(out, "Smart Watch"))

	out = runCmd(t, testConfig(t, "memory"), "catalog", "-q", "zzz")
	assert.Equal(t, "No products found.\n", out)
}

func TestCartCommand(t *testing.T) {
	cfg := testConfig(t, "sqlite")
	assert.Equal(t, "Your cart is empty.\n", runCmd(t, cfg, "cart"))

	ctx := context.Background()
	kv, closeKV, err := openKV(ctx, cfg)
	require.NoError(t, err)
	store := cart.Open(ctx, kv)
	p, ok := catalog.Seed().Lookup("p1")
	require.True(t, ok)
	require.NoError(t, store.Add(ctx, p))
	require.NoError(t, store.Add(ctx, p))
	require.NoError(t, closeKV())

	out := runCmd(t, cfg, "cart")
	assert.Contains(t, out, p.Name)
	assert.Contains(t, out, "Items: 2")
	assert.Contains(t, out, "Subtotal: ৳2,980")
	assert.Contains(t, out, "Delivery: Free")
}

func TestAssistantCommandRequiresQuery(t *testing.T) {
	root := newRootCmd(testConfig(t, "memory"))
	root.SetArgs([]string{"assistant"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
