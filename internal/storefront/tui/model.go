// Package tui renders the storefront page in the terminal: header with the
// cart badge, search/category/sort controls, product cards, the cart drawer
// and the demo checkout dialog.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brb-shop/storefront/internal/storefront/cart"
	"github.com/brb-shop/storefront/internal/storefront/catalog"
	"github.com/brb-shop/storefront/internal/storefront/checkout"
	"github.com/brb-shop/storefront/internal/storefront/model"
	"github.com/brb-shop/storefront/internal/storefront/money"
)

// Pane is the part of the page receiving key presses.
type Pane int

const (
	PaneProducts Pane = iota
	PaneSearch
	PaneCart
	PaneCheckout
)

// DetailsPlaceholder is shown instead of a product page.
const DetailsPlaceholder = "Demo: product page coming soon!"

const (
	fieldName = iota
	fieldPhone
	fieldAddress
	fieldCount
)

// Model is the bubbletea model of the shop page.
type Model struct {
	ctx     context.Context
	catalog *catalog.Catalog
	cart    *cart.Store
	money   *money.Formatter
	dialog  *checkout.Dialog

	search   textinput.Model
	category int
	sort     int
	products []model.Product
	cursor   int

	pane       Pane
	cartCursor int

	form      [fieldCount]textinput.Model
	formField int

	status    string
	statusErr bool

	width  int
	height int
	styles Styles
}

// New builds the shop page over a catalog and cart store.
func New(ctx context.Context, c *catalog.Catalog, s *cart.Store, f *money.Formatter) Model {
	search := textinput.New()
	search.Placeholder = "Search products…"
	search.Prompt = "🔍 "
	search.CharLimit = 64
	search.Width = 32

	m := Model{
		ctx:     ctx,
		catalog: c,
		cart:    s,
		money:   f,
		dialog:  checkout.NewDialog(),
		search:  search,
		styles:  DefaultStyles(),
	}

	placeholders := [fieldCount]string{"Bikrom Roy", "01XXXXXXXXX", "House, Road, Area, City"}
	for i := range m.form {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 128
		ti.Width = 40
		m.form[i] = ti
	}

	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Category is the active category filter.
func (m Model) Category() model.Category {
	return model.Categories[m.category]
}

// SortKey is the active sort order.
func (m Model) SortKey() model.SortKey {
	return model.SortKeys[m.sort]
}

// Products is the current filtered, sorted view.
func (m Model) Products() []model.Product {
	return m.products
}

// Pane is the focused part of the page.
func (m Model) Pane() Pane {
	return m.pane
}

// Status is the last notice shown to the user.
func (m Model) Status() string {
	return m.status
}

func (m *Model) refresh() {
	m.products = m.catalog.View(m.search.Value(), m.Category(), m.SortKey())
	if m.cursor >= len(m.products) {
		m.cursor = max(len(m.products)-1, 0)
	}
}

func (m *Model) notify(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) selected() (model.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return model.Product{}, false
	}
	return m.products[m.cursor], true
}
