package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	errx "github.com/brb-shop/storefront/internal/core/error"
	"github.com/brb-shop/storefront/internal/storefront/checkout"
	"github.com/brb-shop/storefront/internal/storefront/model"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.pane {
		case PaneSearch:
			return m.updateSearch(msg)
		case PaneCart:
			return m.updateCart(msg)
		case PaneCheckout:
			return m.updateCheckout(msg)
		default:
			return m.updateProducts(msg)
		}
	}
	return m, nil
}

func (m Model) updateProducts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.pane = PaneSearch
		return m, m.search.Focus()
	case "c":
		m.category = (m.category + 1) % len(model.Categories)
		m.refresh()
	case "s":
		m.sort = (m.sort + 1) % len(model.SortKeys)
		m.refresh()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "enter", "a":
		m.addSelected()
	case "d":
		if _, ok := m.selected(); ok {
			m.notify(DetailsPlaceholder, false)
		}
	case "tab":
		m.pane = PaneCart
		m.cartCursor = 0
	case "o":
		return m.openCheckout()
	}
	return m, nil
}

func (m *Model) addSelected() {
	p, ok := m.selected()
	if !ok {
		return
	}
	before, _ := m.cart.Line(p.ID)
	if err := m.cart.Add(m.ctx, p); err != nil {
		if errors.Is(err, errx.ErrOutOfStock) {
			m.notify(fmt.Sprintf("%s is out of stock", p.Name), true)
			return
		}
		m.notify(err.Error(), true)
		return
	}
	after, _ := m.cart.Line(p.ID)
	if after.Qty == before.Qty {
		// ceiling reached; the add is a silent no-op
		return
	}
	m.notify(fmt.Sprintf("Added %s to cart", p.Name), false)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		m.search.Blur()
		m.pane = PaneProducts
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.cart.Lines()
	var id string
	if m.cartCursor < len(lines) {
		id = lines[m.cartCursor].ID
	}

	switch msg.String() {
	case "tab", "esc":
		m.pane = PaneProducts
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "+", "=", "right", "l":
		if id != "" {
			m.cart.ChangeQuantity(m.ctx, id, 1)
		}
	case "-", "left", "h":
		if id != "" {
			m.cart.ChangeQuantity(m.ctx, id, -1)
		}
	case "x", "delete", "backspace":
		if id != "" {
			m.cart.Remove(m.ctx, id)
			if m.cartCursor > 0 && m.cartCursor >= m.cart.Len() {
				m.cartCursor--
			}
		}
	case "C":
		if m.cart.Len() > 0 {
			m.cart.Clear(m.ctx)
			m.cartCursor = 0
			m.notify("Cart cleared", false)
		}
	case "o", "enter":
		// the drawer's Checkout button is disabled on an empty cart
		if m.cart.Len() > 0 {
			return m.openCheckout()
		}
	}
	return m, nil
}

func (m Model) openCheckout() (tea.Model, tea.Cmd) {
	m.dialog.Open()
	m.pane = PaneCheckout
	m.formField = fieldName
	return m, m.focusField()
}

func (m *Model) focusField() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.form {
		if i == m.formField {
			cmd = m.form[i].Focus()
		} else {
			m.form[i].Blur()
		}
	}
	return cmd
}

func (m Model) updateCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.dialog.Dismiss()
		m.blurForm()
		m.pane = PaneProducts
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.formField = (m.formField + 1) % fieldCount
		return m, m.focusField()
	case tea.KeyShiftTab, tea.KeyUp:
		m.formField = (m.formField + fieldCount - 1) % fieldCount
		return m, m.focusField()
	case tea.KeyEnter:
		if m.formField < fieldAddress {
			m.formField++
			return m, m.focusField()
		}
		return m.submit()
	case tea.KeyCtrlS:
		return m.submit()
	}

	var cmd tea.Cmd
	m.form[m.formField], cmd = m.form[m.formField].Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	form := checkout.Form{
		Name:    m.form[fieldName].Value(),
		Phone:   m.form[fieldPhone].Value(),
		Address: m.form[fieldAddress].Value(),
	}
	ack, err := m.dialog.Submit(form, m.cart)
	if err != nil {
		var e *errx.Error
		if errors.As(err, &e) {
			m.notify(e.Message, true)
		} else {
			m.notify(err.Error(), true)
		}
		return m, nil
	}

	m.notify(fmt.Sprintf("%s Ref %s · %s", ack.Message, ack.Reference[:8], m.money.Format(ack.Payable)), false)
	m.blurForm()
	m.pane = PaneProducts
	return m, nil
}

func (m *Model) blurForm() {
	for i := range m.form {
		m.form[i].Blur()
	}
}
