package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brb-shop/storefront/internal/storefront/model"
)

var formLabels = [fieldCount]string{"Full name", "Phone", "Delivery address"}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch m.pane {
	case PaneCart:
		b.WriteString(m.viewCart())
	case PaneCheckout:
		b.WriteString(m.viewCheckout())
	default:
		b.WriteString(m.viewProducts())
	}

	b.WriteString("\n")
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help()))
	return b.String()
}

func (m Model) viewHeader() string {
	title := m.styles.Title.Render("BRB Shop")
	subtitle := m.styles.Subtitle.Render("A clean, modern e-commerce starter.")
	cartBadge := m.styles.Badge.Render(fmt.Sprintf("Cart %d", m.cart.Count()))

	controls := fmt.Sprintf("%s  Category: %s  Sort: %s",
		m.search.View(),
		m.styles.Selected.Render(m.Category().String()),
		m.styles.Selected.Render(m.SortKey().Label()),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", subtitle, "  ", cartBadge)
	return m.styles.Header.Render(lipgloss.JoinVertical(lipgloss.Left, top, controls))
}

func (m Model) viewProducts() string {
	if len(m.products) == 0 {
		return m.styles.Muted.Render("No products match your search.")
	}

	cards := make([]string, 0, len(m.products))
	for i, p := range m.products {
		cards = append(cards, m.viewCard(p, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) viewCard(p model.Product, focused bool) string {
	name := p.Name
	if p.Badge != "" {
		name += " " + m.styles.Badge.Render(p.Badge)
	}
	if !p.InStock() {
		name += " " + m.styles.OutOfStock.Render("Out of stock")
	}

	meta := m.styles.Muted.Render(fmt.Sprintf("★ %.1f (%d) · %s", p.Rating, p.Reviews, p.Category))
	line := fmt.Sprintf("%s\n%s  %s", name, m.styles.Price.Render(m.money.Format(p.Price)), meta)

	style := m.styles.Card
	if focused {
		style = m.styles.CardFocused
		line = m.styles.Selected.Render("›") + " " + line
	}
	return style.Render(line)
}

func (m Model) viewCart() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your Cart"))
	b.WriteString("\n\n")

	lines := m.cart.Lines()
	if len(lines) == 0 {
		b.WriteString(m.styles.Muted.Render("Your cart is empty."))
		b.WriteString("\n")
	}
	for i, l := range lines {
		cursor := "  "
		if i == m.cartCursor {
			cursor = m.styles.Selected.Render("› ")
		}
		fmt.Fprintf(&b, "%s%-22s %s  [-] %d [+]  %s\n",
			cursor, l.Name, m.styles.Muted.Render(m.money.Format(l.Price)), l.Qty,
			m.styles.Price.Render(m.money.Format(l.Subtotal())))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal  %s\n", m.styles.Price.Render(m.money.Format(m.cart.Total())))
	b.WriteString("Delivery  Free\n")
	return m.styles.Drawer.Render(b.String())
}

func (m Model) viewCheckout() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Checkout"))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Demo checkout form. No payment is taken."))
	b.WriteString("\n\n")

	for i := range m.form {
		label := formLabels[i]
		if i == m.formField {
			label = m.styles.Selected.Render(label)
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, m.form[i].View())
	}

	fmt.Fprintf(&b, "Payable  %s\n\n", m.styles.Price.Render(m.money.Format(m.cart.Total())))
	if m.dialog.CanSubmit(m.cart) {
		b.WriteString(m.styles.Badge.Render("Place Order"))
	} else {
		b.WriteString(m.styles.Muted.Render("Place Order (cart is empty)"))
	}
	return m.styles.Dialog.Render(b.String())
}

func (m Model) help() string {
	switch m.pane {
	case PaneSearch:
		return "type to search · enter/esc done"
	case PaneCart:
		return "↑/↓ select · +/- quantity · x remove · C clear · o checkout · tab close"
	case PaneCheckout:
		return "tab next field · enter submit · esc cancel"
	default:
		return "/ search · c category · s sort · enter add · d details · tab cart · o checkout · q quit"
	}
}
