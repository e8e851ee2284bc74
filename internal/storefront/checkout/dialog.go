// Package checkout is the demo checkout dialog. It validates the form the way
// the storefront's required inputs do and acknowledges the order locally; no
// payment or order backend is contacted and the cart is left untouched.
package checkout

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	errx "github.com/brb-shop/storefront/internal/core/error"
	logx "github.com/brb-shop/storefront/pkg/logger"
)

// AcknowledgmentMessage is shown after a successful submission.
const AcknowledgmentMessage = "Order placed! (demo)"

// Cart is the part of the cart store the dialog reads.
type Cart interface {
	Len() int
	Total() int64
}

// Form holds the delivery details. All fields are required.
type Form struct {
	Name    string
	Phone   string
	Address string
}

// Acknowledgment is the client-side receipt for a demo order.
type Acknowledgment struct {
	Reference string
	Message   string
	Payable   int64
	PlacedAt  time.Time
}

// Dialog is a visibility flag plus submission handling.
type Dialog struct {
	open  bool
	newID func() string
	now   func() time.Time
}

func NewDialog() *Dialog {
	return &Dialog{newID: uuid.NewString, now: time.Now}
}

// Open shows the dialog. Any checkout trigger calls it.
func (d *Dialog) Open() {
	d.open = true
}

// Dismiss hides the dialog without submitting.
func (d *Dialog) Dismiss() {
	d.open = false
}

func (d *Dialog) IsOpen() bool {
	return d.open
}

// CanSubmit mirrors the disabled state of the "Place Order" button.
func (d *Dialog) CanSubmit(c Cart) bool {
	return c.Len() > 0
}

// Submit validates f against c and, on success, closes the dialog and
// returns an acknowledgment. On failure the dialog stays open.
func (d *Dialog) Submit(f Form, c Cart) (Acknowledgment, error) {
	if err := f.Validate(); err != nil {
		return Acknowledgment{}, err
	}
	if !d.CanSubmit(c) {
		return Acknowledgment{}, errx.New(errx.ErrEmptyCart, http.StatusConflict, "cannot place an order with an empty cart")
	}

	ack := Acknowledgment{
		Reference: d.newID(),
		Message:   AcknowledgmentMessage,
		Payable:   c.Total(),
		PlacedAt:  d.now(),
	}
	d.open = false
	logx.Info().Str("reference", ack.Reference).Int64("payable", ack.Payable).Msg("demo order acknowledged")
	return ack, nil
}

// Validate reports the first blank required field.
func (f Form) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"full name", f.Name},
		{"phone", f.Phone},
		{"delivery address", f.Address},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return errx.MissingField(field.name)
		}
	}
	return nil
}
