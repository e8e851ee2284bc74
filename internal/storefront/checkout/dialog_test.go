package checkout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/brb-shop/storefront/internal/core/error"
)

type stubCart struct {
	lines int
	total int64
}

func (s stubCart) Len() int     { return s.lines }
func (s stubCart) Total() int64 { return s.total }

var validForm = Form{Name: "Bikrom Roy", Phone: "01700000000", Address: "House 1, Road 2, Dhaka"}

func TestOpenDismiss(t *testing.T) {
	d := NewDialog()
	assert.False(t, d.IsOpen())
	d.Open()
	assert.True(t, d.IsOpen())
	d.Dismiss()
	assert.False(t, d.IsOpen())
}

func TestSubmitAcknowledges(t *testing.T) {
	d := NewDialog()
	placed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return placed }
	d.Open()

	cart := stubCart{lines: 2, total: 4970}
	ack, err := d.Submit(validForm, cart)
	require.NoError(t, err)

	assert.Equal(t, AcknowledgmentMessage, ack.Message)
	assert.Equal(t, int64(4970), ack.Payable)
	assert.Equal(t, placed, ack.PlacedAt)
	_, err = uuid.Parse(ack.Reference)
	assert.NoError(t, err)
	assert.False(t, d.IsOpen())
}

func TestSubmitRequiresEveryField(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		field string
	}{
		{"name", Form{Phone: "017", Address: "Dhaka"}, "full name"},
		{"phone", Form{Name: "A", Phone: "   ", Address: "Dhaka"}, "phone"},
		{"address", Form{Name: "A", Phone: "017"}, "delivery address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDialog()
			d.Open()
			_, err := d.Submit(tt.form, stubCart{lines: 1, total: 10})
			require.ErrorIs(t, err, errx.ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
			assert.True(t, d.IsOpen())
		})
	}
}

func TestSubmitRefusesEmptyCart(t *testing.T) {
	d := NewDialog()
	d.Open()
	assert.False(t, d.CanSubmit(stubCart{}))

	_, err := d.Submit(validForm, stubCart{})
	require.ErrorIs(t, err, errx.ErrEmptyCart)
	assert.True(t, d.IsOpen())
}
