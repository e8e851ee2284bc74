package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEnglish(t *testing.T) {
	f, err := NewFormatter("en-US")
	require.NoError(t, err)

	assert.Equal(t, "৳1,490", f.Format(1490))
	assert.Equal(t, "৳890", f.Format(890))
	assert.Equal(t, "৳0", f.Format(0))
	assert.Equal(t, "BDT", f.Code())
	assert.Equal(t, "en-US", f.Locale())
}

func TestFormatBengaliDefault(t *testing.T) {
	assert.Equal(t, "১,৪৯০৳", Format(1490))
	assert.Equal(t, "৮৯০৳", Format(890))
	assert.Equal(t, "১,৩৪,৭০০৳", Format(134700))
	assert.Equal(t, "০৳", Format(0))
}

func TestFormatterBengali(t *testing.T) {
	f, err := NewFormatter("bn-BD")
	require.NoError(t, err)

	assert.Equal(t, "৫,৪৯০৳", f.Format(5490))
	assert.Equal(t, "BDT", f.Code())
	assert.Equal(t, "bn-BD", f.Locale())
}

func TestNewFormatterRejectsBadLocale(t *testing.T) {
	_, err := NewFormatter("not a locale!")
	assert.Error(t, err)
}
