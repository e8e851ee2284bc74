// Package money renders taka amounts for display.
package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol is the taka sign.
const Symbol = "৳"

// DefaultLocale matches the storefront's Bangladeshi audience.
const DefaultLocale = "bn-BD"

var bdt = currency.MustParseISO("BDT")

// Formatter prints whole-taka amounts with locale digit grouping and no
// fractional digits.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for a BCP 47 locale such as "bn-BD" or "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		unit:    bdt,
	}, nil
}

// Format renders amount, e.g. "৳1,490" in English or "১,৪৯০৳" in Bengali.
// Bengali uses lakh grouping and Bengali digits.
func (f *Formatter) Format(amount int64) string {
	n := f.printer.Sprintf("%v", number.Decimal(amount, number.MaxFractionDigits(0)))
	if base, _ := f.tag.Base(); base.String() == "bn" {
		return strings.Map(bengaliDigit, n) + Symbol
	}
	return Symbol + n
}

func bengaliDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return '০' + (r - '0')
	}
	return r
}

// Code is the ISO 4217 code of the currency, "BDT".
func (f *Formatter) Code() string {
	return f.unit.String()
}

// Locale is the tag the formatter was built for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

var defaultFormatter, _ = NewFormatter(DefaultLocale)

// Format renders amount with the default Bengali formatter.
func Format(amount int64) string {
	return defaultFormatter.Format(amount)
}
