// Package format renders amounts and dates for display. Rounding happens
// here and nowhere else.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats an amount as US dollars, e.g. "$1,234.50"
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", whole.IntPart()), cents)
}

// Date formats a day as "Jan 15, 2024"
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// StoreDisplayName turns a store slug into "<Slug> Store"
func StoreDisplayName(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "Unknown Store"
	}
	r, size := utf8.DecodeRuneInString(slug)
	return string(unicode.ToUpper(r)) + slug[size:] + " Store"
}
