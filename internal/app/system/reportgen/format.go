package reportgen

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders numbers and money with thousands separators.
type Formatter struct {
	Currency string
	p        *message.Printer
}

// NewFormatter builds a Formatter for currency (e.g. "PKR").
func NewFormatter(currency string) Formatter {
	return Formatter{
		Currency: strings.TrimSpace(currency),
		p:        message.NewPrinter(language.English),
	}
}

func (f Formatter) printer() *message.Printer {
	if f.p == nil {
		return message.NewPrinter(language.English)
	}
	return f.p
}

// Money formats amount with two decimals, prefixed by the currency.
func (f Formatter) Money(amount float64) string {
	s := f.printer().Sprint(number.Decimal(amount, number.Scale(2)))
	if f.Currency == "" {
		return s
	}
	return f.Currency + " " + s
}

// Int formats n with grouping.
func (f Formatter) Int(n int) string {
	return f.printer().Sprintf("%d", n)
}

// Percent formats a 0-100 value with one decimal.
func (f Formatter) Percent(v float64) string {
	return f.printer().Sprint(number.Decimal(v, number.Scale(1))) + "%"
}

// Date formats t, or "-" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// DateTime formats t with minutes, or "-" for the zero time.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}
