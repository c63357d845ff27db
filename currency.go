package tracker

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is one of the fixed set of display currencies the user can select.
//
// The currency is a display-format switch only: changing it relabels every
// amount with another symbol and grouping convention, it never converts
// values through an exchange rate.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	KES Currency = "KES"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

// SupportedCurrencies returns the selectable display currencies.
func SupportedCurrencies() []Currency {
	return []Currency{USD, EUR, GBP, JPY, KES, CAD, AUD}
}

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(s string) (Currency, error) {
	code := Currency(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range SupportedCurrencies() {
		if c == code {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported currency %q", ErrValidation, s)
}

// meta returns the go-money metadata for the currency: symbol, grouping and
// decimal separators, and the symbol placement template.
func (c Currency) meta() *money.Currency {
	return money.GetCurrency(string(c))
}

// go-money binds every currency to the en-US separator pair. EUR is displayed
// with the European convention instead, so its separators are overridden.
var separatorOverrides = map[Currency]struct{ thousand, decimal string }{
	EUR: {thousand: ".", decimal: ","},
}

func (c Currency) separators() (thousand, decimal string) {
	if o, ok := separatorOverrides[c]; ok {
		return o.thousand, o.decimal
	}
	m := c.meta()
	return m.Thousand, m.Decimal
}

// Symbol returns the display symbol of the currency.
func (c Currency) Symbol() string { return c.meta().Grapheme }

// Format renders an amount in this currency. With withSymbol the symbol is
// placed per the currency's own convention; without it only the grouped
// number is returned, safe to embed in CSV cells that are re-imported later.
//
// Every currency renders exactly two fraction digits, including those whose
// ISO minor unit differs (JPY), because that is the precision every stored
// amount carries.
func (c Currency) Format(a Amount, withSymbol bool) string {
	cur := c.meta()
	s := a.Round2().String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	thousand, decimal := c.separators()
	number := groupDigits(s, thousand, decimal)
	if !withSymbol {
		return sign + number
	}
	formatted := strings.Replace(cur.Template, "1", number, 1)
	return sign + strings.Replace(formatted, "$", cur.Grapheme, 1)
}

// groupDigits rewrites a plain "1234.56" string with the given thousands
// and decimal separators.
func groupDigits(s, thousand, decimal string) string {
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousand)
		}
		b.WriteRune(r)
	}
	b.WriteString(decimal)
	b.WriteString(fracPart)
	return b.String()
}
