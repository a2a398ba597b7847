// Package format renders estimator results as locale-aware display strings.
// Nothing produced here is ever fed back into numeric state.
package format

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a locale cannot be parsed.
const DefaultLocale = "en-US"

// currencySymbols covers the currencies the storefront sells in. Other
// currencies render with their ISO code.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
	"CHF": "CHF",
	"SEK": "kr",
	"PLN": "zł",
	"INR": "₹",
}

// prefixLanguages place the currency symbol before the amount.
var prefixLanguages = map[string]bool{
	"en": true,
	"ja": true,
	"zh": true,
	"ko": true,
	"hi": true,
}

// Formatter renders numbers for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	unit    currency.Unit
	symbol  string
	prefix  bool
}

// New creates a Formatter for a BCP 47 locale such as "en-US" or "de-DE".
// Unparseable locales fall back to DefaultLocale.
func New(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil || tag == language.Und {
		tag = language.AmericanEnglish
	}

	unit, conf := currency.FromTag(tag)
	if conf == language.No {
		unit = currency.USD
	}

	symbol, ok := currencySymbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}
	base, _ := tag.Base()

	return Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		unit:    unit,
		symbol:  symbol,
		prefix:  prefixLanguages[base.String()],
	}
}

// Locale returns the resolved BCP 47 tag.
func (f Formatter) Locale() string {
	return f.tag.String()
}

// CurrencyCode returns the ISO 4217 code used for amounts.
func (f Formatter) CurrencyCode() string {
	return f.unit.String()
}

// Currency renders an amount rounded to whole units, e.g. "$1,235".
func (f Formatter) Currency(amount decimal.Decimal) string {
	rounded := amount.Round(0).IntPart()
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	digits := f.printer.Sprintf("%d", rounded)
	if f.prefix {
		return sign + f.symbol + digits
	}
	return sign + digits + " " + f.symbol
}

// Number renders a value rounded to an integer with grouping.
func (f Formatter) Number(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0"
	}
	return f.printer.Sprintf("%d", int64(math.Round(value)))
}

// FormatCurrency renders amount for locale.
func FormatCurrency(amount decimal.Decimal, locale string) string {
	return New(locale).Currency(amount)
}

// FormatNumber renders value for locale.
func FormatNumber(value float64, locale string) string {
	return New(locale).Number(value)
}

// FormatPercentage renders "{value}%".
func FormatPercentage(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "%"
}
