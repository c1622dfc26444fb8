// Package format renders engine numbers for people: locale-aware decimals
// and the min/km pace notation.
package format

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Unavailable is shown instead of a pace or ratio that cannot be computed.
const Unavailable = "-"

type Formatter struct {
	printer *message.Printer
}

// New builds a formatter for a BCP 47 tag such as "sv-SE". Unknown tags fall
// back to Swedish, the locale the log was written for.
func New(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Swedish
	}
	return Formatter{printer: message.NewPrinter(tag)}
}

// Number formats value with exactly digits fraction digits.
func (f Formatter) Number(value float64, digits int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Unavailable
	}
	return f.printer.Sprint(number.Decimal(value, number.Scale(digits)))
}

// Pace renders seconds per kilometre as "m:ss min/km".
func (f Formatter) Pace(secPerKm float64) string {
	if math.IsNaN(secPerKm) || math.IsInf(secPerKm, 0) || secPerKm <= 0 {
		return Unavailable
	}
	total := int(math.Round(secPerKm))
	return fmt.Sprintf("%d:%02d min/km", total/60, total%60)
}

// Ratio formats an optional ratio; nil renders as Unavailable.
func (f Formatter) Ratio(value *float64, digits int) string {
	if value == nil {
		return Unavailable
	}
	return f.Number(*value, digits)
}

// Plain renders value the way input parsing reads it back: shortest form,
// point as decimal separator, no grouping.
func Plain(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
