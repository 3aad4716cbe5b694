// Package display renders encoded values as locale-aware decimal text.
// The bit-exact ToBinary form stays with each encoding package; display
// only covers the human-facing decimal surface.
package display

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Valuer is implemented by cfloat.CFloat, posit.Posit, and areal.Areal.
type Valuer interface {
	ToFloat64() float64
}

// Format renders v for the given locale with exactly digits decimal
// places. Non-finite values render as the locale-independent strings
// "NaN", "Inf", and "-Inf".
func Format(v Valuer, tag language.Tag, digits int) string {
	d := v.ToFloat64()
	switch {
	case math.IsNaN(d):
		return "NaN"
	case math.IsInf(d, 1):
		return "Inf"
	case math.IsInf(d, -1):
		return "-Inf"
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", number.Decimal(d, number.Scale(digits)))
}

// FormatAll renders a slice of values with a shared locale and scale,
// preserving order.
func FormatAll[V Valuer](vs []V, tag language.Tag, digits int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Format(v, tag, digits)
	}
	return out
}
