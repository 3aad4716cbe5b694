package areal

import (
	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/roundctl"
)

// Add returns a+b. An operand's ubit survives decode as the blocktriple
// sticky flag, so an interval operand always yields an interval result;
// an exact result that falls between two grid points encodes its
// lower-magnitude neighbour with ubit=1, exactly like FromFloat64.
func (a Areal) Add(b Areal) Areal {
	return Encode(a.cfg, blocktriple.Add(a.Decode(), b.Decode()))
}

// Sub returns a-b.
func (a Areal) Sub(b Areal) Areal {
	return Encode(a.cfg, blocktriple.Sub(a.Decode(), b.Decode()))
}

// Mul returns a*b.
func (a Areal) Mul(b Areal) Areal {
	return Encode(a.cfg, blocktriple.Mul(a.Decode(), b.Decode()))
}

// Div returns a/b.
func (a Areal) Div(b Areal) Areal {
	return Encode(a.cfg, blocktriple.Div(a.Decode(), b.Decode()))
}

// Sqrt returns the square root of a.
func (a Areal) Sqrt() Areal {
	return Encode(a.cfg, blocktriple.Sqrt(a.Decode()))
}

// Neg returns -a.
func (a Areal) Neg() Areal {
	sign, expField, fracField, ubit := a.fields()
	return pack(a.cfg, !sign, expField, fracField, ubit)
}

// Encode maps a blocktriple value onto the configuration's grid with
// the same exact-or-interval contract FromFloat64 honors: an exactly
// representable value encodes with ubit=0, any other value encodes its
// lower-magnitude neighbour with ubit=1. It never rounds to nearest;
// the ubit carries the inexactness instead.
func Encode(cfg Config, t blocktriple.BlockTriple) Areal {
	v, _ := encode(cfg, t)
	return v
}

// encode additionally reports the signals the grid assignment incurred
// (a set ubit is an inexact result), for Context-aware callers; Encode
// discards them.
func encode(cfg Config, t blocktriple.BlockTriple) (Areal, roundctl.Signal) {
	l := cfg.derived()

	if t.IsNaN() {
		return nanPattern(cfg, t.IsSignaling()), roundctl.SignalInvalidOperation
	}
	if t.IsInf() {
		return infPattern(cfg, t.Sign()), roundctl.SignalClear
	}
	if t.IsZero() {
		return pack(cfg, t.Sign(), 0, 0, false), roundctl.SignalClear
	}

	sign := t.Sign()
	sticky := t.Sticky()
	sig := t.Significand()
	E := t.Scale() + l.bias

	if E > l.usableMax {
		// The (maxpos, inf) interval.
		return maxPattern(cfg, sign, true), roundctl.SignalOverflow | roundctl.SignalInexact
	}

	if E < 1 {
		topInclusive := blocktriple.SigBits - 1 - E
		frac, exact := blocktriple.TruncateWindow(sig, sticky, topInclusive, l.fracBits)
		signal := roundctl.SignalClear
		if !exact {
			signal = roundctl.SignalUnderflow | roundctl.SignalInexact
		}
		return pack(cfg, sign, 0, frac, !exact), signal
	}

	frac, exact := blocktriple.TruncateWindow(sig, sticky, blocktriple.SigBits-2, l.fracBits)
	signal := roundctl.SignalClear
	if !exact {
		signal = roundctl.SignalInexact
	}
	return pack(cfg, sign, E, frac, !exact), signal
}
