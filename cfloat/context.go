package cfloat

import (
	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/roundctl"
)

// Context carries the exception state for a sequence of cfloat
// operations. Rounding itself is fixed at round-to-nearest-even; there
// is no configurable rounding mode. Context exists so a caller can opt
// into observing or trapping the signals the rounding incurred
// (inexact, underflow, overflow, division by zero, invalid operation)
// instead of silently receiving the format's NaN. A NaN result raises
// SignalInvalidOperation regardless of whether it was computed or
// propagated from a NaN operand.
type Context struct {
	roundctl.Context
}

// NewContext returns a Context trapping the given signals.
func NewContext(traps roundctl.Signal) Context {
	return Context{Context: roundctl.NewContext(traps)}
}

// observe re-encodes the operation's result, raising the signals the
// encoding reports. A nil ctx skips observation.
func (ctx *Context) observe(cfg Config, t blocktriple.BlockTriple) CFloat {
	result, signal := encode(cfg, t)
	if ctx != nil && signal != roundctl.SignalClear {
		ctx.Raise(signal)
	}
	return result
}

// Add returns a+b, raising signals on ctx.
func (ctx *Context) Add(a, b CFloat) CFloat {
	return ctx.observe(a.cfg, blocktriple.Add(a.Decode(), b.Decode()))
}

// Sub returns a-b, raising signals on ctx.
func (ctx *Context) Sub(a, b CFloat) CFloat {
	return ctx.observe(a.cfg, blocktriple.Sub(a.Decode(), b.Decode()))
}

// Mul returns a*b, raising signals on ctx.
func (ctx *Context) Mul(a, b CFloat) CFloat {
	return ctx.observe(a.cfg, blocktriple.Mul(a.Decode(), b.Decode()))
}

// Div returns a/b, raising signals on ctx, including division-by-zero
// for finite nonzero a over zero b.
func (ctx *Context) Div(a, b CFloat) CFloat {
	if ctx != nil && b.IsZero() && !a.IsZero() && !a.IsNaN() {
		ctx.Raise(roundctl.SignalDivisionByZero)
	}
	return ctx.observe(a.cfg, blocktriple.Div(a.Decode(), b.Decode()))
}

// Sqrt returns the square root of a, raising signals on ctx.
func (ctx *Context) Sqrt(a CFloat) CFloat {
	return ctx.observe(a.cfg, blocktriple.Sqrt(a.Decode()))
}
