package posit

import (
	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/roundctl"
)

// Context carries the exception state for a sequence of posit
// operations. Posits absorb every exception into an encoding (NaR for
// invalid operations, maxpos/minpos saturation for over/underflow), so
// nothing is observable from the result bits alone once an operation
// chain has run; Context surfaces those events as observable or
// trappable signals. A NaR result raises SignalInvalidOperation
// regardless of whether it was computed or propagated from a NaR
// operand.
type Context struct {
	roundctl.Context
}

// NewContext returns a Context trapping the given signals.
func NewContext(traps roundctl.Signal) Context {
	return Context{Context: roundctl.NewContext(traps)}
}

func (ctx *Context) observe(cfg Config, t blocktriple.BlockTriple) Posit {
	result, signal := encode(cfg, t)
	if ctx != nil && signal != roundctl.SignalClear {
		ctx.Raise(signal)
	}
	return result
}

// Add returns a+b, raising signals on ctx.
func (ctx *Context) Add(a, b Posit) Posit {
	return ctx.observe(a.cfg, blocktriple.Add(a.Decode(), b.Decode()))
}

// Sub returns a-b, raising signals on ctx.
func (ctx *Context) Sub(a, b Posit) Posit {
	return ctx.observe(a.cfg, blocktriple.Sub(a.Decode(), b.Decode()))
}

// Mul returns a*b, raising signals on ctx.
func (ctx *Context) Mul(a, b Posit) Posit {
	return ctx.observe(a.cfg, blocktriple.Mul(a.Decode(), b.Decode()))
}

// Div returns a/b, raising signals on ctx, including division-by-zero
// for finite nonzero a over zero b.
func (ctx *Context) Div(a, b Posit) Posit {
	if ctx != nil && b.IsZero() && !a.IsZero() && !a.IsNaR() {
		ctx.Raise(roundctl.SignalDivisionByZero)
	}
	return ctx.observe(a.cfg, blocktriple.Div(a.Decode(), b.Decode()))
}

// Sqrt returns the square root of a, raising signals on ctx.
func (ctx *Context) Sqrt(a Posit) Posit {
	return ctx.observe(a.cfg, blocktriple.Sqrt(a.Decode()))
}
