package posit

import "github.com/unisim/universal/internal/blocktriple"

// Add returns a+b. Any blocktriple result classified NaN or Inf (only
// reachable here via invalid operations, since finite overflow saturates
// inside Encode) collapses to the single NaR pattern.
func (a Posit) Add(b Posit) Posit {
	return Encode(a.cfg, blocktriple.Add(a.Decode(), b.Decode()))
}

// Sub returns a-b.
func (a Posit) Sub(b Posit) Posit {
	return Encode(a.cfg, blocktriple.Sub(a.Decode(), b.Decode()))
}

// Mul returns a*b.
func (a Posit) Mul(b Posit) Posit {
	return Encode(a.cfg, blocktriple.Mul(a.Decode(), b.Decode()))
}

// Div returns a/b. x/0 for finite nonzero x, and 0/0, both produce NaR,
// never a signed infinity.
func (a Posit) Div(b Posit) Posit {
	return Encode(a.cfg, blocktriple.Div(a.Decode(), b.Decode()))
}

// Sqrt returns the square root of a. Sqrt of a negative finite produces
// NaR.
func (a Posit) Sqrt() Posit {
	return Encode(a.cfg, blocktriple.Sqrt(a.Decode()))
}

// Neg returns -a.
func (a Posit) Neg() Posit {
	if a.IsZero() || a.IsNaR() {
		return a
	}
	p := Posit{cfg: a.cfg, raw: (^a.raw + 1) & a.mask()}
	return p
}
