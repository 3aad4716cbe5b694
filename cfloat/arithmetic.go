package cfloat

import "github.com/unisim/universal/internal/blocktriple"

// Add returns a+b, rounded to nearest, ties to even.
func (a CFloat) Add(b CFloat) CFloat {
	return Encode(a.cfg, blocktriple.Add(a.Decode(), b.Decode()))
}

// Sub returns a-b.
func (a CFloat) Sub(b CFloat) CFloat {
	return Encode(a.cfg, blocktriple.Sub(a.Decode(), b.Decode()))
}

// Mul returns a*b.
func (a CFloat) Mul(b CFloat) CFloat {
	return Encode(a.cfg, blocktriple.Mul(a.Decode(), b.Decode()))
}

// Div returns a/b.
func (a CFloat) Div(b CFloat) CFloat {
	return Encode(a.cfg, blocktriple.Div(a.Decode(), b.Decode()))
}

// Sqrt returns the square root of a.
func (a CFloat) Sqrt() CFloat {
	return Encode(a.cfg, blocktriple.Sqrt(a.Decode()))
}

// Neg returns -a, flipping the sign bit in place (no rounding needed: the
// magnitude is unchanged).
func (a CFloat) Neg() CFloat {
	sign, expField, fracField := a.fields()
	return pack(a.cfg, !sign, expField, fracField)
}
