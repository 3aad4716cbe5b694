// Package quadratic evaluates the classic catastrophic-cancellation
// probe (-b + sqrt(b*b - 4ac)) / 2a across number systems. With
// a=1, b=1e4, c=1 the two terms of the numerator agree to eight
// significant digits. In float32, posit<32,2> and cfloat<32,8> the
// discriminant 1e8-4 rounds to 1e8, so the numerator cancels to exactly
// zero and the small root comes out as 0; float64 keeps enough bits to
// recover it.
package quadratic

import (
	"math"

	"github.com/unisim/universal/cfloat"
	"github.com/unisim/universal/posit"
)

// Result pairs one number system's root with its diagnostics.
type Result struct {
	System string
	Root   float64
	Bits   string
}

// Float32Root evaluates the formula entirely in float32.
func Float32Root(a, b, c float32) float32 {
	d := b*b - 4*a*c
	return (-b + float32(math.Sqrt(float64(d)))) / (2 * a)
}

// Float64Root evaluates the formula entirely in float64.
func Float64Root(a, b, c float64) float64 {
	d := b*b - 4*a*c
	return (-b + math.Sqrt(d)) / (2 * a)
}

// PositRoot evaluates the formula in the given posit configuration,
// performing every intermediate operation in the format.
func PositRoot(cfg posit.Config, a, b, c float64) posit.Posit {
	pa := posit.FromFloat64(cfg, a)
	pb := posit.FromFloat64(cfg, b)
	pc := posit.FromFloat64(cfg, c)
	four := posit.FromFloat64(cfg, 4)
	two := posit.FromFloat64(cfg, 2)

	d := pb.Mul(pb).Sub(four.Mul(pa).Mul(pc))
	return pb.Neg().Add(d.Sqrt()).Div(two.Mul(pa))
}

// CFloatRoot evaluates the formula in the given cfloat configuration.
func CFloatRoot(cfg cfloat.Config, a, b, c float64) cfloat.CFloat {
	fa := cfloat.FromFloat64(cfg, a)
	fb := cfloat.FromFloat64(cfg, b)
	fc := cfloat.FromFloat64(cfg, c)
	four := cfloat.FromFloat64(cfg, 4)
	two := cfloat.FromFloat64(cfg, 2)

	d := fb.Mul(fb).Sub(four.Mul(fa).Mul(fc))
	return fb.Neg().Add(d.Sqrt()).Div(two.Mul(fa))
}

// Compare evaluates the formula for the given coefficients in float32,
// float64, posit<32,2>, and cfloat<32,8> and returns one Result per
// system, float64 first as the reference row.
func Compare(a, b, c float64) []Result {
	pcfg := posit.Config{NBits: 32, Es: 2}
	ccfg := cfloat.Config{NBits: 32, Es: 8, HasSubnormals: true}

	f32 := Float32Root(float32(a), float32(b), float32(c))
	p := PositRoot(pcfg, a, b, c)
	cf := CFloatRoot(ccfg, a, b, c)

	return []Result{
		{System: "float64", Root: Float64Root(a, b, c)},
		{System: "float32", Root: float64(f32)},
		{System: "posit<32,2>", Root: p.ToFloat64(), Bits: p.ToBinary()},
		{System: "cfloat<32,8>", Root: cf.ToFloat64(), Bits: cf.ToBinary()},
	}
}
