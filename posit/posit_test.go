package posit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unisim/universal/internal/roundctl"
	"github.com/unisim/universal/posit"
)

func mustConst(t *testing.T, cfg posit.Config, tag posit.Tag) posit.Posit {
	t.Helper()
	v, err := posit.Const(cfg, tag)
	require.NoError(t, err)
	return v
}

func TestValidate(t *testing.T) {
	assert.NoError(t, posit.Config{NBits: 8, Es: 0}.Validate())
	assert.NoError(t, posit.Config{NBits: 32, Es: 2}.Validate())
	assert.Error(t, posit.Config{NBits: 2, Es: 0}.Validate())
	assert.Error(t, posit.Config{NBits: 8, Es: 7}.Validate())
	assert.Error(t, posit.Config{NBits: 65, Es: 2}.Validate())
}

func TestConstPatterns(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}

	assert.Equal(t, uint64(0x00), mustConst(t, cfg, posit.TagZero).Bits())
	assert.Equal(t, uint64(0x01), mustConst(t, cfg, posit.TagMinPos).Bits())
	assert.Equal(t, uint64(0x7F), mustConst(t, cfg, posit.TagMaxPos).Bits())
	assert.Equal(t, uint64(0xFF), mustConst(t, cfg, posit.TagMinNeg).Bits())
	assert.Equal(t, uint64(0x81), mustConst(t, cfg, posit.TagMaxNeg).Bits())
	assert.Equal(t, uint64(0x80), mustConst(t, cfg, posit.TagNaR).Bits())
}

func TestKnownEncodings(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}
	tests := []struct {
		value float64
		raw   uint64
	}{
		{value: 1, raw: 0x40},
		{value: -1, raw: 0xC0},
		{value: 0.0625, raw: 0x20}, // regime 01, exponent 00, fraction 000
		{value: 16, raw: 0x60},
		{value: 2, raw: 0x48},
		{value: 1.5, raw: 0x44},
		{value: math.Ldexp(1, -24), raw: 0x01}, // minpos = useed^-6
		{value: math.Ldexp(1, 24), raw: 0x7F},  // maxpos = useed^6
	}
	for _, tt := range tests {
		p := posit.FromFloat64(cfg, tt.value)
		assert.Equal(t, tt.raw, p.Bits(), "value %g", tt.value)
		assert.Equal(t, tt.value, p.ToFloat64(), "value %g", tt.value)
	}
}

func TestExceptionalEncodings(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}

	nar := posit.FromFloat64(cfg, math.NaN())
	assert.True(t, nar.IsNaR())
	assert.Equal(t, nar.Bits(), posit.FromFloat64(cfg, math.Inf(1)).Bits())
	assert.Equal(t, nar.Bits(), posit.FromFloat64(cfg, math.Inf(-1)).Bits())

	zero := posit.FromFloat64(cfg, 0)
	assert.True(t, zero.IsZero())
	assert.True(t, math.IsNaN(nar.ToFloat64()))
}

func TestNaRPropagation(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}
	nar := mustConst(t, cfg, posit.TagNaR)
	one := posit.FromFloat64(cfg, 1)
	zero := mustConst(t, cfg, posit.TagZero)

	assert.True(t, nar.Add(one).IsNaR())
	assert.True(t, one.Mul(nar).IsNaR())
	assert.True(t, one.Div(zero).IsNaR())
	assert.True(t, zero.Div(zero).IsNaR())
	assert.True(t, one.Neg().Sqrt().IsNaR())
}

// Arithmetic overflow saturates to maxpos and underflow clamps to
// minpos; posits never round to NaR or to zero from a nonzero value.
func TestSaturation(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}
	maxpos := mustConst(t, cfg, posit.TagMaxPos)
	minpos := mustConst(t, cfg, posit.TagMinPos)

	assert.Equal(t, maxpos.Bits(), maxpos.Add(maxpos).Bits())
	assert.Equal(t, maxpos.Bits(), maxpos.Mul(maxpos).Bits())
	assert.Equal(t, minpos.Bits(), minpos.Mul(minpos).Bits())
	assert.Equal(t, minpos.Bits(), minpos.Div(maxpos).Bits())

	maxneg := mustConst(t, cfg, posit.TagMaxNeg)
	assert.Equal(t, maxneg.Bits(), maxneg.Add(maxneg).Bits())
}

// The signed two's-complement order of the raw encodings is the value
// order; this is the property that makes posit comparison an integer
// comparison.
func TestMonotonicity(t *testing.T) {
	for _, es := range []int{0, 1, 2} {
		cfg := posit.Config{NBits: 8, Es: es}
		v, err := posit.New(cfg)
		require.NoError(t, err)

		prev := math.Inf(-1)
		for i := -127; i <= 127; i++ {
			cur := v.SetBits(uint64(uint8(int8(i)))).ToFloat64()
			assert.Greater(t, cur, prev, "es %d raw %d", es, i)
			prev = cur
		}
	}
}

func TestNegInvolution(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 1}
	v, err := posit.New(cfg)
	require.NoError(t, err)
	for raw := uint64(0); raw < 256; raw++ {
		x := v.SetBits(raw)
		assert.Equal(t, raw, x.Neg().Neg().Bits(), "raw %08b", raw)
		if !x.IsZero() && !x.IsNaR() {
			assert.Equal(t, -x.ToFloat64(), x.Neg().ToFloat64(), "raw %08b", raw)
		}
	}
}

func TestToBinary(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}
	one := posit.FromFloat64(cfg, 1)
	assert.Equal(t, "0.10.00.000", one.ToBinary())

	nar := mustConst(t, cfg, posit.TagNaR)
	assert.Equal(t, "10000000", nar.ToBinary())
}

func TestArithmeticMatchesHost(t *testing.T) {
	cfg := posit.Config{NBits: 16, Es: 1}
	tests := []struct {
		a, b float64
	}{
		{a: 1.5, b: 2.25},
		{a: -3.5, b: 0.125},
		{a: 100, b: 0.015625},
		{a: 7, b: -7},
	}
	for _, tt := range tests {
		pa := posit.FromFloat64(cfg, tt.a)
		pb := posit.FromFloat64(cfg, tt.b)
		assert.Equal(t, posit.FromFloat64(cfg, tt.a+tt.b).Bits(), pa.Add(pb).Bits(), "%g+%g", tt.a, tt.b)
		assert.Equal(t, posit.FromFloat64(cfg, tt.a*tt.b).Bits(), pa.Mul(pb).Bits(), "%g*%g", tt.a, tt.b)
		assert.Equal(t, posit.FromFloat64(cfg, tt.a/tt.b).Bits(), pa.Div(pb).Bits(), "%g/%g", tt.a, tt.b)
	}
}

func TestContextSignals(t *testing.T) {
	cfg := posit.Config{NBits: 8, Es: 2}
	one := posit.FromFloat64(cfg, 1)
	three := posit.FromFloat64(cfg, 3)
	zero := mustConst(t, cfg, posit.TagZero)
	maxpos := mustConst(t, cfg, posit.TagMaxPos)
	minpos := mustConst(t, cfg, posit.TagMinPos)

	ctx := posit.NewContext(0)
	_ = ctx.Add(one, one)
	assert.Equal(t, roundctl.SignalClear, ctx.Signals())

	_ = ctx.Div(one, three)
	assert.NotZero(t, ctx.Signals()&roundctl.SignalInexact)
	ctx.Clear()

	res := ctx.Mul(maxpos, maxpos)
	assert.Equal(t, maxpos.Bits(), res.Bits())
	assert.NotZero(t, ctx.Signals()&roundctl.SignalOverflow)
	ctx.Clear()

	res = ctx.Mul(minpos, minpos)
	assert.Equal(t, minpos.Bits(), res.Bits())
	assert.NotZero(t, ctx.Signals()&roundctl.SignalUnderflow)
	ctx.Clear()

	res = ctx.Div(one, zero)
	assert.True(t, res.IsNaR())
	assert.NotZero(t, ctx.Signals()&roundctl.SignalDivisionByZero)
	assert.NotZero(t, ctx.Signals()&roundctl.SignalInvalidOperation)
}

func TestSqrt(t *testing.T) {
	cfg := posit.Config{NBits: 16, Es: 1}
	assert.Equal(t, 3.0, posit.FromFloat64(cfg, 9).Sqrt().ToFloat64())
	assert.Equal(t, 0.25, posit.FromFloat64(cfg, 0.0625).Sqrt().ToFloat64())
	assert.True(t, posit.FromFloat64(cfg, 0).Sqrt().IsZero())
}
