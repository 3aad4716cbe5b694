package cfloat_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unisim/universal/cfloat"
	"github.com/unisim/universal/internal/errs"
	"github.com/unisim/universal/internal/roundctl"
)

func mustConst(t *testing.T, cfg cfloat.Config, tag cfloat.Tag) cfloat.CFloat {
	t.Helper()
	v, err := cfloat.Const(cfg, tag)
	require.NoError(t, err)
	return v
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  cfloat.Config
		ok   bool
	}{
		{name: "minimal", cfg: cfloat.Config{NBits: 3, Es: 1}, ok: true},
		{name: "single", cfg: cfloat.Config{NBits: 32, Es: 8, HasSubnormals: true}, ok: true},
		{name: "too narrow", cfg: cfloat.Config{NBits: 2, Es: 1}, ok: false},
		{name: "es zero", cfg: cfloat.Config{NBits: 8, Es: 0}, ok: false},
		{name: "es too wide", cfg: cfloat.Config{NBits: 8, Es: 7}, ok: false},
		{name: "too wide", cfg: cfloat.Config{NBits: 65, Es: 11}, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var e *errs.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errs.KindConfigurationInvalid, e.Kind())
		})
	}
}

// Every pattern of cfloat<4,1> with subnormals and supernormals against
// hand-computed values: bias is 0, the all-zero exponent band holds
// 0/.5/1/1.5, the all-ones band holds the supernormals 2/2.5/3/3.5,
// and the single pattern sign=1,exp=1,frac=0 is the reserved NaN.
func TestDecodeSupernormal4bit(t *testing.T) {
	cfg := cfloat.Config{NBits: 4, Es: 1, HasSubnormals: true, HasSupernormals: true}
	want := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}

	v, err := cfloat.New(cfg)
	require.NoError(t, err)
	for raw := uint64(0); raw < 8; raw++ {
		x := v.SetBits(raw)
		assert.Equal(t, want[raw], x.ToFloat64(), "raw %04b", raw)

		neg := v.SetBits(raw | 8)
		if raw == 4 {
			assert.True(t, neg.IsNaN(), "raw %04b is the reserved NaN", raw|8)
			continue
		}
		assert.Equal(t, -want[raw], neg.ToFloat64(), "raw %04b", raw|8)
	}
}

func TestInfinityArithmetic(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2}
	posInf := mustConst(t, cfg, cfloat.TagPosInf)
	negInf := mustConst(t, cfg, cfloat.TagNegInf)

	sum := posInf.Add(posInf)
	assert.Equal(t, posInf.Bits(), sum.Bits())

	// inf + -inf is the canonical quiet NaN: sign 0, exponent all ones,
	// fraction nonzero.
	nan := posInf.Add(negInf)
	assert.True(t, nan.IsNaN())
	assert.Equal(t, uint64(0x61), nan.Bits())
	assert.Equal(t, "0.11.00001", nan.ToBinary())
}

func TestDivisionSpecials(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	zero := mustConst(t, cfg, cfloat.TagZero)
	one := cfloat.FromFloat64(cfg, 1)
	posInf := mustConst(t, cfg, cfloat.TagPosInf)

	assert.True(t, zero.Div(zero).IsNaN())
	assert.Equal(t, posInf.Bits(), one.Div(zero).Bits())
	assert.Equal(t, posInf.Neg().Bits(), one.Neg().Div(zero).Bits())
	assert.True(t, one.Neg().Sqrt().IsNaN())
	assert.True(t, posInf.Sub(posInf).IsNaN())
}

func TestSignedZeroPreserved(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	posZero := cfloat.FromFloat64(cfg, 0)
	negZero := cfloat.FromFloat64(cfg, math.Copysign(0, -1))

	assert.NotEqual(t, posZero.Bits(), negZero.Bits())
	assert.Equal(t, posZero.Bits(), posZero.Add(negZero).Bits())
	assert.Equal(t, negZero.Bits(), negZero.Add(negZero).Bits())
	assert.Equal(t, posZero.Bits(), posZero.Sub(posZero).Bits())

	x := cfloat.FromFloat64(cfg, 1.5)
	assert.Equal(t, posZero.Bits(), x.Sub(x).Bits())
}

func TestConstPatterns(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}

	assert.Equal(t, uint64(0x00), mustConst(t, cfg, cfloat.TagZero).Bits())
	assert.Equal(t, uint64(0x01), mustConst(t, cfg, cfloat.TagMinPos).Bits())
	assert.Equal(t, uint64(0x5F), mustConst(t, cfg, cfloat.TagMaxPos).Bits())
	assert.Equal(t, uint64(0x81), mustConst(t, cfg, cfloat.TagMinNeg).Bits())
	assert.Equal(t, uint64(0xDF), mustConst(t, cfg, cfloat.TagMaxNeg).Bits())
	assert.Equal(t, uint64(0x60), mustConst(t, cfg, cfloat.TagPosInf).Bits())
	assert.Equal(t, uint64(0xE0), mustConst(t, cfg, cfloat.TagNegInf).Bits())
	assert.Equal(t, uint64(0x61), mustConst(t, cfg, cfloat.TagQNaN).Bits())
	assert.Equal(t, uint64(0xE1), mustConst(t, cfg, cfloat.TagSNaN).Bits())
}

func TestRoundingCarry(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}

	// 1.99999 rounds across the binade boundary to exactly 2.
	two := cfloat.FromFloat64(cfg, 1.99999)
	assert.Equal(t, 2.0, two.ToFloat64())

	// 0.9999 rounds up from the subnormal window into the smallest
	// normal, 1.0.
	one := cfloat.FromFloat64(cfg, 0.9999)
	assert.Equal(t, 1.0, one.ToFloat64())
}

func TestOverflowBehavior(t *testing.T) {
	plain := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	sat := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true, IsSaturating: true}

	maxPlain := mustConst(t, plain, cfloat.TagMaxPos)
	assert.True(t, maxPlain.Add(maxPlain).IsInf())

	maxSat := mustConst(t, sat, cfloat.TagMaxPos)
	sum := maxSat.Add(maxSat)
	assert.Equal(t, maxSat.Bits(), sum.Bits())
	assert.Equal(t, maxSat.Neg().Bits(), maxSat.Neg().Add(maxSat.Neg()).Bits())
}

func TestPresetAccuracy(t *testing.T) {
	// Both presets share an 8-bit exponent; 1.2345 lands on 1.234375 in
	// each (the tensorfloat fraction is a zero-padded superset here).
	bf := cfloat.FromFloat64(cfloat.BFloat16(), 1.2345)
	assert.Equal(t, 1.234375, bf.ToFloat64())
	assert.InEpsilon(t, 1.2345, bf.ToFloat64(), math.Ldexp(1, -7))

	tf := cfloat.FromFloat64(cfloat.TensorFloat32(), 1.2345)
	assert.Equal(t, 1.234375, tf.ToFloat64())
	assert.InEpsilon(t, 1.2345, tf.ToFloat64(), math.Ldexp(1, -10))
}

func TestMonotonicity(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	v, err := cfloat.New(cfg)
	require.NoError(t, err)

	prev := v.SetBits(0).ToFloat64()
	for raw := uint64(1); raw < 0x60; raw++ {
		cur := v.SetBits(raw).ToFloat64()
		assert.Greater(t, cur, prev, "raw %08b", raw)
		prev = cur
	}
}

func TestNegInvolution(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	v, err := cfloat.New(cfg)
	require.NoError(t, err)
	for raw := uint64(0); raw < 256; raw++ {
		x := v.SetBits(raw)
		assert.Equal(t, raw, x.Neg().Neg().Bits(), "raw %08b", raw)
	}
}

func TestToBinary(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	x := cfloat.FromFloat64(cfg, 1.5)
	// 1.5 = 1.10000 * 2^0, stored exponent = bias = 1.
	assert.Equal(t, "0.01.10000", x.ToBinary())
	assert.Equal(t, "1.01.10000", x.Neg().ToBinary())
}

func TestContextSignals(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	one := cfloat.FromFloat64(cfg, 1)
	three := cfloat.FromFloat64(cfg, 3)
	zero := mustConst(t, cfg, cfloat.TagZero)
	minpos := mustConst(t, cfg, cfloat.TagMinPos)
	maxpos := mustConst(t, cfg, cfloat.TagMaxPos)

	ctx := cfloat.NewContext(0)
	_ = ctx.Add(one, one)
	assert.Equal(t, roundctl.SignalClear, ctx.Signals())

	_ = ctx.Div(one, three)
	assert.NotZero(t, ctx.Signals()&roundctl.SignalInexact)
	ctx.Clear()
	assert.Equal(t, roundctl.SignalClear, ctx.Signals())

	res := ctx.Mul(minpos, minpos)
	assert.True(t, res.IsZero())
	assert.NotZero(t, ctx.Signals()&roundctl.SignalUnderflow)
	ctx.Clear()

	assert.True(t, ctx.Add(maxpos, maxpos).IsInf())
	assert.NotZero(t, ctx.Signals()&roundctl.SignalOverflow)
	ctx.Clear()

	_ = ctx.Div(one, zero)
	assert.NotZero(t, ctx.Signals()&roundctl.SignalDivisionByZero)
	ctx.Clear()

	assert.True(t, ctx.Sqrt(one.Neg()).IsNaN())
	assert.NotZero(t, ctx.Signals()&roundctl.SignalInvalidOperation)
}

func TestContextTraps(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	maxpos := mustConst(t, cfg, cfloat.TagMaxPos)

	ctx := cfloat.NewContext(roundctl.SignalOverflow)
	_ = ctx.Add(maxpos, maxpos)
	assert.True(t, ctx.Trapped())

	inexactOnly := cfloat.NewContext(roundctl.SignalInexact)
	_ = inexactOnly.Add(maxpos, maxpos.Neg())
	assert.False(t, inexactOnly.Trapped())
}
