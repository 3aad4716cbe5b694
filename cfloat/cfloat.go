package cfloat

import (
	"math"

	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/roundctl"
)

// CFloat is one encoded value of a given Config. raw holds the nbits-wide
// bit pattern right-aligned in a uint64.
type CFloat struct {
	cfg Config
	raw uint64
}

// New returns the zero value of the given configuration, validating it.
func New(cfg Config) (CFloat, error) {
	if err := cfg.Validate(); err != nil {
		return CFloat{}, err
	}
	return CFloat{cfg: cfg}, nil
}

// Config returns the value's configuration.
func (f CFloat) Config() Config { return f.cfg }

func (f CFloat) mask() uint64 {
	if f.cfg.NBits == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(f.cfg.NBits)) - 1
}

// SetBits overwrites the raw encoding directly, masking to nbits.
func (f CFloat) SetBits(raw uint64) CFloat {
	f.raw = raw & f.mask()
	return f
}

// Bits returns the raw nbits-wide encoding.
func (f CFloat) Bits() uint64 { return f.raw }

func (f CFloat) fields() (sign bool, expField int, fracField uint64) {
	l := f.cfg.derived()
	sign = (f.raw>>uint(f.cfg.NBits-1))&1 == 1
	expMask := uint64(l.maxExpCode)
	expField = int((f.raw >> uint(l.fracBits)) & expMask)
	fracMask := (uint64(1) << uint(l.fracBits)) - 1
	fracField = f.raw & fracMask
	return
}

func pack(cfg Config, sign bool, expField int, fracField uint64) CFloat {
	l := cfg.derived()
	var raw uint64
	if sign {
		raw |= uint64(1) << uint(cfg.NBits-1)
	}
	raw |= uint64(expField) << uint(l.fracBits)
	raw |= fracField & ((uint64(1) << uint(l.fracBits)) - 1)
	return CFloat{cfg: cfg, raw: raw & (CFloat{cfg: cfg}).mask()}
}

// Decode classifies the raw pattern and produces the blocktriple working
// value it represents. Every bit pattern has exactly one meaning for a
// given configuration, so this never fails.
func (f CFloat) Decode() blocktriple.BlockTriple {
	l := f.cfg.derived()
	sign, expField, fracField := f.fields()

	switch {
	case expField == 0:
		if fracField == 0 {
			return blocktriple.Zero(sign)
		}
		if f.cfg.HasSubnormals {
			return blocktriple.FromBits(sign, -l.bias, fracField, l.fracBits)
		}
		if f.cfg.IsSaturating {
			return minposTriple(f.cfg, sign)
		}
		return blocktriple.Zero(sign)

	case expField == l.maxExpCode && !f.cfg.HasSupernormals:
		if fracField == 0 {
			return blocktriple.Inf(sign)
		}
		// Signaling vs. quiet is distinguished by the sign bit.
		return blocktriple.NaN(sign)

	case f.cfg.HasSupernormals && sign && expField == l.maxExpCode && fracField == 0:
		return blocktriple.NaN(false)

	default:
		sig := (uint64(1) << uint(l.fracBits)) | fracField
		return blocktriple.FromBits(sign, expField-l.bias, sig, l.fracBits+1)
	}
}

func minposTriple(cfg Config, sign bool) blocktriple.BlockTriple {
	l := cfg.derived()
	return blocktriple.FromBits(sign, 1-l.bias, 1, 1)
}

// Encode rounds a blocktriple value to the nearest representable pattern
// of this configuration, round-to-nearest-even, and returns the
// resulting CFloat.
func Encode(cfg Config, t blocktriple.BlockTriple) CFloat {
	v, _ := encode(cfg, t)
	return v
}

// encode additionally reports the signals the rounding incurred
// (inexact, overflow, underflow, invalid operation), for Context-aware
// callers; Encode discards them.
func encode(cfg Config, t blocktriple.BlockTriple) (CFloat, roundctl.Signal) {
	l := cfg.derived()

	if t.IsNaN() {
		return nanPattern(cfg, t.IsSignaling()), roundctl.SignalInvalidOperation
	}
	if t.IsInf() {
		if !cfg.HasSupernormals && !cfg.IsSaturating {
			return infPattern(cfg, t.Sign()), roundctl.SignalClear
		}
		return maxPattern(cfg, t.Sign()), roundctl.SignalClear
	}
	if t.IsZero() {
		return pack(cfg, t.Sign(), 0, 0), roundctl.SignalClear
	}

	sign := t.Sign()
	scale := t.Scale()
	sticky := t.Sticky()
	sig := t.Significand()
	E := scale + l.bias

	if E > l.usableMax {
		return overflowPattern(cfg, sign), roundctl.SignalOverflow | roundctl.SignalInexact
	}

	var frac uint64
	signal := roundctl.SignalClear
	if E < 1 {
		if !cfg.HasSubnormals {
			// A nonzero value flushed to zero or snapped to minpos is
			// always a lossy underflow.
			signal = roundctl.SignalUnderflow | roundctl.SignalInexact
			if cfg.IsSaturating {
				// Snap to minpos or zero by magnitude: the midpoint of
				// (0, minpos) sits at scale -bias for a normalized
				// significand.
				if scale >= -l.bias {
					return minposPattern(cfg, sign), signal
				}
				return pack(cfg, sign, 0, 0), signal
			}
			return pack(cfg, sign, 0, 0), signal
		}
		// A subnormal has no implicit leading bit, so its fracBits
		// window sits 1-E bits higher in the significand than the
		// normal window (SigBits-2): at E=0 the window's top edge is
		// exactly SigBits-1, the position a normal's implicit bit
		// would occupy.
		topInclusive := blocktriple.SigBits - 1 - E
		var carry, inexact bool
		frac, carry, inexact = blocktriple.RoundWindow(sig, sticky, topInclusive, l.fracBits)
		if inexact {
			signal = roundctl.SignalUnderflow | roundctl.SignalInexact
		}
		if !carry {
			return pack(cfg, sign, 0, frac), signal
		}
		// Rounded up into the smallest normal: stored exponent 1,
		// fraction zero.
		E, frac = 1, 0
	} else {
		var carry, inexact bool
		frac, carry, inexact = blocktriple.RoundWindow(sig, sticky, blocktriple.SigBits-2, l.fracBits)
		if inexact {
			signal = roundctl.SignalInexact
		}
		if carry {
			// The significand wrapped to 1.0 one binade up.
			E, frac = E+1, 0
			if E > l.usableMax {
				return overflowPattern(cfg, sign), roundctl.SignalOverflow | roundctl.SignalInexact
			}
		}
	}

	if cfg.HasSupernormals && sign && E == l.maxExpCode && frac == 0 {
		// This exact pattern is the configuration's single reserved
		// NaN; the nearest representable finite values sit one ULP to
		// either side, so take the same-band neighbour.
		frac = 1
		signal |= roundctl.SignalInexact
	}
	return pack(cfg, sign, E, frac), signal
}

func overflowPattern(cfg Config, sign bool) CFloat {
	if cfg.IsSaturating || cfg.HasSupernormals {
		return maxPattern(cfg, sign)
	}
	return infPattern(cfg, sign)
}

func nanPattern(cfg Config, signaling bool) CFloat {
	l := cfg.derived()
	if cfg.HasSupernormals {
		return pack(cfg, true, l.maxExpCode, 0)
	}
	return pack(cfg, signaling, l.maxExpCode, 1)
}

func infPattern(cfg Config, sign bool) CFloat {
	l := cfg.derived()
	return pack(cfg, sign, l.maxExpCode, 0)
}

func maxPattern(cfg Config, sign bool) CFloat {
	l := cfg.derived()
	fracMask := (uint64(1) << uint(l.fracBits)) - 1
	return pack(cfg, sign, l.usableMax, fracMask)
}

func minposPattern(cfg Config, sign bool) CFloat {
	if cfg.HasSubnormals {
		return pack(cfg, sign, 0, 1)
	}
	return pack(cfg, sign, 1, 0)
}

// Classification predicates.
func (f CFloat) IsZero() bool { return f.Decode().IsZero() }
func (f CFloat) IsInf() bool  { return f.Decode().IsInf() }
func (f CFloat) IsNaN() bool  { return f.Decode().IsNaN() }

// FromFloat64 converts a host double into the nearest representable value.
func FromFloat64(cfg Config, v float64) CFloat {
	switch {
	case math.IsNaN(v):
		return nanPattern(cfg, false)
	case math.IsInf(v, 1):
		return Encode(cfg, blocktriple.Inf(false))
	case math.IsInf(v, -1):
		return Encode(cfg, blocktriple.Inf(true))
	case v == 0:
		return pack(cfg, math.Signbit(v), 0, 0)
	}

	sign := v < 0
	mag := math.Abs(v)
	frac, exp := math.Frexp(mag) // mag = frac * 2^exp, frac in [0.5,1)
	mantissa := uint64(frac * (1 << 53))
	scale := exp - 1 // renormalize to [1,2)

	t := blocktriple.FromBits(sign, scale, mantissa, 53)
	return Encode(cfg, t)
}

// ToFloat64 converts the value to the nearest host double.
func (f CFloat) ToFloat64() float64 {
	t := f.Decode()
	switch {
	case t.IsNaN():
		return math.NaN()
	case t.IsInf():
		if t.Sign() {
			return math.Inf(-1)
		}
		return math.Inf(1)
	case t.IsZero():
		if t.Sign() {
			return math.Copysign(0, -1)
		}
		return 0
	}
	sig := t.Significand()
	v := 0.0
	for i := blocktriple.SigBits - 1; i >= 0; i-- {
		b, _ := sig.Get(i)
		v = v*2 + float64(b)
	}
	v *= math.Ldexp(1, t.Scale()-(blocktriple.SigBits-1))
	if t.Sign() {
		v = -v
	}
	return v
}
