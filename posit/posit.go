package posit

import (
	"math"

	"github.com/unisim/universal/internal/blockbinary"
	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/roundctl"
)

// Posit is one encoded value of a given Config.
type Posit struct {
	cfg Config
	raw uint64
}

// New returns the zero value of the given configuration, validating it.
func New(cfg Config) (Posit, error) {
	if err := cfg.Validate(); err != nil {
		return Posit{}, err
	}
	return Posit{cfg: cfg}, nil
}

// Config returns the value's configuration.
func (p Posit) Config() Config { return p.cfg }

func (p Posit) mask() uint64 {
	if p.cfg.NBits == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(p.cfg.NBits)) - 1
}

// SetBits overwrites the raw encoding directly, masking to nbits.
func (p Posit) SetBits(raw uint64) Posit {
	p.raw = raw & p.mask()
	return p
}

// Bits returns the raw nbits-wide encoding.
func (p Posit) Bits() uint64 { return p.raw }

// IsZero reports the all-zero encoding, one of the two exceptional
// posit patterns.
func (p Posit) IsZero() bool { return p.raw == 0 }

// IsNaR reports the sole `1` followed by zeros pattern.
func (p Posit) IsNaR() bool { return p.raw == uint64(1)<<uint(p.cfg.NBits-1) }

func narPattern(cfg Config) Posit {
	return Posit{cfg: cfg, raw: uint64(1) << uint(cfg.NBits-1)}
}

// Decode classifies the raw pattern and produces the blocktriple working
// value it represents.
func (p Posit) Decode() blocktriple.BlockTriple {
	if p.IsZero() {
		return blocktriple.Zero(false)
	}
	if p.IsNaR() {
		return blocktriple.NaN(false)
	}

	n := p.cfg.NBits
	es := p.cfg.Es
	sign := (p.raw>>uint(n-1))&1 == 1

	// 2's-complement-negate the whole word when sign is 1; this maps a
	// negative posit back onto the positive posit's
	// regime/exponent/fraction shape.
	bits := p.raw
	if sign {
		bits = (^bits + 1) & p.mask()
	}

	pos := n - 2
	first := (bits >> uint(pos)) & 1
	count := 0
	for pos >= 0 && (bits>>uint(pos))&1 == first {
		count++
		pos--
	}
	var k int
	if first == 1 {
		k = count - 1
	} else {
		k = -count
	}
	// pos now indexes the terminating (opposite) bit if one was found
	// (pos >= 0), or sits at -1 if the regime consumed every remaining
	// bit with no terminator (the maxpos/minpos shape).
	cursor := pos - 1 // highest bit still available for the exponent field

	eBitsAvail := cursor + 1
	eWidth := es
	if eWidth > eBitsAvail {
		eWidth = eBitsAvail
	}
	if eWidth < 0 {
		eWidth = 0
	}
	var e int
	if eWidth > 0 {
		e = int((bits >> uint(cursor-eWidth+1)) & ((uint64(1) << uint(eWidth)) - 1))
	}
	e <<= uint(es - eWidth) // truncated exponent fields read as zero-padded
	cursor -= eWidth

	fracBits := cursor + 1
	if fracBits < 0 {
		fracBits = 0
	}
	var fracField uint64
	if fracBits > 0 {
		fracField = bits & ((uint64(1) << uint(fracBits)) - 1)
	}

	scale := k*(1<<uint(es)) + e
	sig := (uint64(1) << uint(fracBits)) | fracField
	return blocktriple.FromBits(sign, scale, sig, fracBits+1)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// buildCombined packs the es-bit exponent value e above the SigBits-1
// fraction bits of sig into one wide field, so encode can apply a single
// round-to-nearest-even pass across the exponent/fraction boundary
// exactly like cfloat's RoundWindow does across the fraction alone.
func buildCombined(e, es int, sig blockbinary.BlockBinary[uint64]) blockbinary.BlockBinary[uint64] {
	fracW := blocktriple.SigBits - 1
	out := blockbinary.New[uint64](es + fracW)
	for i := 0; i < fracW; i++ {
		if b, _ := sig.Get(i); b == 1 {
			_ = out.Set(i, 1)
		}
	}
	for i := 0; i < es; i++ {
		if (e>>uint(i))&1 == 1 {
			_ = out.Set(fracW+i, 1)
		}
	}
	return out
}

// Encode rounds a blocktriple value to the nearest representable posit
// pattern of this configuration, round-to-nearest-even over the
// combined exponent+fraction tail. Overflow saturates to
// maxpos/maxneg and underflow clamps to minpos/minneg: arithmetic
// never produces NaR and never flushes a nonzero value to zero.
func Encode(cfg Config, t blocktriple.BlockTriple) Posit {
	v, _ := encode(cfg, t)
	return v
}

// fracIsZero reports whether every significand bit below the
// normalized leading 1 is zero.
func fracIsZero(sig blockbinary.BlockBinary[uint64]) bool {
	for i := 0; i < blocktriple.SigBits-1; i++ {
		if b, _ := sig.Get(i); b == 1 {
			return false
		}
	}
	return true
}

// encode additionally reports the signals the rounding incurred
// (inexact, saturation as overflow/underflow, invalid operation), for
// Context-aware callers; Encode discards them.
func encode(cfg Config, t blocktriple.BlockTriple) (Posit, roundctl.Signal) {
	if t.IsNaN() || t.IsInf() {
		return narPattern(cfg), roundctl.SignalInvalidOperation
	}
	if t.IsZero() {
		return Posit{cfg: cfg}, roundctl.SignalClear
	}

	n := cfg.NBits
	es := cfg.Es
	avail := n - 1
	shiftEs := 1 << uint(es)
	sign := t.Sign()
	scale := t.Scale()
	sig := t.Significand()
	sticky := t.Sticky()
	lossy := false

	for attempt := 0; attempt < 4; attempt++ {
		k := floorDiv(scale, shiftEs)
		e := scale - k*shiftEs

		regimeOnes := k >= 0
		runLen := k + 1
		if !regimeOnes {
			runLen = -k
		}
		maxOnesRun := avail
		maxZerosRun := avail - 1
		clamped := false
		if regimeOnes && runLen > maxOnesRun {
			runLen = maxOnesRun
			clamped = true
		}
		if !regimeOnes && runLen > maxZerosRun {
			runLen = maxZerosRun
			clamped = true
		}
		hasTerm := runLen < avail

		if clamped || !hasTerm {
			p := packPosit(cfg, sign, regimeOnes, runLen, hasTerm, 0, 0)
			if clamped {
				if regimeOnes {
					return p, roundctl.SignalOverflow | roundctl.SignalInexact
				}
				return p, roundctl.SignalUnderflow | roundctl.SignalInexact
			}
			// The regime fills the word: the pattern is maxpos, exact
			// only when nothing beyond the regime was discarded.
			if lossy || sticky || e != 0 || !fracIsZero(sig) {
				return p, roundctl.SignalOverflow | roundctl.SignalInexact
			}
			return p, roundctl.SignalClear
		}

		tailWidth := avail - runLen - 1
		if tailWidth == 0 {
			// The exponent and fraction are discarded entirely; round on
			// them as one tail, with the pattern's own low bit (the
			// regime terminator) as the tie-breaking LSB.
			p := packPosit(cfg, false, regimeOnes, runLen, true, 0, 0)
			combined := buildCombined(e, es, sig)
			top := combined.NBits() - 1
			guard, _ := combined.Get(top)
			rest := sticky
			for i := 0; !rest && i < top; i++ {
				b, _ := combined.Get(i)
				rest = b == 1
			}
			if guard == 1 && (rest || p.raw&1 == 1) {
				// Next pattern up in encoded order; never reaches NaR,
				// since maxpos took the untailed no-terminator branch
				// above.
				p.raw++
			}
			if sign {
				p.raw = (^p.raw + 1) & p.mask()
			}
			if lossy || guard == 1 || rest {
				return p, roundctl.SignalInexact
			}
			return p, roundctl.SignalClear
		}

		combined := buildCombined(e, es, sig)
		kept, carry, inexact := blocktriple.RoundWindow(combined, sticky, combined.NBits()-1, tailWidth)
		if carry {
			// The rounded tail wrapped past the exponent field: the
			// significand becomes 1.0 at the next regime boundary.
			scale = (k + 1) * shiftEs
			sig = blocktriple.FromBits(false, 0, 1, 1).Significand()
			sticky = false
			lossy = true
			continue
		}
		p := packPosit(cfg, sign, regimeOnes, runLen, true, kept, tailWidth)
		if lossy || inexact {
			return p, roundctl.SignalInexact
		}
		return p, roundctl.SignalClear
	}
	return maxPattern(cfg, sign), roundctl.SignalOverflow | roundctl.SignalInexact
}

func packPosit(cfg Config, sign, regimeOnes bool, runLen int, hasTerm bool, tail uint64, tailWidth int) Posit {
	n := cfg.NBits
	avail := n - 1
	var mag uint64
	pos := avail - 1
	var regBit uint64
	if regimeOnes {
		regBit = 1
	}
	for i := 0; i < runLen; i++ {
		if regBit == 1 {
			mag |= uint64(1) << uint(pos)
		}
		pos--
	}
	if hasTerm {
		if regBit == 0 {
			mag |= uint64(1) << uint(pos)
		}
		pos--
	}
	if tailWidth > 0 {
		mag |= (tail & ((uint64(1) << uint(tailWidth)) - 1)) << uint(pos-tailWidth+1)
	}

	p := Posit{cfg: cfg, raw: mag}
	if sign {
		p.raw = (^p.raw + 1) & p.mask()
	}
	return p
}

func maxPattern(cfg Config, sign bool) Posit {
	return packPosit(cfg, sign, true, cfg.NBits-1, false, 0, 0)
}

func minposPattern(cfg Config, sign bool) Posit {
	return packPosit(cfg, sign, false, cfg.NBits-2, true, 0, 0)
}

// Classification predicates.
func (p Posit) IsSpecial() bool { return p.IsZero() || p.IsNaR() }

// FromFloat64 converts a host double into the nearest representable
// posit value.
func FromFloat64(cfg Config, v float64) Posit {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return narPattern(cfg)
	case v == 0:
		return Posit{cfg: cfg}
	}

	sign := v < 0
	mag := math.Abs(v)
	frac, exp := math.Frexp(mag)
	mantissa := uint64(frac * (1 << 53))
	scale := exp - 1

	t := blocktriple.FromBits(sign, scale, mantissa, 53)
	return Encode(cfg, t)
}

// ToFloat64 converts the value to the nearest host double.
func (p Posit) ToFloat64() float64 {
	if p.IsZero() {
		return 0
	}
	if p.IsNaR() {
		return math.NaN()
	}
	t := p.Decode()
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
