// Package blocktriple implements the internal (sign, scale, significand)
// working value that every encoding layer's arithmetic kernel rounds
// trips through: decode to a BlockTriple, operate, round back to an
// encoding. Every BlockTriple operation is exact; rounding happens only
// when an encoding layer re-encodes the result (see each encoding
// package's Encode).
package blocktriple

import "github.com/unisim/universal/internal/blockbinary"

// SigBits is the significand width: a normalized significand's leading 1
// sits at bit SigBits-1. It is at least the minimum correctly-rounded
// adder width (imath.MinAdderWidth) of every cfloat/areal configuration
// this module supports (nbits <= 64).
const SigBits = 128

// FieldBits is the storage width of the underlying blockbinary. It keeps
// several guard bits above SigBits-1 so that blockbinary.Cmp/Add (which
// are signed, two's-complement operations) never misread the normalized
// leading 1, always present at bit SigBits-1, as a sign bit.
const FieldBits = SigBits + 8

// WideBits is the scratch width used for products/quotients/sqrt targets
// before they are renormalized back down to SigBits of precision.
const WideBits = 2*FieldBits + 16

// Tag classifies a BlockTriple's state.
type Tag uint8

const (
	TagZero Tag = iota
	TagInf
	TagNaN
	TagNormal
)

// BlockTriple is the sign/scale/significand working value. When Tag is
// TagNormal, Significand is normalized with bit SigBits-1 set to 1.
type BlockTriple struct {
	sign   bool
	scale  int
	sig    blockbinary.BlockBinary[uint64]
	sticky bool
	tag    Tag
	snan   bool
}

// Zero returns a signed zero.
func Zero(sign bool) BlockTriple {
	return BlockTriple{sign: sign, tag: TagZero}
}

// Inf returns a signed infinity.
func Inf(sign bool) BlockTriple {
	return BlockTriple{sign: sign, tag: TagInf}
}

// NaN returns a quiet or signaling NaN.
func NaN(signaling bool) BlockTriple {
	return BlockTriple{tag: TagNaN, snan: signaling}
}

// NewNormal builds a normal BlockTriple from a sign, unbiased scale, and a
// FieldBits-wide significand normalized so bit SigBits-1 is set. sticky
// records whether any 1-bits were already discarded below the field
// (e.g. by a caller-side alignment shift).
func NewNormal(sign bool, scale int, sig blockbinary.BlockBinary[uint64], sticky bool) BlockTriple {
	if sig.IsZero() {
		return Zero(sign)
	}
	return BlockTriple{sign: sign, scale: scale, sig: sig, sticky: sticky, tag: TagNormal}
}

func (t BlockTriple) Sign() bool                                   { return t.sign }
func (t BlockTriple) Scale() int                                   { return t.scale }
func (t BlockTriple) Significand() blockbinary.BlockBinary[uint64] { return t.sig }
func (t BlockTriple) Sticky() bool                                 { return t.sticky }
func (t BlockTriple) Tag() Tag                                     { return t.tag }
func (t BlockTriple) IsSignaling() bool                            { return t.tag == TagNaN && t.snan }
func (t BlockTriple) IsZero() bool                                 { return t.tag == TagZero }
func (t BlockTriple) IsInf() bool                                  { return t.tag == TagInf }
func (t BlockTriple) IsNaN() bool                                  { return t.tag == TagNaN }
func (t BlockTriple) IsNormal() bool                               { return t.tag == TagNormal }

// Neg returns the negation, leaving magnitude and classification intact.
func (t BlockTriple) Neg() BlockTriple {
	t.sign = !t.sign
	return t
}

// FromBits packs a raw significand value (right-aligned, width bits wide,
// width <= SigBits) into a FieldBits-wide buffer normalized so that its
// leading 1 sits at bit SigBits-1, returning the adjusted scale. This is
// the entry point encoding layers use when decoding a finite pattern into
// a BlockTriple; it transparently absorbs subnormal significands (whose
// leading 1 is not already at the top of the field) by reducing scale by
// the number of leading zeros found.
func FromBits(sign bool, scale int, raw uint64, width int) BlockTriple {
	if raw == 0 {
		return Zero(sign)
	}
	sig := blockbinary.FromUint64[uint64](FieldBits, raw)
	sig = sig.ShiftLeft(SigBits - width)
	lead := leadingBit(sig)
	norm := (SigBits - 1) - lead
	sig = sig.ShiftLeft(norm)
	return NewNormal(sign, scale-norm, sig, false)
}

func leadingBit(sig blockbinary.BlockBinary[uint64]) int {
	for i := sig.NBits() - 1; i >= 0; i-- {
		if b, _ := sig.Get(i); b == 1 {
			return i
		}
	}
	return -1
}

func widen(sig blockbinary.BlockBinary[uint64], newWidth int) blockbinary.BlockBinary[uint64] {
	out := blockbinary.New[uint64](newWidth)
	for i := 0; i < sig.NBits(); i++ {
		b, _ := sig.Get(i)
		if b == 1 {
			_ = out.Set(i, 1)
		}
	}
	return out
}

func narrow(sig blockbinary.BlockBinary[uint64], newWidth int) blockbinary.BlockBinary[uint64] {
	out := blockbinary.New[uint64](newWidth)
	for i := 0; i < newWidth; i++ {
		b, _ := sig.Get(i)
		if b == 1 {
			_ = out.Set(i, 1)
		}
	}
	return out
}

// shiftRightSticky shifts sig right by n bits (logical, unsigned), folding
// every bit shifted out into a single sticky flag. n may be zero or
// negative, in which case sig is returned unchanged.
func shiftRightSticky(sig blockbinary.BlockBinary[uint64], n int) (blockbinary.BlockBinary[uint64], bool) {
	if n <= 0 {
		return sig, false
	}
	if n >= sig.NBits() {
		return blockbinary.New[uint64](sig.NBits()), !sig.IsZero()
	}
	sticky := false
	for i := 0; i < n; i++ {
		if b, _ := sig.Get(i); b == 1 {
			sticky = true
			break
		}
	}
	return sig.ShiftRightLogical(n), sticky
}

// ShiftRightSticky is the exported entry point encoding layers use to
// align a significand by n bits (e.g. demoting a normal value into
// subnormal range) while preserving every discarded bit as sticky.
func ShiftRightSticky(sig blockbinary.BlockBinary[uint64], n int) (blockbinary.BlockBinary[uint64], bool) {
	return shiftRightSticky(sig, n)
}

// normalizeProduct renormalizes a wide intermediate (product, quotient, or
// sqrt root) so its leading 1 sits at bit SigBits-1 of a FieldBits-wide
// result, folding any bits shifted out into sticky, and derives the final
// scale from scaleOffset + the intermediate's leading-bit position.
func normalizeProduct(raw blockbinary.BlockBinary[uint64], rawSticky bool, scaleOffset int) (blockbinary.BlockBinary[uint64], int, bool) {
	lead := leadingBit(raw)
	if lead < 0 {
		return blockbinary.New[uint64](FieldBits), 0, rawSticky
	}
	shift := lead - (SigBits - 1)
	if shift >= 0 {
		s, dropped := shiftRightSticky(raw, shift)
		return narrow(s, FieldBits), scaleOffset + lead, rawSticky || dropped
	}
	s := raw.ShiftLeft(-shift)
	return narrow(s, FieldBits), scaleOffset + lead, rawSticky
}
