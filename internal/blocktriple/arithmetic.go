package blocktriple

import "github.com/unisim/universal/internal/blockbinary"

// Add returns a+b. NaN propagation, infinity arithmetic, and signed-zero
// rules are resolved here, uniformly across cfloat/posit/areal; only the
// final re-encoding (saturate vs. infinity vs. NaR) is format-specific.
func Add(a, b BlockTriple) BlockTriple {
	switch {
	case a.tag == TagNaN:
		return a
	case b.tag == TagNaN:
		return b
	case a.tag == TagInf && b.tag == TagInf:
		if a.sign == b.sign {
			return Inf(a.sign)
		}
		return NaN(false)
	case a.tag == TagInf:
		return Inf(a.sign)
	case b.tag == TagInf:
		return Inf(b.sign)
	case a.tag == TagZero && b.tag == TagZero:
		// +0 + -0 = +0 under round-to-nearest-even; -0 + -0 = -0.
		return Zero(a.sign && b.sign)
	case a.tag == TagZero:
		return b
	case b.tag == TagZero:
		return a
	}
	return addNormal(a, b)
}

// Sub returns a-b.
func Sub(a, b BlockTriple) BlockTriple {
	return Add(a, b.Neg())
}

func addNormal(a, b BlockTriple) BlockTriple {
	hi, lo := a, b
	if lo.scale > hi.scale {
		hi, lo = lo, hi
	}
	diff := hi.scale - lo.scale
	loSig, dropped := shiftRightSticky(lo.sig, diff)
	sticky := dropped || hi.sticky || lo.sticky

	var resSig blockbinary.BlockBinary[uint64]
	var resSign bool
	scale := hi.scale

	if hi.sign == lo.sign {
		resSig = hi.sig.Add(loSig)
		resSign = hi.sign
		// Both operands are normalized with their leading 1 at SigBits-1,
		// so their sum can carry at most one bit into the guard region at
		// SigBits; FieldBits' extra headroom keeps this from colliding
		// with blockbinary's sign bit.
		if carry, _ := resSig.Get(SigBits); carry == 1 {
			resSig, sticky = renormalizeCarry(resSig, &scale, sticky)
		}
	} else {
		cmp := hi.sig.Cmp(loSig)
		switch {
		case cmp == 0:
			return Zero(false)
		case cmp > 0:
			resSig = hi.sig.Sub(loSig)
			resSign = hi.sign
		default:
			resSig = loSig.Sub(hi.sig)
			resSign = lo.sign
		}
		lead := leadingBit(resSig)
		shift := (SigBits - 1) - lead
		resSig = resSig.ShiftLeft(shift)
		scale -= shift
	}

	return NewNormal(resSign, scale, resSig, sticky)
}

// renormalizeCarry folds a one-bit carry out of the normalized window (bit
// SigBits) back into the leading position by shifting right one place,
// preserving any bit shifted out as sticky, and bumps scale to compensate.
func renormalizeCarry(sig blockbinary.BlockBinary[uint64], scale *int, sticky bool) (blockbinary.BlockBinary[uint64], bool) {
	shifted, dropped := shiftRightSticky(sig, 1)
	*scale++
	return shifted, sticky || dropped
}

// Mul returns a*b.
func Mul(a, b BlockTriple) BlockTriple {
	switch {
	case a.tag == TagNaN:
		return a
	case b.tag == TagNaN:
		return b
	case a.tag == TagInf || b.tag == TagInf:
		if (a.tag == TagInf && b.tag == TagZero) || (b.tag == TagInf && a.tag == TagZero) {
			return NaN(false)
		}
		return Inf(a.sign != b.sign)
	case a.tag == TagZero || b.tag == TagZero:
		return Zero(a.sign != b.sign)
	}

	// Both significands are normalized fixed-point values in [1,2) scaled
	// by 2^(SigBits-1); widen into a field with enough headroom to hold
	// the full, untruncated product before renormalizing.
	full := widen(a.sig, WideBits).Mul(widen(b.sig, WideBits))
	scaleOffset := a.scale + b.scale - 2*(SigBits-1)
	sig, scale, sticky := normalizeProduct(full, false, scaleOffset)
	return NewNormal(a.sign != b.sign, scale, sig, sticky)
}

// Div returns a/b.
func Div(a, b BlockTriple) BlockTriple {
	switch {
	case a.tag == TagNaN:
		return a
	case b.tag == TagNaN:
		return b
	case a.tag == TagInf && b.tag == TagInf:
		return NaN(false)
	case a.tag == TagInf:
		return Inf(a.sign != b.sign)
	case b.tag == TagInf:
		return Zero(a.sign != b.sign)
	case a.tag == TagZero && b.tag == TagZero:
		return NaN(false)
	case b.tag == TagZero:
		return Inf(a.sign != b.sign)
	case a.tag == TagZero:
		return Zero(a.sign != b.sign)
	}

	dividend := widen(a.sig, WideBits).ShiftLeft(SigBits)
	divisor := widen(b.sig, WideBits)
	quotient, err := dividend.Div(divisor)
	if err != nil {
		// b.sig is nonzero for a normal triple; this path is unreachable.
		return NaN(false)
	}
	remainder, _ := dividend.Mod(divisor)

	scaleOffset := a.scale - b.scale - SigBits
	sig, scale, sticky := normalizeProduct(quotient, !remainder.IsZero(), scaleOffset)
	return NewNormal(a.sign != b.sign, scale, sig, sticky)
}

// Sqrt returns the square root of a. Sqrt of a negative finite returns a
// quiet NaN.
func Sqrt(a BlockTriple) BlockTriple {
	switch {
	case a.tag == TagNaN:
		return a
	case a.tag == TagZero:
		return a
	case a.tag == TagInf:
		if a.sign {
			return NaN(false)
		}
		return Inf(false)
	case a.sign:
		return NaN(false)
	}

	// value = 2^scale * (sig / 2^(SigBits-1)); fold in one extra factor of
	// two when scale is odd so the radicand always sits at an even power.
	wide := widen(a.sig, WideBits)
	scale := a.scale
	if scale%2 != 0 {
		wide = wide.ShiftLeft(1)
		scale--
	}
	target := wide.ShiftLeft(SigBits - 1)

	root := isqrt(target)
	sq := root.Mul(root)
	sticky := sq.Cmp(target) != 0

	scaleOffset := scale/2 - (SigBits - 1)
	sig, resultScale, dropped := normalizeProduct(root, sticky, scaleOffset)
	return NewNormal(false, resultScale, sig, sticky || dropped)
}

// isqrt returns floor(sqrt(target)) via binary search. target and the
// returned root are both WideBits wide; the search range comfortably
// covers any root produced by Sqrt's SigBits-scaled radicands.
func isqrt(target blockbinary.BlockBinary[uint64]) blockbinary.BlockBinary[uint64] {
	const searchBits = SigBits + 8
	width := target.NBits()
	one := blockbinary.FromUint64[uint64](width, 1)
	lo := blockbinary.New[uint64](width)
	hi := blockbinary.FromUint64[uint64](width, 1).ShiftLeft(searchBits)
	result := blockbinary.New[uint64](width)

	for lo.Cmp(hi) <= 0 {
		mid := lo.Add(hi.Sub(lo).ShiftRightLogical(1))
		sq := mid.Mul(mid)
		if sq.Cmp(target) <= 0 {
			result = mid
			lo = mid.Add(one)
		} else {
			if mid.IsZero() {
				break
			}
			hi = mid.Sub(one)
		}
	}
	return result
}
