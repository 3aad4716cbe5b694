package blocktriple

// RoundWindow extracts fracBits bits ending at position topInclusive
// (inclusive) of sig, i.e. bits [topInclusive-fracBits+1, topInclusive],
// as the stored fraction, applying round-to-nearest-even on the
// discarded tail (the next bit down is the guard bit; everything below
// that, OR'd with the caller-supplied sticky, is the sticky bit). It is
// the single rounding primitive every encoding layer's re-encode path
// uses, whether topInclusive sits just below an implicit leading 1
// (the normal-number case) or at the significand's very top bit (the
// subnormal case, where no bit is implicit).
//
// carryOut reports whether rounding overflowed the window (frac wrapped
// from all-ones to zero), meaning the caller must carry one into
// whatever sits above topInclusive (the implicit bit for a normal
// number, or the exponent field for a subnormal rounding up to the
// smallest normal). inexact reports whether any discarded bit, or the
// caller-supplied sticky, was nonzero: the rounded fraction is not the
// exact value of sig. Context-aware callers surface it as a signal.
func RoundWindow(sig bitReader, sticky bool, topInclusive, fracBits int) (frac uint64, carryOut, inexact bool) {
	if fracBits <= 0 {
		guard := getBit(sig, topInclusive)
		rest := stickyBelow(sig, topInclusive)
		inexact = guard == 1 || sticky || rest
		if guard == 1 && (sticky || rest) {
			return 0, true, inexact
		}
		// tie at fracBits==0: "even" is 0, never round up.
		return 0, false, inexact
	}

	for i := 0; i < fracBits; i++ {
		pos := topInclusive - i
		b := getBit(sig, pos)
		frac |= uint64(b) << uint(fracBits-1-i)
	}

	guardPos := topInclusive - fracBits
	guard := getBit(sig, guardPos)
	roundSticky := sticky || stickyBelow(sig, guardPos)
	inexact = guard == 1 || roundSticky

	roundUp := false
	if guard == 1 {
		if roundSticky {
			roundUp = true
		} else if frac&1 == 1 {
			roundUp = true
		}
	}

	if roundUp {
		frac++
		if frac == uint64(1)<<uint(fracBits) {
			frac = 0
			carryOut = true
		}
	}
	return frac, carryOut, inexact
}

// TruncateWindow extracts fracBits bits ending at position topInclusive
// of sig, exactly like RoundWindow's window selection, but truncates
// (rounds toward zero) instead of rounding to nearest-even: it never
// carries. exact reports whether every bit below the window, and the
// caller-supplied sticky, is zero, i.e. whether the truncated value is
// the precise value of sig rather than its floor. areal uses this to
// decide ubit: exact means ubit=0, !exact means the window holds the
// lower-magnitude neighbour and ubit=1.
func TruncateWindow(sig bitReader, sticky bool, topInclusive, fracBits int) (frac uint64, exact bool) {
	if fracBits <= 0 {
		return 0, !sticky && !stickyBelow(sig, topInclusive+1)
	}
	for i := 0; i < fracBits; i++ {
		pos := topInclusive - i
		b := getBit(sig, pos)
		frac |= uint64(b) << uint(fracBits-1-i)
	}
	remPos := topInclusive - fracBits + 1
	exact = !sticky && !stickyBelow(sig, remPos)
	return frac, exact
}

// bitReader is satisfied by blockbinary.BlockBinary[uint64]; kept narrow
// so RoundWindow only depends on bit access, not the full arithmetic API.
type bitReader interface {
	Get(i int) (uint, error)
}

func getBit(sig bitReader, pos int) uint {
	if pos < 0 {
		return 0
	}
	b, err := sig.Get(pos)
	if err != nil {
		return 0
	}
	return b
}

func stickyBelow(sig bitReader, pos int) bool {
	for i := 0; i < pos; i++ {
		if getBit(sig, i) == 1 {
			return true
		}
	}
	return false
}
