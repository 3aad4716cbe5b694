package blockbinary

import "github.com/unisim/universal/internal/errs"

// Add returns a+b, wrapping silently within nbits on overflow.
func (a BlockBinary[BT]) Add(b BlockBinary[BT]) BlockBinary[BT] {
	requireSameWidth(a, b)
	out := New[BT](a.nbits)
	var carry BT
	for i := range a.limbs {
		sum := a.limbs[i] + b.limbs[i]
		c1 := sum < a.limbs[i]
		sum2 := sum + carry
		c2 := sum2 < sum
		out.limbs[i] = sum2
		if c1 || c2 {
			carry = 1
		} else {
			carry = 0
		}
	}
	out.mask()
	return out
}

// Negate returns the two's-complement negation of a.
func (a BlockBinary[BT]) Negate() BlockBinary[BT] {
	out := New[BT](a.nbits)
	var carry BT = 1
	for i := range a.limbs {
		inv := ^a.limbs[i]
		sum := inv + carry
		if sum < inv {
			carry = 1
		} else {
			carry = 0
		}
		out.limbs[i] = sum
	}
	out.mask()
	return out
}

// Sub returns a-b, wrapping silently within nbits on overflow.
func (a BlockBinary[BT]) Sub(b BlockBinary[BT]) BlockBinary[BT] {
	requireSameWidth(a, b)
	return a.Add(b.Negate())
}

// absMagnitude returns the unsigned magnitude limbs of a (little-endian)
// and whether a was negative.
func (a BlockBinary[BT]) absMagnitude() ([]BT, bool) {
	if a.SignBit() {
		neg := a.Negate()
		return neg.limbs, true
	}
	out := make([]BT, len(a.limbs))
	copy(out, a.limbs)
	return out, false
}

func mulLimb[BT Unsigned](x, y BT) (hi, lo BT) {
	w := limbWidth[BT]()
	h := uint(w / 2)
	mask := (BT(1) << h) - 1

	xlo, xhi := x&mask, x>>h
	ylo, yhi := y&mask, y>>h

	t0 := xlo * ylo
	t1 := xlo * yhi
	t2 := xhi * ylo
	t3 := xhi * yhi

	mid := t1 + t2
	var midCarry BT
	if mid < t1 {
		midCarry = 1
	}

	loPart := mid << h
	sumLo := t0 + loPart
	var loCarry BT
	if sumLo < t0 {
		loCarry = 1
	}

	hi = t3 + (mid >> h) + (midCarry << h) + loCarry
	lo = sumLo
	return hi, lo
}

// unsignedMul computes the full schoolbook product of two little-endian
// magnitude limb slices, returned in a slice with len(a)+len(b) limbs.
func unsignedMul[BT Unsigned](a, b []BT) []BT {
	out := make([]BT, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		var carry BT
		for j, bj := range b {
			hi, lo := mulLimb(ai, bj)
			sum := out[i+j] + lo
			c1 := sum < out[i+j]
			sum2 := sum + carry
			c2 := sum2 < sum
			out[i+j] = sum2
			var nextCarry BT
			if c1 || c2 {
				nextCarry = 1
			}
			carry = hi + nextCarry
		}
		k := i + len(b)
		for carry != 0 {
			sum := out[k] + carry
			if sum < out[k] {
				carry = 1
			} else {
				carry = 0
			}
			out[k] = sum
			k++
		}
	}
	return out
}

// unsignedCompare compares two equal-length little-endian magnitude slices.
func unsignedCompare[BT Unsigned](a, b []BT) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// unsignedSub computes a-b for a >= b, equal-length little-endian slices.
func unsignedSub[BT Unsigned](a, b []BT) []BT {
	out := make([]BT, len(a))
	var borrow BT
	for i := range a {
		d := a[i] - b[i]
		b1 := a[i] < b[i]
		d2 := d - borrow
		b2 := d < borrow
		out[i] = d2
		if b1 || b2 {
			borrow = 1
		} else {
			borrow = 0
		}
	}
	return out
}

// unsignedShiftLeft1 shifts a left by one bit, returning the bit shifted
// out of the top limb.
func unsignedShiftLeft1[BT Unsigned](a []BT) ([]BT, BT) {
	w := limbWidth[BT]()
	out := make([]BT, len(a))
	var carry BT
	for i := range a {
		next := a[i] >> uint(w-1)
		out[i] = (a[i] << 1) | carry
		carry = next
	}
	return out, carry
}

// unsignedOr1 sets bit 0 of a.
func unsignedOr1[BT Unsigned](a []BT) {
	if len(a) > 0 {
		a[0] |= 1
	}
}

// unsignedDivMod performs bit-serial restoring long division of two
// little-endian magnitude slices of equal length.
func unsignedDivMod[BT Unsigned](dividend, divisor []BT) (quotient, remainder []BT) {
	w := limbWidth[BT]()
	nbits := len(dividend) * w

	quotient = make([]BT, len(dividend))
	remainder = make([]BT, len(dividend))

	for i := nbits - 1; i >= 0; i-- {
		remainder, _ = unsignedShiftLeft1(remainder)
		limb, bit := i/w, uint(i%w)
		if (dividend[limb]>>bit)&1 == 1 {
			unsignedOr1(remainder)
		}
		if unsignedCompare(remainder, divisor) >= 0 {
			remainder = unsignedSub(remainder, divisor)
			qlimb, qbit := i/w, uint(i%w)
			quotient[qlimb] |= BT(1) << qbit
		}
	}
	return quotient, remainder
}

func packMagnitude[BT Unsigned](nbits int, mag []BT, neg bool) BlockBinary[BT] {
	out := New[BT](nbits)
	copy(out.limbs, mag)
	out.mask()
	if neg {
		out = out.Negate()
	}
	return out
}

// Mul returns the schoolbook product of a and b truncated to nbits bits.
func (a BlockBinary[BT]) Mul(b BlockBinary[BT]) BlockBinary[BT] {
	requireSameWidth(a, b)
	am, aneg := a.absMagnitude()
	bm, bneg := b.absMagnitude()
	full := unsignedMul(am, bm)
	return packMagnitude(a.nbits, full[:len(a.limbs)], aneg != bneg)
}

// Div returns a/b truncated toward zero. Division by zero returns
// errs.DivideByZero.
func (a BlockBinary[BT]) Div(b BlockBinary[BT]) (BlockBinary[BT], error) {
	requireSameWidth(a, b)
	if b.IsZero() {
		return BlockBinary[BT]{}, errs.DivideByZero()
	}
	am, aneg := a.absMagnitude()
	bm, bneg := b.absMagnitude()
	q, _ := unsignedDivMod(am, bm)
	return packMagnitude(a.nbits, q, aneg != bneg), nil
}

// Mod returns a%b with the sign of a (truncating division remainder).
// Division by zero returns errs.DivideByZero.
func (a BlockBinary[BT]) Mod(b BlockBinary[BT]) (BlockBinary[BT], error) {
	requireSameWidth(a, b)
	if b.IsZero() {
		return BlockBinary[BT]{}, errs.DivideByZero()
	}
	am, aneg := a.absMagnitude()
	bm, _ := b.absMagnitude()
	_, r := unsignedDivMod(am, bm)
	return packMagnitude(a.nbits, r, aneg), nil
}
