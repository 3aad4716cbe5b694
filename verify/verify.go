// Package verify implements the self-verification harness: it
// enumerates every encoding of a configuration (or samples uniformly
// when the space is too large), computes each binary operation both in
// the target format and against a wider host-reference oracle, and
// aggregates mismatches into a structured Report. The configurations to
// check come from a declarative YAML matrix (see LoadMatrix).
package verify

import (
	"math/rand"
)

// Op names one of the verified binary operations.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

// Ops lists every verified binary operation, in reporting order.
var Ops = []Op{OpAdd, OpSub, OpMul, OpDiv}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	}
	return "?"
}

// reference computes the operation in the host's wider format.
func (op Op) reference(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	}
	return 0
}

// Number is the minimal view of one encoded value the harness needs:
// its raw bits for comparison, its host-float value for the oracle, and
// its classification so NaN==NaN counts as a match regardless of
// payload.
type Number interface {
	Bits() uint64
	ToFloat64() float64
	ToBinary() string
	IsNaN() bool
}

// System adapts one number-format configuration to the harness. The
// adapters in this package wrap cfloat, posit, and areal.
type System interface {
	Name() string
	NBits() int
	FromBits(raw uint64) Number
	FromFloat64(d float64) Number
	Apply(op Op, a, b Number) Number

	// Enumerable reports whether raw participates as an operand in
	// binary-operation verification. areal excludes ubit=1 patterns,
	// whose interval semantics have no single host-float oracle.
	Enumerable(raw uint64) bool

	// Canonical reports whether raw is expected to survive a
	// FromFloat64(ToFloat64(x)) round trip bit-exactly: it excludes
	// patterns that alias another value (subnormal patterns in a
	// configuration without subnormals, interval patterns).
	Canonical(raw uint64) bool
}

func (r *Report) record(sys System, op Op, a, b Number) {
	got := sys.Apply(op, a, b)
	want := sys.FromFloat64(op.reference(a.ToFloat64(), b.ToFloat64()))
	pass := got.Bits() == want.Bits() || (got.IsNaN() && want.IsNaN())
	r.add(Case{
		A:    a.ToBinary(),
		B:    b.ToBinary(),
		Op:   op.String(),
		Got:  got.ToBinary(),
		Want: want.ToBinary(),
		Pass: pass,
	})
}

// ExhaustiveBinary verifies op over every enumerable (a, b) pair of the
// system.
func ExhaustiveBinary(sys System, op Op) Report {
	r := Report{System: sys.Name(), Op: op.String(), Mode: "exhaustive"}
	count := uint64(1) << uint(sys.NBits())
	for i := uint64(0); i < count; i++ {
		if !sys.Enumerable(i) {
			continue
		}
		a := sys.FromBits(i)
		for j := uint64(0); j < count; j++ {
			if !sys.Enumerable(j) {
				continue
			}
			r.record(sys, op, a, sys.FromBits(j))
		}
	}
	return r
}

// RandomBinary verifies op over samples uniformly random (a, b) pairs.
// The same seed always yields the same pairs.
func RandomBinary(sys System, op Op, samples int, seed int64) Report {
	r := Report{System: sys.Name(), Op: op.String(), Mode: "random"}
	rng := rand.New(rand.NewSource(seed))
	mask := ^uint64(0)
	if sys.NBits() < 64 {
		mask = (uint64(1) << uint(sys.NBits())) - 1
	}
	for r.Total < samples {
		i := rng.Uint64() & mask
		j := rng.Uint64() & mask
		if !sys.Enumerable(i) || !sys.Enumerable(j) {
			continue
		}
		r.record(sys, op, sys.FromBits(i), sys.FromBits(j))
	}
	return r
}

// ExhaustiveConversion verifies that every canonical encoding survives a
// FromFloat64(ToFloat64(x)) round trip bit-exactly (NaN payloads are
// matched by classification).
func ExhaustiveConversion(sys System) Report {
	r := Report{System: sys.Name(), Op: "roundtrip", Mode: "exhaustive"}
	count := uint64(1) << uint(sys.NBits())
	for i := uint64(0); i < count; i++ {
		if !sys.Canonical(i) {
			continue
		}
		x := sys.FromBits(i)
		back := sys.FromFloat64(x.ToFloat64())
		pass := back.Bits() == x.Bits() || (back.IsNaN() && x.IsNaN())
		r.add(Case{
			A:    x.ToBinary(),
			Op:   "roundtrip",
			Got:  back.ToBinary(),
			Want: x.ToBinary(),
			Pass: pass,
		})
	}
	return r
}
