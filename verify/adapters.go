package verify

import (
	"fmt"

	"github.com/unisim/universal/areal"
	"github.com/unisim/universal/cfloat"
	"github.com/unisim/universal/posit"
)

// ForCFloat adapts a cfloat configuration to the harness.
func ForCFloat(cfg cfloat.Config) (System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfloatSystem{cfg: cfg}, nil
}

// ForPosit adapts a posit configuration to the harness.
func ForPosit(cfg posit.Config) (System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return positSystem{cfg: cfg}, nil
}

// ForAreal adapts an areal configuration to the harness.
func ForAreal(cfg areal.Config) (System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return arealSystem{cfg: cfg}, nil
}

type cfloatNumber struct{ v cfloat.CFloat }

func (n cfloatNumber) Bits() uint64       { return n.v.Bits() }
func (n cfloatNumber) ToFloat64() float64 { return n.v.ToFloat64() }
func (n cfloatNumber) ToBinary() string   { return n.v.ToBinary() }
func (n cfloatNumber) IsNaN() bool        { return n.v.IsNaN() }

type cfloatSystem struct{ cfg cfloat.Config }

func (s cfloatSystem) Name() string {
	return fmt.Sprintf("cfloat<%d,%d,%t,%t,%t>",
		s.cfg.NBits, s.cfg.Es, s.cfg.HasSubnormals, s.cfg.HasSupernormals, s.cfg.IsSaturating)
}

func (s cfloatSystem) NBits() int { return s.cfg.NBits }

func (s cfloatSystem) FromBits(raw uint64) Number {
	v, _ := cfloat.New(s.cfg)
	return cfloatNumber{v: v.SetBits(raw)}
}

func (s cfloatSystem) FromFloat64(d float64) Number {
	return cfloatNumber{v: cfloat.FromFloat64(s.cfg, d)}
}

func (s cfloatSystem) Apply(op Op, a, b Number) Number {
	av, bv := a.(cfloatNumber).v, b.(cfloatNumber).v
	switch op {
	case OpAdd:
		return cfloatNumber{v: av.Add(bv)}
	case OpSub:
		return cfloatNumber{v: av.Sub(bv)}
	case OpMul:
		return cfloatNumber{v: av.Mul(bv)}
	default:
		return cfloatNumber{v: av.Div(bv)}
	}
}

func (s cfloatSystem) Enumerable(raw uint64) bool { return true }

func (s cfloatSystem) Canonical(raw uint64) bool {
	if s.cfg.HasSubnormals {
		return true
	}
	// Without subnormals the all-zero exponent band with a nonzero
	// fraction aliases zero (or minpos when saturating) and cannot
	// round trip.
	fracBits := s.cfg.NBits - 1 - s.cfg.Es
	expMask := uint64((1 << uint(s.cfg.Es)) - 1)
	expField := (raw >> uint(fracBits)) & expMask
	fracField := raw & ((uint64(1) << uint(fracBits)) - 1)
	return !(expField == 0 && fracField != 0)
}

type positNumber struct{ v posit.Posit }

func (n positNumber) Bits() uint64       { return n.v.Bits() }
func (n positNumber) ToFloat64() float64 { return n.v.ToFloat64() }
func (n positNumber) ToBinary() string   { return n.v.ToBinary() }
func (n positNumber) IsNaN() bool        { return n.v.IsNaR() }

type positSystem struct{ cfg posit.Config }

func (s positSystem) Name() string {
	return fmt.Sprintf("posit<%d,%d>", s.cfg.NBits, s.cfg.Es)
}

func (s positSystem) NBits() int { return s.cfg.NBits }

func (s positSystem) FromBits(raw uint64) Number {
	v, _ := posit.New(s.cfg)
	return positNumber{v: v.SetBits(raw)}
}

func (s positSystem) FromFloat64(d float64) Number {
	return positNumber{v: posit.FromFloat64(s.cfg, d)}
}

func (s positSystem) Apply(op Op, a, b Number) Number {
	av, bv := a.(positNumber).v, b.(positNumber).v
	switch op {
	case OpAdd:
		return positNumber{v: av.Add(bv)}
	case OpSub:
		return positNumber{v: av.Sub(bv)}
	case OpMul:
		return positNumber{v: av.Mul(bv)}
	default:
		return positNumber{v: av.Div(bv)}
	}
}

func (s positSystem) Enumerable(raw uint64) bool { return true }
func (s positSystem) Canonical(raw uint64) bool  { return true }

type arealNumber struct{ v areal.Areal }

func (n arealNumber) Bits() uint64       { return n.v.Bits() }
func (n arealNumber) ToFloat64() float64 { return n.v.ToFloat64() }
func (n arealNumber) ToBinary() string   { return n.v.ToBinary() }
func (n arealNumber) IsNaN() bool        { return n.v.IsNaN() }

type arealSystem struct{ cfg areal.Config }

func (s arealSystem) Name() string {
	return fmt.Sprintf("areal<%d,%d>", s.cfg.NBits, s.cfg.Es)
}

func (s arealSystem) NBits() int { return s.cfg.NBits }

func (s arealSystem) FromBits(raw uint64) Number {
	v, _ := areal.New(s.cfg)
	return arealNumber{v: v.SetBits(raw)}
}

func (s arealSystem) FromFloat64(d float64) Number {
	return arealNumber{v: areal.FromFloat64(s.cfg, d)}
}

func (s arealSystem) Apply(op Op, a, b Number) Number {
	av, bv := a.(arealNumber).v, b.(arealNumber).v
	switch op {
	case OpAdd:
		return arealNumber{v: av.Add(bv)}
	case OpSub:
		return arealNumber{v: av.Sub(bv)}
	case OpMul:
		return arealNumber{v: av.Mul(bv)}
	default:
		return arealNumber{v: av.Div(bv)}
	}
}

// ubit=1 patterns are open intervals: their arithmetic carries the
// interval through as inexactness, which a point-valued host oracle
// cannot reproduce, so only exact points enumerate.
func (s arealSystem) Enumerable(raw uint64) bool { return raw&1 == 0 }
func (s arealSystem) Canonical(raw uint64) bool  { return raw&1 == 0 }
