package verify

import (
	"github.com/unisim/universal/areal"
)

// UbitLaw exhaustively checks areal's defining interval property: every
// exact encoding v converts back from its own value with ubit=0, and
// any d strictly inside the open interval (v, v_next) converts to the
// encoding raw(v)|1. Enumeration walks each sign's magnitudes in
// encoded order, so v_next is always the next exact finite value away
// from zero; past maxpos the interval extends to infinity.
func UbitLaw(cfg areal.Config) Report {
	r := Report{Op: "ubit", Mode: "exhaustive"}
	sys, err := ForAreal(cfg)
	if err != nil {
		r.add(Case{Op: "ubit", Got: err.Error(), Pass: false})
		return r
	}
	r.System = sys.Name()

	count := uint64(1) << uint(cfg.NBits)
	for raw := uint64(0); raw < count; raw += 2 {
		x, _ := areal.New(cfg)
		x = x.SetBits(raw)
		if x.IsNaN() || x.IsInf() {
			continue
		}
		v := x.ToFloat64()

		exact := areal.FromFloat64(cfg, v)
		r.add(Case{
			A:    x.ToBinary(),
			Op:   "exact",
			Got:  exact.ToBinary(),
			Want: x.ToBinary(),
			Pass: exact.Bits() == raw,
		})

		next := x.SetBits(raw + 2)
		var mid float64
		if next.IsInf() || next.IsNaN() || raw+2 >= count {
			// The (maxpos, inf) tail: any magnitude beyond maxpos lands
			// in the same interval.
			mid = v * 2
		} else {
			mid = (v + next.ToFloat64()) / 2
		}
		interval := areal.FromFloat64(cfg, mid)
		want := x.SetBits(raw | 1)
		r.add(Case{
			A:    x.ToBinary(),
			Op:   "interval",
			Got:  interval.ToBinary(),
			Want: want.ToBinary(),
			Pass: interval.Bits() == raw|1,
		})
	}
	return r
}
