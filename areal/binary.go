package areal

import "strconv"

// ToBinary prints the raw encoding grouped sign.exponent.fraction.ubit.
func (a Areal) ToBinary() string {
	l := a.cfg.derived()
	sign, expField, fracField, ubit := a.fields()

	signStr := "0"
	if sign {
		signStr = "1"
	}
	ubitStr := "0"
	if ubit {
		ubitStr = "1"
	}
	expStr := padBits(uint64(expField), a.cfg.Es)
	fracStr := padBits(fracField, l.fracBits)
	return signStr + "." + expStr + "." + fracStr + "." + ubitStr
}

func padBits(v uint64, width int) string {
	s := strconv.FormatUint(v, 2)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// String renders the value as decimal text, noting an open-interval
// encoding with a tilde prefix, matching the convention that ubit=1
// values are not exactly the printed point.
func (a Areal) String() string {
	switch {
	case a.IsNaN():
		if a.Decode().IsSignaling() {
			return "sNaN"
		}
		return "qNaN"
	case a.IsInf():
		if a.Decode().Sign() {
			return "-inf"
		}
		return "inf"
	}
	s := strconv.FormatFloat(a.ToFloat64(), 'g', -1, 64)
	if a.Ubit() {
		return "~" + s
	}
	return s
}
