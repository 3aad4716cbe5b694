package cfloat

import "strconv"

// ToBinary prints the raw encoding grouped sign.exponent.fraction.
func (f CFloat) ToBinary() string {
	l := f.cfg.derived()
	sign, expField, fracField := f.fields()

	signStr := "0"
	if sign {
		signStr = "1"
	}
	expStr := padBits(uint64(expField), f.cfg.Es)
	fracStr := padBits(fracField, l.fracBits)
	return signStr + "." + expStr + "." + fracStr
}

func padBits(v uint64, width int) string {
	s := strconv.FormatUint(v, 2)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// String renders the value as decimal text (fmt.Stringer).
func (f CFloat) String() string {
	switch {
	case f.IsNaN():
		if f.Decode().IsSignaling() {
			return "sNaN"
		}
		return "qNaN"
	case f.IsInf():
		if f.Decode().Sign() {
			return "-inf"
		}
		return "inf"
	}
	return strconv.FormatFloat(f.ToFloat64(), 'g', -1, 64)
}
