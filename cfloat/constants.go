package cfloat

// Tag names the canonical constant requested from Const.
type Tag int

const (
	TagZero Tag = iota
	TagMinPos
	TagMaxPos
	TagMinNeg
	TagMaxNeg
	TagPosInf
	TagNegInf
	TagQNaN
	TagSNaN
)

// Const returns the canonical value for tag under cfg, validating cfg
// first.
func Const(cfg Config, tag Tag) (CFloat, error) {
	if err := cfg.Validate(); err != nil {
		return CFloat{}, err
	}
	switch tag {
	case TagZero:
		return pack(cfg, false, 0, 0), nil
	case TagMinPos:
		return minposPattern(cfg, false), nil
	case TagMaxPos:
		return maxPattern(cfg, false), nil
	case TagMinNeg:
		return minposPattern(cfg, true), nil
	case TagMaxNeg:
		return maxPattern(cfg, true), nil
	case TagPosInf:
		if cfg.HasSupernormals {
			return maxPattern(cfg, false), nil
		}
		return infPattern(cfg, false), nil
	case TagNegInf:
		if cfg.HasSupernormals {
			return maxPattern(cfg, true), nil
		}
		return infPattern(cfg, true), nil
	case TagQNaN:
		return nanPattern(cfg, false), nil
	case TagSNaN:
		if cfg.HasSupernormals {
			// Supernormal configurations have only the single reserved
			// NaN pattern; there is no distinct signalling encoding.
			return nanPattern(cfg, false), nil
		}
		return nanPattern(cfg, true), nil
	}
	return CFloat{}, errConfigTagUnknown(tag)
}

func errConfigTagUnknown(tag Tag) error {
	return unexpectedTag{tag}
}

type unexpectedTag struct{ tag Tag }

func (e unexpectedTag) Error() string { return "cfloat: unknown constant tag" }

// BFloat16 is the nbits=16, es=8 preset (Google's bfloat16 layout): with
// subnormals, no supernormals, non-saturating, matching IEEE-754
// single-precision's exponent field truncated to a 7-bit fraction.
func BFloat16() Config {
	return Config{NBits: 16, Es: 8, HasSubnormals: true, HasSupernormals: false, IsSaturating: false}
}

// TensorFloat32 is the nbits=19, es=8 preset (NVIDIA's TF32 layout): the
// bfloat16 exponent range with a wider 10-bit fraction.
func TensorFloat32() Config {
	return Config{NBits: 19, Es: 8, HasSubnormals: true, HasSupernormals: false, IsSaturating: false}
}
