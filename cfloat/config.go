// Package cfloat implements the parameterized classic floating-point
// encoding: sign/exponent/fraction layout with optional subnormals,
// optional "supernormal" finite values in the reserved exponent band,
// and optional saturating arithmetic, built on the blocktriple
// arithmetic kernel.
package cfloat

import (
	"fmt"
	"sync"

	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/errs"
	"github.com/unisim/universal/internal/imath"
)

// Config describes one cfloat instantiation. It plays the role a
// compile-time template parameter list plays in the source library:
// every derived constant (bias, masks, thresholds) is a pure function of
// these fields, computed once and cached (see layout/derived below).
type Config struct {
	NBits           int
	Es              int
	HasSubnormals   bool
	HasSupernormals bool
	IsSaturating    bool
}

// Validate reports whether the configuration is usable: nbits >= 3 and
// 1 <= es <= nbits-2, with the raw pattern fitting a uint64.
func (c Config) Validate() error {
	if c.NBits < 3 {
		return errs.ConfigurationInvalid(fmt.Sprintf("nbits %d must be >= 3", c.NBits))
	}
	if c.Es < 1 || c.Es > c.NBits-2 {
		return errs.ConfigurationInvalid(fmt.Sprintf("es %d out of range for nbits %d", c.Es, c.NBits))
	}
	if c.NBits > 64 {
		return errs.ConfigurationInvalid("nbits > 64 is not supported by this module's raw uint64 storage")
	}
	if l := c.derived(); l.minAdderBits > blocktriple.SigBits {
		return errs.ConfigurationInvalid(fmt.Sprintf(
			"fraction width %d needs a %d-bit adder, beyond the kernel's %d-bit significand",
			l.fracBits, l.minAdderBits, blocktriple.SigBits))
	}
	return nil
}

// layout holds every constant derivable from a Config, computed once.
type layout struct {
	fracBits    int
	bias        int
	maxExpCode  int // all-ones exponent field value
	usableMax   int // highest exponent field value that still encodes a finite number
	minAdderBits int // minimum significand width for a correctly rounded add; Validate checks it against blocktriple.SigBits
}

var layoutCache sync.Map // Config -> layout

func (c Config) derived() layout {
	if v, ok := layoutCache.Load(c); ok {
		return v.(layout)
	}
	fracBits := c.NBits - 1 - c.Es
	bias := (1 << uint(c.Es-1)) - 1
	maxExpCode := (1 << uint(c.Es)) - 1
	usableMax := maxExpCode
	if !c.HasSupernormals {
		usableMax = maxExpCode - 1
	}
	l := layout{
		fracBits:     fracBits,
		bias:         bias,
		maxExpCode:   maxExpCode,
		usableMax:    usableMax,
		minAdderBits: imath.MinAdderWidth(fracBits),
	}
	layoutCache.Store(c, l)
	return l
}
