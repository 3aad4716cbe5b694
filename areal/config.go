// Package areal implements the exact-or-interval areal<nbits,es> encoding:
// sign, exponent, fraction, and a trailing ubit that distinguishes the
// exact point value `[v]` from the open interval `(v, v_next)` toward
// the next exact value in signed enumeration order. It shares the
// blocktriple arithmetic kernel with cfloat and posit.
package areal

import (
	"fmt"
	"sync"

	"github.com/unisim/universal/internal/blocktriple"
	"github.com/unisim/universal/internal/errs"
	"github.com/unisim/universal/internal/imath"
)

// Config describes one areal instantiation.
type Config struct {
	NBits int
	Es    int
}

// Validate reports whether the configuration is usable: nbits must leave
// room for sign, exponent, and the trailing ubit (nbits >= es+2).
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

type layout struct {
	fracBits     int
	bias         int
	maxExpCode   int
	usableMax    int
	minAdderBits int // minimum significand width for a correctly rounded add; Validate checks it against blocktriple.SigBits
}

var layoutCache sync.Map

func (c Config) derived() layout {
	if v, ok := layoutCache.Load(c); ok {
		return v.(layout)
	}
	fracBits := c.NBits - c.Es - 2
	bias := (1 << uint(c.Es-1)) - 1
	maxExpCode := (1 << uint(c.Es)) - 1
	l := layout{
		fracBits:     fracBits,
		bias:         bias,
		maxExpCode:   maxExpCode,
		usableMax:    maxExpCode - 1,
		minAdderBits: imath.MinAdderWidth(fracBits),
	}
	layoutCache.Store(c, l)
	return l
}
