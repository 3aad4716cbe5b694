// Package posit implements the tapered-precision posit<nbits,es> encoding:
// sign, variable-length regime, es exponent bits, then fraction, with a
// single projective infinity/NaN (NaR). It shares the blocktriple
// arithmetic kernel with cfloat and areal; only decode/encode differ.
package posit

import (
	"fmt"

	"github.com/unisim/universal/internal/errs"
)

// Config describes one posit instantiation.
type Config struct {
	NBits int
	Es    int
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	if c.NBits < 3 {
		return errs.ConfigurationInvalid(fmt.Sprintf("nbits %d must be >= 3", c.NBits))
	}
	if c.Es < 0 || c.Es > c.NBits-2 {
		return errs.ConfigurationInvalid(fmt.Sprintf("es %d out of range for nbits %d", c.Es, c.NBits))
	}
	if c.NBits > 64 {
		return errs.ConfigurationInvalid("nbits > 64 is not supported by this module's raw uint64 storage")
	}
	return nil
}
