package verify

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/unisim/universal/areal"
	"github.com/unisim/universal/cfloat"
	"github.com/unisim/universal/internal/errs"
	"github.com/unisim/universal/posit"
)

// Entry selects one configuration of one number family for
// verification.
type Entry struct {
	Family       string `yaml:"family"`
	NBits        int    `yaml:"nbits"`
	Es           int    `yaml:"es"`
	Subnormals   bool   `yaml:"subnormals"`
	Supernormals bool   `yaml:"supernormals"`
	Saturating   bool   `yaml:"saturating"`
}

// System builds the harness adapter the entry names.
func (e Entry) System() (System, error) {
	switch e.Family {
	case "cfloat":
		return ForCFloat(cfloat.Config{
			NBits:           e.NBits,
			Es:              e.Es,
			HasSubnormals:   e.Subnormals,
			HasSupernormals: e.Supernormals,
			IsSaturating:    e.Saturating,
		})
	case "posit":
		return ForPosit(posit.Config{NBits: e.NBits, Es: e.Es})
	case "areal":
		return ForAreal(areal.Config{NBits: e.NBits, Es: e.Es})
	}
	return nil, errs.ConfigurationInvalid(fmt.Sprintf("unknown number family %q", e.Family))
}

// Matrix is the declarative test plan: the configurations to sweep, the
// soft cap deciding exhaustive vs. randomized enumeration, and the
// sampling parameters for the randomized path.
type Matrix struct {
	Cap     uint64  `yaml:"cap"`
	Samples int     `yaml:"samples"`
	Seed    int64   `yaml:"seed"`
	Configs []Entry `yaml:"configs"`
}

//go:embed configs.yaml
var defaultMatrix []byte

// LoadMatrix decodes a YAML test matrix.
func LoadMatrix(r io.Reader) (Matrix, error) {
	var m Matrix
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Matrix{}, fmt.Errorf("verify: decoding matrix: %w", err)
	}
	if m.Cap == 0 {
		m.Cap = 1 << 20
	}
	if m.Samples == 0 {
		m.Samples = 10000
	}
	return m, nil
}

// DefaultMatrix returns the matrix embedded with the package.
func DefaultMatrix() Matrix {
	m, err := LoadMatrix(bytes.NewReader(defaultMatrix))
	if err != nil {
		panic(err)
	}
	return m
}

// Exhaustive reports whether the entry's encoding space is small enough
// for full pairwise enumeration under the matrix cap.
func (m Matrix) Exhaustive(e Entry) bool {
	return uint64(2)<<uint(e.NBits) <= m.Cap
}

// Run sweeps every configuration in the matrix across every binary
// operation, exhaustively where the cap allows and by deterministic
// random sampling otherwise. For configurations swept exhaustively it
// additionally round-trips every canonical encoding through the host
// reference format; sampled configurations get no round-trip check.
func Run(m Matrix) ([]Report, error) {
	var reports []Report
	for _, e := range m.Configs {
		sys, err := e.System()
		if err != nil {
			return nil, err
		}
		exhaustive := m.Exhaustive(e)
		for _, op := range Ops {
			if exhaustive {
				reports = append(reports, ExhaustiveBinary(sys, op))
			} else {
				reports = append(reports, RandomBinary(sys, op, m.Samples, m.Seed))
			}
		}
		if exhaustive {
			reports = append(reports, ExhaustiveConversion(sys))
		}
	}
	return reports, nil
}
