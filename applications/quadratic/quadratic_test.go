package quadratic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unisim/universal/posit"
)

func TestFloat64RootReference(t *testing.T) {
	root := Float64Root(1, 1e4, 1)
	// The exact small root of x^2 + 1e4 x + 1 is -(1e-4 + 1e-12 + ...).
	assert.InDelta(t, -1e-4, root, 1e-10)
	assert.Negative(t, root)
}

func TestPositRootSurvivesCancellation(t *testing.T) {
	cfg := posit.Config{NBits: 32, Es: 2}
	p := PositRoot(cfg, 1, 1e4, 1)
	require.False(t, p.IsNaR())
	assert.LessOrEqual(t, math.Abs(p.ToFloat64()), 1.01e-4)
}

func TestCompare(t *testing.T) {
	results := Compare(1, 1e4, 1)
	require.Len(t, results, 4)
	assert.Equal(t, "float64", results[0].System)
	for _, r := range results {
		assert.False(t, math.IsNaN(r.Root), "%s produced NaN", r.System)
		assert.LessOrEqual(t, math.Abs(r.Root), 1.01e-4, "%s root out of range", r.System)
	}
	assert.NotEmpty(t, results[2].Bits)
}

func TestPositRootExactDiscriminant(t *testing.T) {
	// x^2 - 3x + 2 has roots 2 and 1; the discriminant is exact, so
	// every format must nail the larger root.
	cfg := posit.Config{NBits: 32, Es: 2}
	p := PositRoot(cfg, 1, -3, 2)
	assert.Equal(t, 2.0, p.ToFloat64())
	assert.Equal(t, 2.0, Float64Root(1, -3, 2))
	assert.Equal(t, float32(2), Float32Root(1, -3, 2))
}
