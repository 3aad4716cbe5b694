package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/unisim/universal/areal"
	"github.com/unisim/universal/cfloat"
	"github.com/unisim/universal/posit"
)

func TestFormatLocales(t *testing.T) {
	cfg := areal.Config{NBits: 8, Es: 2}
	v := areal.FromFloat64(cfg, 0.0625)

	tests := []struct {
		name     string
		tag      language.Tag
		digits   int
		expected string
	}{
		{name: "English", tag: language.English, digits: 4, expected: "0.0625"},
		{name: "French", tag: language.French, digits: 4, expected: "0,0625"},
		{name: "German", tag: language.German, digits: 2, expected: "0,06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(v, tt.tag, tt.digits))
		})
	}
}

func TestFormatGrouping(t *testing.T) {
	cfg := posit.Config{NBits: 32, Es: 2}
	v := posit.FromFloat64(cfg, 1048576)
	assert.Equal(t, "1,048,576.00", Format(v, language.AmericanEnglish, 2))
}

func TestFormatSpecials(t *testing.T) {
	cfg := cfloat.Config{NBits: 8, Es: 2, HasSubnormals: true}
	inf, err := cfloat.Const(cfg, cfloat.TagPosInf)
	require.NoError(t, err)
	nan, err := cfloat.Const(cfg, cfloat.TagQNaN)
	require.NoError(t, err)

	assert.Equal(t, "Inf", Format(inf, language.English, 2))
	assert.Equal(t, "-Inf", Format(inf.Neg(), language.English, 2))
	assert.Equal(t, "NaN", Format(nan, language.French, 2))
}

func TestFormatAll(t *testing.T) {
	cfg := posit.Config{NBits: 16, Es: 1}
	vs := []posit.Posit{
		posit.FromFloat64(cfg, 0.5),
		posit.FromFloat64(cfg, -2),
	}
	assert.Equal(t, []string{"0.50", "-2.00"}, FormatAll(vs, language.English, 2))
}
