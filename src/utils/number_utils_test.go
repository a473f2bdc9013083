package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain", "123.45", 123.45},
		{"negative", "-2.5", -2.5},
		{"comma decimal", "-2,5", -2.5},
		{"space thousands", "1 234,56", 1234.56},
		{"nbsp thousands", "1 234,56", 1234.56},
		{"dollar us format", "$1,234.56", 1234.56},
		{"euro eu format", "€1.234,56", 1234.56},
		{"accounting negative", "(123.45)", -123.45},
		{"accounting with symbol", "($1,234.50)", -1234.50},
		{"padded", "  42  ", 42},
		{"integer", "7", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseFloat_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "--5"} {
		_, err := ParseFloat(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseDecimal_KeepsPrecision(t *testing.T) {
	d, err := ParseDecimal("5000.25")
	require.NoError(t, err)
	assert.Equal(t, "5000.25", d.String())
}

func TestParseFloatOr(t *testing.T) {
	assert.Equal(t, 1.5, ParseFloatOr("1,5", 0))
	assert.Equal(t, 9.0, ParseFloatOr("", 9.0))
	assert.Equal(t, 9.0, ParseFloatOr("n/a", 9.0))
}
