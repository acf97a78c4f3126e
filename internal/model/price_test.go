package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"25.00", 2500},
		{"19.99", 1999},
		{"30", 3000},
		{"5.5", 550},
		{"0.01", 1},
		{" 12.34 ", 1234},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.cents, got, "input %q", tc.in)
	}
}

func TestParsePriceRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-1.00", "1.999", ".50", "1.", "0.00", "0"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, "input %q", in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "75.00", FormatPrice(7500))
	assert.Equal(t, "19.99", FormatPrice(1999))
	assert.Equal(t, "0.05", FormatPrice(5))
	assert.Equal(t, "0.50", FormatPrice(50))
}

// Multi-seat totals must come out exact; 25.00 x 3 is where float math
// famously drifts.
func TestTotalsAreExact(t *testing.T) {
	cents, err := ParsePrice("25.00")
	require.NoError(t, err)
	assert.Equal(t, "75.00", FormatPrice(cents*3))

	cents, err = ParsePrice("19.99")
	require.NoError(t, err)
	assert.Equal(t, "39.98", FormatPrice(cents*2))
}
