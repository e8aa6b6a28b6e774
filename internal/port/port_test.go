package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  BasicPort
	}{
		{
			name:     "bare name is a single bit",
			raw:      "clk",
			expected: BasicPort{Name: "clk", MSB: 0, LSB: 0},
		},
		{
			name:     "explicit range",
			raw:      "sum[7:0]",
			expected: BasicPort{Name: "sum", MSB: 7, LSB: 0},
		},
		{
			name:     "single bit slice",
			raw:      "carry[4:4]",
			expected: BasicPort{Name: "carry", MSB: 4, LSB: 4},
		},
		{
			name:     "ascending range is kept as written",
			raw:      "bus[0:15]",
			expected: BasicPort{Name: "bus", MSB: 0, LSB: 15},
		},
		{
			name:      "error - empty string",
			raw:       "",
			expectErr: true,
		},
		{
			name:      "error - missing lsb",
			raw:       "sum[7:]",
			expectErr: true,
		},
		{
			name:      "error - non-numeric bound",
			raw:       "sum[a:0]",
			expectErr: true,
		},
		{
			name:      "error - trailing garbage",
			raw:       "sum[7:0]x",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Parse(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestNewWidthRejectsNonPositiveWidth(t *testing.T) {
	assert.Panics(t, func() { NewWidth("sum", 0) })
	assert.Panics(t, func() { NewWidth("sum", -3) })
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, New("clk").Width())
	assert.Equal(t, 8, NewWidth("sum", 8).Width())
	assert.Equal(t, 8, NewRange("sum", 7, 0).Width())
	assert.Equal(t, 1, NewRange("bit", 3, 3).Width())
	// Ascending ranges still report a positive width.
	assert.Equal(t, 16, NewRange("bus", 0, 15).Width())
}

func TestString(t *testing.T) {
	assert.Equal(t, "clk", New("clk").String())
	assert.Equal(t, "sum[7:0]", NewWidth("sum", 8).String())
	assert.Equal(t, "carry[4:4]", NewRange("carry", 4, 4).String())
}

func TestStringParseRoundTrip(t *testing.T) {
	original := NewRange("data", 31, 0)
	parsed, err := Parse(original.String())
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}
