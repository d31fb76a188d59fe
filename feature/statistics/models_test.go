package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01. Industry", "Industry"},
		{"15.1 Road", "Road"},
		{"15_01_road", "road"},
		{"15-road", "road"},
		{"15-01 Rail", "Rail"},
		{"7. Non-energy use", "Non-energy use"},
		{"Industry", "Industry"},
		{"  Transport  ", "Transport"},
		{"2020", "2020"}, // all digits, not a prefix
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanName(tc.in), "input %q", tc.in)
	}
}

func TestIsSubtotal(t *testing.T) {
	assert.True(t, IsSubtotal("Total final consumption"))
	assert.True(t, IsSubtotal("01. Total transformation"))
	assert.True(t, IsSubtotal("Subtotal"))
	assert.True(t, IsSubtotal("Industry subtotal"))
	assert.True(t, IsSubtotal("TOTAL"))

	assert.False(t, IsSubtotal("Industry"))
	assert.False(t, IsSubtotal("15. Transport"))
	// "Totally" style names are not aggregates.
	assert.False(t, IsSubtotal("Totally Renewables"))
}
