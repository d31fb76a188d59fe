package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
	cases := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"50", 50, true},
		{" 50.5 ", 50.5, true},
		{"1,234.5", 1234.5, true},
		{"-3.2", -3.2, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"-", 0, false},
		{"--", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseFloat(tc.cell)
		assert.Equal(t, tc.ok, ok, "cell %q", tc.cell)
		assert.Equal(t, tc.want, got, "cell %q", tc.cell)
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		cell string
		want int
		ok   bool
	}{
		{"2020", 2020, true},
		{" 2020 ", 2020, true},
		{"0999", 999, true},
		{"20211", 0, false},
		{"123", 0, false},
		{"Year", 0, false},
		{"", 0, false},
		{"20.1", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseYear(tc.cell)
		assert.Equal(t, tc.ok, ok, "cell %q", tc.cell)
		assert.Equal(t, tc.want, got, "cell %q", tc.cell)
	}
}
