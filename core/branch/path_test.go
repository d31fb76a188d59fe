package branch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
		wantErr  bool
	}{
		{
			name:     "simple path",
			path:     "Transport/Road/Diesel",
			expected: []string{"Transport", "Road", "Diesel"},
		},
		{
			name:     "single segment",
			path:     "Demand",
			expected: []string{"Demand"},
		},
		{
			name:     "whitespace trimmed",
			path:     " Transport / Road ",
			expected: []string{"Transport", "Road"},
		},
		{
			name:     "doubled separators dropped",
			path:     "Transport//Road/",
			expected: []string{"Transport", "Road"},
		},
		{
			name:    "empty string",
			path:    "",
			wantErr: true,
		},
		{
			name:    "only separators",
			path:    "///",
			wantErr: true,
		},
		{
			name:    "only whitespace",
			path:    "  /  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := Resolve(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				var pathErr *InvalidPathError
				assert.ErrorAs(t, err, &pathErr)
				assert.Equal(t, tt.path, pathErr.Path)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, segments)
		})
	}
}

// TestResolveJoinRoundTrip verifies that resolving then re-joining
// reproduces the trimmed original path.
func TestResolveJoinRoundTrip(t *testing.T) {
	paths := []string{
		"Transport/Road/Diesel",
		"Demand",
		"Key Assumptions/Energy Balances/Transport",
		"A/B/C/D/E/F",
	}

	for _, path := range paths {
		segments, err := Resolve(path)
		assert.NoError(t, err)
		assert.Equal(t, path, Join(segments...))
	}
}

func TestPrefixes(t *testing.T) {
	prefixes := Prefixes([]string{"Transport", "Road", "Diesel"})
	assert.Equal(t, []string{
		"Transport",
		"Transport/Road",
		"Transport/Road/Diesel",
	}, prefixes)
}
