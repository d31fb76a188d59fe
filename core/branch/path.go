package branch

import (
	"fmt"
	"strings"
)

// Separator delimits segments in a branch path string.
const Separator = "/"

// InvalidPathError indicates a branch path string that cannot be resolved
// into segments (empty, or containing only separators/whitespace).
type InvalidPathError struct {
	// Path is the offending input string.
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid branch path %q", e.Path)
}

// Resolve parses a slash-delimited branch path into an ordered slice of
// segment names. Surrounding whitespace is trimmed from each segment and
// empty segments (doubled or trailing separators) are dropped.
// Returns InvalidPathError when no segments remain.
func Resolve(path string) ([]string, error) {
	parts := strings.Split(path, Separator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	if len(segments) == 0 {
		return nil, &InvalidPathError{Path: path}
	}
	return segments, nil
}

// Join is the inverse of Resolve: it assembles segments into a path string.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Prefixes returns the cumulative paths for each segment of the slice,
// in order. For ["Transport", "Road"] it returns
// ["Transport", "Transport/Road"].
func Prefixes(segments []string) []string {
	prefixes := make([]string, len(segments))
	for i := range segments {
		prefixes[i] = Join(segments[:i+1]...)
	}
	return prefixes
}
