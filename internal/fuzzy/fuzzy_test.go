//nolint:testpackage // using package name 'fuzzy' to access unexported fields for testing
package fuzzy

import (
	"testing"
)

func TestMatcher_FindBest(t *testing.T) {
	matcher := NewMatcher(2, '-')

	tests := []struct {
		name       string
		input      string
		candidates []string
		expected   string
	}{
		{
			name:       "exact match excluded",
			input:      "-help",
			candidates: []string{"-help", "-version", "-verbose"},
			expected:   "",
		},
		{
			name:       "simple typo",
			input:      "-hep",
			candidates: []string{"-help", "-version", "-verbose"},
			expected:   "-help",
		},
		{
			name:       "marker ignored",
			input:      "--verbos",
			candidates: []string{"-verbose", "-version"},
			expected:   "-verbose",
		},
		{
			name:       "no good match",
			input:      "-xyz",
			candidates: []string{"-help", "-version", "-verbose"},
			expected:   "",
		},
		{
			name:       "too short",
			input:      "-x",
			candidates: []string{"-xy", "-help"},
			expected:   "",
		},
		{
			name:       "case insensitive",
			input:      "-HEP",
			candidates: []string{"-help", "-version"},
			expected:   "-help",
		},
		{
			name:       "tie keeps declaration order",
			input:      "-pot",
			candidates: []string{"-port", "-post"},
			expected:   "-port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matcher.FindBest(tt.input, tt.candidates)
			if result != tt.expected {
				t.Errorf("FindBest(%q, %v) = %q, want %q", tt.input, tt.candidates, result, tt.expected)
			}
		})
	}
}

func TestMatcher_FindMatchesOrdered(t *testing.T) {
	matcher := NewMatcher(2, '-')
	matches := matcher.FindMatches("-colr", []string{"-colour", "-color", "-cols"})

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %v", matches)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Distance > matches[i].Distance {
			t.Errorf("matches not sorted by distance: %v", matches)
		}
	}
	if matches[0].Value != "-color" || matches[0].Distance != 1 {
		t.Errorf("expected -color at distance 1 first, got %+v", matches[0])
	}
}

func TestMatcher_Distance(t *testing.T) {
	matcher := NewMatcher(3, '-')

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flag", "flags", 1},
		{"abcdef", "a", 4}, // beyond max distance, capped
	}

	for _, tt := range tests {
		if got := matcher.distance(tt.a, tt.b); got != tt.want {
			t.Errorf("distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFindBestOption(t *testing.T) {
	if got := FindBestOption("/outpt", []string{"/output", "/input"}, 2, '/'); got != "/output" {
		t.Errorf("expected /output, got %q", got)
	}
}

func BenchmarkFindBest(b *testing.B) {
	matcher := NewMatcher(2, '-')
	candidates := []string{"-help", "-version", "-verbose", "-output", "-input", "-config", "-debug", "-quiet"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = matcher.FindBest("-verbos", candidates)
	}
}
