// Package fuzzy provides fuzzy matching of option names
// Used by the layered parser to suggest a declared option for an unknown one
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher ranks candidate option names by edit distance to an input
type Matcher struct {
	maxDistance int
	minLength   int
	marker      string
}

// NewMatcher creates a matcher with the given max edit distance.
// The marker prefix is ignored when comparing names, so "-verbos" is one
// edit away from "-verbose" rather than being dominated by the shared "-".
func NewMatcher(maxDistance int, marker byte) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // Don't suggest for very short inputs
		marker:      string(marker),
	}
}

// Match represents a fuzzy match result
type Match struct {
	Value    string
	Distance int
}

// FindBest returns the closest candidate, or "" when none is close enough
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within the max distance, closest first.
// Ties keep candidate order.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	needle := m.normalize(input)
	if len(needle) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		hay := m.normalize(candidate)
		if hay == needle {
			continue
		}
		if d := m.distance(needle, hay); d <= m.maxDistance {
			matches = append(matches, Match{Value: candidate, Distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

func (m *Matcher) normalize(s string) string {
	return strings.ToLower(strings.TrimLeft(s, m.marker))
}

// distance is the Levenshtein distance between a and b, cut short once it is
// certain to exceed maxDistance.
func (m *Matcher) distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, cur = cur, prev
	}
	return prev[len(a)]
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// FindBestOption finds the best matching option name
func FindBestOption(input string, names []string, maxDistance int, marker byte) string {
	return NewMatcher(maxDistance, marker).FindBest(input, names)
}
