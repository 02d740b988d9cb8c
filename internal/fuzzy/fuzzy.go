// Package fuzzy matches short typed answers against a fixed set of choices.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Match returns the candidate input most plausibly means. An exact match
// wins, then a unique prefix, then the single closest candidate within the
// typo limit for its length. Ties never match.
func Match(input string, candidates []string) (string, bool) {
	token := Normalise(input)
	if token == "" {
		return "", false
	}

	var prefixed []string
	for _, cand := range candidates {
		if token == cand {
			return cand, true
		}
		if strings.HasPrefix(cand, token) {
			prefixed = append(prefixed, cand)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	if len(prefixed) > 1 {
		return "", false
	}

	best, bestDist, tie := "", -1, false
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > limit(len(cand)) {
			continue
		}
		switch {
		case bestDist < 0 || dist < bestDist:
			best, bestDist, tie = cand, dist, false
		case dist == bestDist:
			tie = true
		}
	}
	if bestDist < 0 || tie {
		return "", false
	}
	return best, true
}

// Normalise lower-cases and trims input.
func Normalise(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func limit(length int) int {
	switch {
	case length <= 2:
		return 0
	case length <= 5:
		return 1
	default:
		return 2
	}
}
