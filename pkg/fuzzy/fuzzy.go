// Package fuzzy corrects typos in tag names by picking the closest existing name.
package fuzzy

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// Threshold is the similarity a candidate has to exceed to replace the requested name.
	Threshold = 0.80

	// boostThreshold is the Jaro score above which a common prefix raises the score.
	boostThreshold = 0.7
	prefixScale    = 0.1
	prefixSize     = 4
	chunkSize      = 64
)

// Similarity returns the Jaro-Winkler similarity of a and b, from 0 to 1 where 1 is an exact match.
// Strings are compared rune by rune. A common prefix of up to four runes only raises the score
// when the plain Jaro similarity is above 0.7.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	sim := jaro(ra, rb)
	if sim <= boostThreshold {
		return sim
	}
	prefix := 0
	for prefix < min(prefixSize, len(ra), len(rb)) && ra[prefix] == rb[prefix] {
		prefix++
	}
	return sim + prefixScale*float64(prefix)*(1-sim)
}

func jaro(a, b []rune) float64 {
	switch {
	case len(a) == 0 && len(b) == 0:
		return 1
	case len(a) == 0 || len(b) == 0:
		return 0
	}

	window := max(max(len(a), len(b))/2-1, 0)
	aMatched := make([]bool, len(a))
	bMatched := make([]bool, len(b))
	matches := 0
	for i, r := range a {
		for j := max(i-window, 0); j < min(len(b), i+window+1); j++ {
			if !bMatched[j] && b[j] == r {
				aMatched[i], bMatched[j] = true, true
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0
	}

	transpositions, j := 0, 0
	for i, r := range a {
		if !aMatched[i] {
			continue
		}
		for !bMatched[j] {
			j++
		}
		if r != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	return (m/float64(len(a)) + m/float64(len(b)) + (m-float64(transpositions/2))/m) / 3
}

// Resolve returns the candidate closest to requested if it is similar enough, otherwise requested.
func Resolve(requested string, candidates []string) string {
	match, score := Closest(requested, candidates)
	if score > Threshold {
		return match
	}
	return requested
}

// Closest scores every candidate against requested and returns the best one with its score.
// Candidates are scored in parallel chunks. When several candidates share the best score the
// earliest one wins, but callers must not depend on which of them is picked.
// With no candidates it returns requested and a score of 0.
func Closest(requested string, candidates []string) (string, float64) {
	if len(candidates) == 0 {
		return requested, 0
	}

	chunks := (len(candidates) + chunkSize - 1) / chunkSize
	best := make([]int, chunks)
	scores := make([]float64, chunks)

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for c := range chunks {
		eg.Go(func() error {
			start := c * chunkSize
			end := min(start+chunkSize, len(candidates))
			best[c], scores[c] = start, -1
			for i := start; i < end; i++ {
				if score := Similarity(requested, candidates[i]); score > scores[c] {
					best[c], scores[c] = i, score
				}
			}
			return nil
		})
	}
	_ = eg.Wait()

	winner := 0
	for c := 1; c < chunks; c++ {
		if scores[c] > scores[winner] {
			winner = c
		}
	}
	return candidates[best[winner]], scores[winner]
}
