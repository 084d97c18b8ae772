package search

import (
	"path/filepath"
	"slices"
	"strings"
)

const (
	emptyQueryScore = 100
	matchScore      = 10
	substringBonus  = 50
)

// Score rates how well candidate matches query as an ordered subsequence.
// Both are folded first. It returns 0 when query is not a subsequence of
// candidate and at least 1 otherwise; an empty query scores 100.
//
// Each matched character earns 10 plus the length of the run of matches
// directly before it. A fully matched candidate then loses one point per
// path separator and gains 50 when query appears in it verbatim.
func Score(candidate, query string) int {
	q := Fold(query)
	return scoreFolded(Fold(candidate), []rune(q), q)
}

func scoreFolded(candidate string, query []rune, queryStr string) int {
	if len(query) == 0 {
		return emptyQueryScore
	}

	score, run, next, separators := 0, 0, 0, 0
	for _, r := range candidate {
		if r == '/' || r == filepath.Separator {
			separators++
		}
		if next == len(query) {
			continue
		}
		if r == query[next] {
			score += matchScore + run
			run++
			next++
		} else {
			run = 0
		}
	}

	if next < len(query) {
		return 0
	}

	score -= separators
	if strings.Contains(candidate, queryStr) {
		score += substringBonus
	}
	return max(score, 1)
}

// Index ranks a fixed candidate set against changing queries. Candidates
// are folded once when the index is built.
type Index struct {
	folded []string
	scored []scoredIndex
}

type scoredIndex struct {
	index int
	score int
}

// NewIndex folds candidates; their positions are the indices Rank returns.
func NewIndex(candidates []string) *Index {
	return &Index{folded: FoldAll(candidates)}
}

// Len is the number of candidates.
func (x *Index) Len() int {
	return len(x.folded)
}

// Rank returns the indices of matching candidates ordered by descending
// score. Equal scores keep candidate order. dst is reused when possible.
func (x *Index) Rank(dst []int, query string) []int {
	dst = dst[:0]
	q := Fold(query)
	if q == "" {
		for i := range x.folded {
			dst = append(dst, i)
		}
		return dst
	}

	runes := []rune(q)
	scored := x.scored[:0]
	for i, candidate := range x.folded {
		if s := scoreFolded(candidate, runes, q); s > 0 {
			scored = append(scored, scoredIndex{index: i, score: s})
		}
	}
	slices.SortStableFunc(scored, func(a, b scoredIndex) int {
		return b.score - a.score
	})
	x.scored = scored

	for _, s := range scored {
		dst = append(dst, s.index)
	}
	return dst
}
