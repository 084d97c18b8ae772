// Package search holds the two matchers behind the file list: a
// case-insensitive substring filter over names and an ordered-subsequence
// scorer over full paths.
package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold returns the form every matcher compares: NFC-normalised and
// lower-cased, so a decomposed filename still matches a typed query.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// FoldAll folds every string once so per-keystroke matching does no
// case conversion.
func FoldAll(items []string) []string {
	folded := make([]string, len(items))
	for i, s := range items {
		folded[i] = Fold(s)
	}
	return folded
}

// Substring returns the indices of folded names that contain query as a
// contiguous substring, in their original order. An empty query selects
// every index. dst is reused when it has enough capacity.
func Substring(dst []int, folded []string, query string) []int {
	dst = dst[:0]
	if query == "" {
		for i := range folded {
			dst = append(dst, i)
		}
		return dst
	}

	q := Fold(query)
	for i, name := range folded {
		if strings.Contains(name, q) {
			dst = append(dst, i)
		}
	}
	return dst
}
