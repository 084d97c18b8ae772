package browser

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/search"
)

// Gateway is the filesystem as the browser sees it. fileops.FS satisfies it;
// tests substitute an in-memory tree.
type Gateway interface {
	ReadDirectory(dir string) ([]fileops.Entry, error)
	ScanTree(ctx context.Context, root string) ([]fileops.Entry, error)
}

// Snapshot is the sorted listing of one directory. It is replaced, never
// edited, when the directory is read again.
type Snapshot struct {
	Dir     string
	Entries []fileops.Entry

	folded []string
}

// NewSnapshot sorts entries for display and drops dotfiles unless
// showHidden is set. entries is not modified.
func NewSnapshot(dir string, entries []fileops.Entry, showHidden bool) Snapshot {
	kept := make([]fileops.Entry, 0, len(entries))
	for _, e := range entries {
		if !showHidden && e.IsHidden() {
			continue
		}
		kept = append(kept, e)
	}
	SortEntries(kept)

	names := make([]string, len(kept))
	for i, e := range kept {
		names[i] = e.Name
	}
	return Snapshot{Dir: dir, Entries: kept, folded: search.FoldAll(names)}
}

// SortEntries orders directories before files, then names
// case-insensitively. Names differing only in case fall back to a byte
// comparison so the order is total.
func SortEntries(entries []fileops.Entry) {
	slices.SortFunc(entries, func(a, b fileops.Entry) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

func (s Snapshot) Len() int {
	return len(s.Entries)
}

// indexOf returns the position of the entry at path, or -1.
func (s Snapshot) indexOf(path string) int {
	return slices.IndexFunc(s.Entries, func(e fileops.Entry) bool {
		return e.Path == path
	})
}
