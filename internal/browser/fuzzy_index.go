package browser

import (
	"context"

	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/search"
)

// ScanRequest asks the host to scan Root in the background. ID ties the
// result back to the request; results for any other ID are dropped.
type ScanRequest struct {
	ID   uint64
	Root string
}

// ScanResult is what a finished scan hands back to the controller.
type ScanResult struct {
	ID      uint64
	Root    string
	Entries []fileops.Entry
	Err     error
}

// Run performs the scan. It touches no browser state and is safe to call
// from any goroutine.
func (r ScanRequest) Run(ctx context.Context, gw Gateway) ScanResult {
	entries, err := gw.ScanTree(ctx, r.Root)
	return ScanResult{ID: r.ID, Root: r.Root, Entries: entries, Err: err}
}

// FuzzyIndex is the FuzzyFind half of the browser: every file under a root,
// ranked against a query by search.Score on the full path.
//
// A scan is installed in one step by Complete; until then the index is
// empty and Scanning reports true.
type FuzzyIndex struct {
	root     string
	entries  []fileops.Entry
	index    *search.Index
	scanning bool
	scanID   uint64

	query   Query
	visible []int // indices into entries, best first
	cursor  Cursor
}

// Begin discards the current file set and starts a new scan of root.
func (f *FuzzyIndex) Begin(root string) ScanRequest {
	f.Clear()
	f.scanID++
	f.root = root
	f.scanning = true
	return ScanRequest{ID: f.scanID, Root: root}
}

// Pending reports whether id is the scan currently awaited.
func (f *FuzzyIndex) Pending(id uint64) bool {
	return f.scanning && id == f.scanID
}

// Complete installs the entries of scan id. It returns false, changing
// nothing, when id is not the pending scan.
func (f *FuzzyIndex) Complete(id uint64, entries []fileops.Entry) bool {
	if !f.Pending(id) {
		return false
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	f.entries = entries
	f.index = search.NewIndex(paths)
	f.scanning = false
	f.rerank()
	return true
}

// Fail ends scan id without installing anything.
func (f *FuzzyIndex) Fail(id uint64) bool {
	if !f.Pending(id) {
		return false
	}
	f.scanning = false
	return true
}

// Clear drops the file set, the query and any pending scan.
func (f *FuzzyIndex) Clear() {
	f.root = ""
	f.entries = nil
	f.index = nil
	f.scanning = false
	f.query.Clear()
	f.visible = f.visible[:0]
	f.cursor = Cursor{}
}

func (f *FuzzyIndex) rerank() {
	if f.index == nil {
		f.visible = f.visible[:0]
	} else {
		f.visible = f.index.Rank(f.visible, f.query.String())
	}
	f.cursor.Clamp(len(f.visible))
}

// Root is the directory the current file set was scanned from.
func (f *FuzzyIndex) Root() string { return f.root }

func (f *FuzzyIndex) Scanning() bool { return f.scanning }

// Total is the number of scanned entries, before ranking.
func (f *FuzzyIndex) Total() int { return len(f.entries) }

func (f *FuzzyIndex) Query() string { return f.query.String() }

// EditQuery applies edit to the query and re-ranks.
func (f *FuzzyIndex) EditQuery(edit func(*Query)) {
	edit(&f.query)
	f.rerank()
}

func (f *FuzzyIndex) VisibleLen() int { return len(f.visible) }

func (f *FuzzyIndex) VisibleAt(i int) fileops.Entry {
	return f.entries[f.visible[i]]
}

// Visible returns a copy of the ranked entries, best first.
func (f *FuzzyIndex) Visible() []fileops.Entry {
	out := make([]fileops.Entry, len(f.visible))
	for i, idx := range f.visible {
		out[i] = f.entries[idx]
	}
	return out
}

func (f *FuzzyIndex) SelectedIndex() int {
	i, _ := f.cursor.Selected(len(f.visible))
	return i
}

func (f *FuzzyIndex) Selected() (fileops.Entry, bool) {
	i, ok := f.cursor.Selected(len(f.visible))
	if !ok {
		return fileops.Entry{}, false
	}
	return f.VisibleAt(i), true
}

func (f *FuzzyIndex) MoveUp()   { f.cursor.MoveUp() }
func (f *FuzzyIndex) MoveDown() { f.cursor.MoveDown(len(f.visible)) }
