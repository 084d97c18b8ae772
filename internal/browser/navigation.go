package browser

import (
	"path/filepath"
	"slices"

	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/search"
)

// Navigation is the Explore/Search half of the browser: the current
// directory, its listing, the filter typed over it and the cursor.
//
// Every directory change reads the target first and commits only when the
// read succeeds, so a failure leaves everything as it was.
type Navigation struct {
	gw         Gateway
	dir        string
	snap       Snapshot
	showHidden bool

	query   Query
	visible []int // indices into snap.Entries
	cursor  Cursor
}

// NewNavigation lists dir, made absolute against the working directory
// when relative. The error is fatal for the caller: there is no previous
// state to fall back to.
func NewNavigation(gw Gateway, dir string, showHidden bool) (*Navigation, error) {
	n := &Navigation{gw: gw, showHidden: showHidden}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &IOError{Op: "resolve", Path: dir, Err: err}
	}
	dir = abs
	snap, err := n.load(dir)
	if err != nil {
		return nil, err
	}
	n.commit(dir, snap)
	return n, nil
}

func (n *Navigation) load(dir string) (Snapshot, error) {
	entries, err := n.gw.ReadDirectory(dir)
	if err != nil {
		return Snapshot{}, &IOError{Op: "read directory", Path: dir, Err: err}
	}
	return NewSnapshot(dir, entries, n.showHidden), nil
}

func (n *Navigation) commit(dir string, snap Snapshot) {
	n.dir = dir
	n.snap = snap
	n.query.Clear()
	n.cursor = Cursor{}
	n.refilter()
}

func (n *Navigation) refilter() {
	n.visible = search.Substring(n.visible, n.snap.folded, n.query.String())
	n.cursor.Clamp(len(n.visible))
}

// Dir is the directory being listed.
func (n *Navigation) Dir() string { return n.dir }

// Snapshot is the full listing, before the filter.
func (n *Navigation) Snapshot() Snapshot { return n.snap }

func (n *Navigation) ShowHidden() bool { return n.showHidden }

// Query is the current filter text.
func (n *Navigation) Query() string { return n.query.String() }

// EditQuery applies edit to the filter and re-filters the listing.
func (n *Navigation) EditQuery(edit func(*Query)) {
	edit(&n.query)
	n.refilter()
}

// ClearQuery removes the filter.
func (n *Navigation) ClearQuery() {
	n.EditQuery((*Query).Clear)
}

// VisibleLen is the number of entries passing the filter.
func (n *Navigation) VisibleLen() int { return len(n.visible) }

// VisibleAt returns the i-th entry passing the filter.
func (n *Navigation) VisibleAt(i int) fileops.Entry {
	return n.snap.Entries[n.visible[i]]
}

// Visible returns a copy of the filtered listing in display order.
func (n *Navigation) Visible() []fileops.Entry {
	out := make([]fileops.Entry, len(n.visible))
	for i, idx := range n.visible {
		out[i] = n.snap.Entries[idx]
	}
	return out
}

// SelectedIndex is the cursor position within the filtered listing.
func (n *Navigation) SelectedIndex() int {
	i, _ := n.cursor.Selected(len(n.visible))
	return i
}

// Selected returns the entry under the cursor.
func (n *Navigation) Selected() (fileops.Entry, bool) {
	i, ok := n.cursor.Selected(len(n.visible))
	if !ok {
		return fileops.Entry{}, false
	}
	return n.VisibleAt(i), true
}

func (n *Navigation) MoveUp()   { n.cursor.MoveUp() }
func (n *Navigation) MoveDown() { n.cursor.MoveDown(len(n.visible)) }
func (n *Navigation) Top()      { n.cursor.Top() }
func (n *Navigation) Bottom()   { n.cursor.Bottom(len(n.visible)) }

// Refresh re-reads the current directory. The filter is kept and the
// cursor stays on the same entry when it still exists.
func (n *Navigation) Refresh() error {
	snap, err := n.load(n.dir)
	if err != nil {
		return err
	}

	prev, hadSelection := n.Selected()
	n.snap = snap
	n.refilter()
	if hadSelection {
		n.selectPath(prev.Path)
	}
	return nil
}

// SetShowHidden changes dotfile visibility and re-reads the directory. The
// setting is unchanged if the read fails.
func (n *Navigation) SetShowHidden(show bool) error {
	if show == n.showHidden {
		return nil
	}
	n.showHidden = show
	if err := n.Refresh(); err != nil {
		n.showHidden = !show
		return err
	}
	return nil
}

// ToggleHidden flips dotfile visibility.
func (n *Navigation) ToggleHidden() error {
	return n.SetShowHidden(!n.showHidden)
}

// EnterSelected descends into the selected directory.
func (n *Navigation) EnterSelected() error {
	sel, ok := n.Selected()
	if !ok {
		return ErrNoSelection
	}
	if !sel.IsDir {
		return ErrNotADirectory
	}
	return n.GoTo(sel.Path)
}

// GoToParent moves up one level and places the cursor on the directory
// that was just left.
func (n *Navigation) GoToParent() error {
	parent := filepath.Dir(n.dir)
	if parent == n.dir {
		return ErrAtRoot
	}
	child := n.dir
	if err := n.GoTo(parent); err != nil {
		return err
	}
	n.selectPath(child)
	return nil
}

// GoTo lists path, which is resolved against the current directory when
// relative. The filter is cleared and the cursor returns to the top.
func (n *Navigation) GoTo(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(n.dir, path)
	}
	path = filepath.Clean(path)

	snap, err := n.load(path)
	if err != nil {
		return err
	}
	n.commit(path, snap)
	return nil
}

func (n *Navigation) selectPath(path string) {
	idx := n.snap.indexOf(path)
	if idx < 0 {
		return
	}
	if pos := slices.Index(n.visible, idx); pos >= 0 {
		n.cursor.Set(pos, len(n.visible))
	}
}
