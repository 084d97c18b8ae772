package browser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/burrow/internal/fileops"
)

func newNav(t *testing.T, fs *fakeFS, dir string) *Navigation {
	t.Helper()
	n, err := NewNavigation(fs, dir, false)
	require.NoError(t, err)
	return n
}

func TestNewNavigationFailsOnUnreadableStart(t *testing.T) {
	_, err := NewNavigation(newFakeFS(), "/missing", false)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "/missing", ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNavigationListing(t *testing.T) {
	n := newNav(t, projectFS(), "/proj")
	assert.Equal(t, "/proj", n.Dir())
	assert.Equal(t, []string{"dirA", "src", "file1.txt", "file2.txt"}, entryNames(n.Visible()))
	assert.Equal(t, 0, n.SelectedIndex())
}

func TestEnterSelectedResets(t *testing.T) {
	n := newNav(t, projectFS(), "/proj")
	n.EditQuery(func(q *Query) { q.Append('d') })
	require.Equal(t, []string{"dirA"}, entryNames(n.Visible()))

	require.NoError(t, n.EnterSelected())
	assert.Equal(t, "/proj/dirA", n.Dir())
	assert.Equal(t, "", n.Query())
	assert.Equal(t, 0, n.SelectedIndex())
	assert.Equal(t, []string{"inner.go"}, entryNames(n.Visible()))
}

func TestEnterSelectedFailures(t *testing.T) {
	fs := projectFS()
	n := newNav(t, fs, "/proj")

	n.Bottom()
	before := n.Visible()
	assert.ErrorIs(t, n.EnterSelected(), ErrNotADirectory)
	assert.Equal(t, "/proj", n.Dir())
	assert.Equal(t, before, n.Visible())
	assert.Equal(t, 3, n.SelectedIndex())

	n.EditQuery(func(q *Query) { q.Append('#') })
	assert.ErrorIs(t, n.EnterSelected(), ErrNoSelection)

	n.ClearQuery()
	n.Top()
	fs.fail["/proj/dirA"] = os.ErrPermission
	err := n.EnterSelected()
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "/proj", n.Dir(), "failed read leaves the listing in place")
	assert.Len(t, n.Visible(), 4)
}

func TestGoToParentSelectsChild(t *testing.T) {
	n := newNav(t, projectFS(), "/proj/src")
	require.NoError(t, n.GoToParent())
	assert.Equal(t, "/proj", n.Dir())

	sel, ok := n.Selected()
	require.True(t, ok)
	assert.Equal(t, "src", sel.Name)

	require.NoError(t, n.GoToParent())
	assert.Equal(t, "/", n.Dir())
	assert.ErrorIs(t, n.GoToParent(), ErrAtRoot)
	assert.Equal(t, "/", n.Dir())
}

func TestGoToRelative(t *testing.T) {
	n := newNav(t, projectFS(), "/proj")
	require.NoError(t, n.GoTo("src/modes"))
	assert.Equal(t, "/proj/src/modes", n.Dir())
	require.NoError(t, n.GoTo("../.."))
	assert.Equal(t, "/proj", n.Dir())
}

func TestRefreshKeepsFilterAndSelection(t *testing.T) {
	fs := projectFS()
	n := newNav(t, fs, "/proj")
	n.EditQuery(func(q *Query) {
		for _, r := range "file" {
			q.Append(r)
		}
	})
	n.MoveDown()
	require.Equal(t, "file2.txt", mustSelected(t, n).Name)

	fs.dir("/proj", "dirA/", "file0.txt", "file1.txt", "file2.txt", "src/")
	require.NoError(t, n.Refresh())
	assert.Equal(t, "file", n.Query())
	assert.Equal(t, []string{"file0.txt", "file1.txt", "file2.txt"}, entryNames(n.Visible()))
	assert.Equal(t, "file2.txt", mustSelected(t, n).Name)

	fs.dir("/proj", "dirA/", "file0.txt")
	require.NoError(t, n.Refresh())
	assert.Equal(t, 0, n.SelectedIndex(), "cursor clamps when its entry is gone")

	reads := fs.reads
	fs.fail["/proj"] = errors.New("io")
	assert.Error(t, n.Refresh())
	assert.Equal(t, reads+1, fs.reads)
	assert.Equal(t, []string{"file0.txt"}, entryNames(n.Visible()))
}

func TestToggleHidden(t *testing.T) {
	fs := projectFS()
	n := newNav(t, fs, "/proj")
	require.NoError(t, n.ToggleHidden())
	assert.True(t, n.ShowHidden())
	assert.Contains(t, entryNames(n.Visible()), ".hidden")

	fs.fail["/proj"] = os.ErrPermission
	assert.Error(t, n.ToggleHidden())
	assert.True(t, n.ShowHidden(), "flag is restored when the re-read fails")
}

func mustSelected(t *testing.T, n *Navigation) fileops.Entry {
	t.Helper()
	e, ok := n.Selected()
	require.True(t, ok)
	return e
}

func diskTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"src/pkg", "docs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	for _, file := range []string{"README.md", "src/main.go", "src/pkg/util.go", "Zeta.txt", "alpha.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte("x"), 0644))
	}
	return root
}

func TestRelativeStartIsResolved(t *testing.T) {
	root := diskTree(t)
	t.Chdir(root)

	n, err := NewNavigation(fileops.New(fileops.Options{}), "src", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src"), n.Dir())
	for _, e := range n.Visible() {
		assert.True(t, filepath.IsAbs(e.Path), e.Path)
	}

	require.Equal(t, "pkg", mustSelected(t, n).Name)
	require.NoError(t, n.EnterSelected())
	assert.Equal(t, filepath.Join(root, "src", "pkg"), n.Dir())

	dot, err := NewNavigation(fileops.New(fileops.Options{}), ".", false)
	require.NoError(t, err)
	assert.Equal(t, root, dot.Dir())
	require.NoError(t, dot.GoToParent())
	assert.Equal(t, filepath.Dir(root), dot.Dir())
	assert.Equal(t, filepath.Base(root), mustSelected(t, dot).Name)
}

func TestRefreshIsIdempotent(t *testing.T) {
	root := diskTree(t)
	n, err := NewNavigation(fileops.New(fileops.Options{}), root, false)
	require.NoError(t, err)
	n.MoveDown()
	n.MoveDown()

	require.NoError(t, n.Refresh())
	entries := n.Snapshot().Entries
	visible := n.Visible()
	selected := n.SelectedIndex()

	require.NoError(t, n.Refresh())
	assert.Equal(t, entries, n.Snapshot().Entries)
	assert.Equal(t, visible, n.Visible())
	assert.Equal(t, selected, n.SelectedIndex())
	assert.Equal(t, []string{"docs", "src", "alpha.txt", "README.md", "Zeta.txt"}, entryNames(n.Visible()))
}
