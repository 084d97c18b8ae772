package preview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Disable()
	os.Exit(m.Run())
}

func writeEntry(t *testing.T, dir, name string, data []byte) fileops.Entry {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	return fileops.Entry{Name: name, Path: path, Size: info.Size(), Mode: info.Mode(), ModTime: info.ModTime()}
}

func plainReader() *Reader {
	return NewReader(fileops.New(fileops.Options{}), Options{})
}

func TestReadText(t *testing.T) {
	e := writeEntry(t, t.TempDir(), "notes.txt", []byte("one\r\ntwo\n\tthree\n"))
	p := plainReader().Read(e, 0)
	assert.Equal(t, KindText, p.Kind)
	assert.Equal(t, []string{"one", "two", "    three"}, p.Lines)
	assert.Zero(t, p.More)
}

func TestReadCapsLines(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 130; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	e := writeEntry(t, t.TempDir(), "long.txt", []byte(sb.String()))

	p := plainReader().Read(e, 0)
	assert.Len(t, p.Lines, MaxLines)
	assert.Equal(t, 30, p.More)
	assert.Equal(t, "line 99", p.Lines[MaxLines-1])
}

func TestReadRejectsUnprintable(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data []byte
		want Kind
	}{
		{"nul.bin", []byte("ab\x00cd"), KindBinary},
		{"bell.txt", []byte("ding\x07"), KindBinary},
		{"latin1.txt", []byte("caf\xe9\n"), KindInvalidUTF8},
		{"empty.txt", nil, KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plainReader().Read(writeEntry(t, dir, tt.name, tt.data), 0)
			assert.Equal(t, tt.want, p.Kind)
		})
	}
}

func TestReadTooLarge(t *testing.T) {
	e := writeEntry(t, t.TempDir(), "big.log", make([]byte, 10))
	e.Size = MaxFileSize + 1
	p := plainReader().Read(e, 0)
	assert.Equal(t, KindTooLarge, p.Kind)

	// a stale size does not let an oversized file through
	big := writeEntry(t, t.TempDir(), "grown.log", []byte(strings.Repeat("a", MaxFileSize+10)))
	big.Size = 10
	assert.Equal(t, KindTooLarge, plainReader().Read(big, 0).Kind)
}

func TestReadMissingFile(t *testing.T) {
	p := plainReader().Read(fileops.Entry{Name: "gone", Path: filepath.Join(t.TempDir(), "gone"), Mode: 0644}, 0)
	assert.Equal(t, KindError, p.Kind)
}

func TestReadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeEntry(t, dir, "b.txt", []byte("hi"))
	writeEntry(t, dir, ".hidden", nil)
	for i := 0; i < MaxChildren+5; i++ {
		writeEntry(t, dir, fmt.Sprintf("f%03d", i), nil)
	}

	r := plainReader()
	p := r.Read(fileops.Entry{Name: filepath.Base(dir), Path: dir, IsDir: true}, 0)
	assert.Equal(t, KindDirectory, p.Kind)
	require.Len(t, p.Lines, MaxChildren)
	assert.Equal(t, "📁 sub", p.Lines[0])
	assert.Equal(t, "📄 b.txt (2 B)", p.Lines[1])
	assert.Equal(t, 7, p.More)
	for _, l := range p.Lines {
		assert.NotContains(t, l, ".hidden")
	}

	empty := t.TempDir()
	assert.Equal(t, KindEmpty, r.Read(fileops.Entry{Path: empty, IsDir: true}, 0).Kind)
}

type countingDirs struct {
	reads int
	err   error
}

func (c *countingDirs) ReadDirectory(dir string) ([]fileops.Entry, error) {
	c.reads++
	if c.err != nil {
		return nil, c.err
	}
	return []fileops.Entry{{Name: "x", Path: filepath.Join(dir, "x")}}, nil
}

func TestCacheValidation(t *testing.T) {
	dirs := &countingDirs{}
	r := NewReader(dirs, Options{})
	e := fileops.Entry{Name: "d", Path: "/d", IsDir: true, ModTime: time.Unix(100, 0)}

	r.Read(e, 40)
	r.Read(e, 40)
	assert.Equal(t, 1, dirs.reads, "unchanged entry is served from cache")

	r.Read(e, 50)
	assert.Equal(t, 2, dirs.reads, "width is part of the key")

	e.ModTime = time.Unix(200, 0)
	r.Read(e, 50)
	assert.Equal(t, 3, dirs.reads, "mtime change invalidates")

	r.SetShowHidden(true)
	r.Read(e, 50)
	assert.Equal(t, 4, dirs.reads)

	dirs.err = errors.New("denied")
	r.Invalidate()
	assert.Equal(t, KindError, r.Read(e, 50).Kind)
}

func TestCacheEvicts(t *testing.T) {
	dirs := &countingDirs{}
	r := NewReader(dirs, Options{})
	for i := 0; i < maxCacheEntries*2; i++ {
		r.Read(fileops.Entry{Path: fmt.Sprintf("/d%d", i), IsDir: true}, 10)
	}
	assert.Len(t, r.cache, maxCacheEntries)
	assert.Len(t, r.order, maxCacheEntries)
}

func TestLinesFitWidth(t *testing.T) {
	e := writeEntry(t, t.TempDir(), "main.go", []byte("package main\n\nfunc main() { println(\"a rather long line of go code\") }\n"))
	r := NewReader(fileops.New(fileops.Options{}), Options{SyntaxHighlight: true})

	p := r.Read(e, 20)
	assert.Equal(t, KindText, p.Kind)
	require.Len(t, p.Lines, 3)
	for _, l := range p.Lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 20)
	}
	assert.Equal(t, "package main", ansi.Strip(p.Lines[0]))
}

func TestMarkdownRendered(t *testing.T) {
	e := writeEntry(t, t.TempDir(), "README.md", []byte("# Title\n\nSome *text*.\n"))
	r := NewReader(fileops.New(fileops.Options{}), Options{SyntaxHighlight: true})

	p := r.Read(e, 40)
	assert.Equal(t, KindMarkdown, p.Kind)
	assert.Contains(t, ansi.Strip(strings.Join(p.Lines, "\n")), "Title")
}
