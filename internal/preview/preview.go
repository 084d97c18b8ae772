// Package preview renders the right-hand panel: the head of a text file,
// highlighted when possible, or the children of a directory.
package preview

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/LFroesch/burrow/internal/browser"
	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/logger"
	"github.com/LFroesch/burrow/internal/utils"
)

const (
	MaxFileSize     = 1024 * 1024
	MaxLines        = 100
	MaxChildren     = 50
	maxCacheEntries = 64
	tabWidth        = 4
)

// Kind classifies what a Preview shows.
type Kind int

const (
	KindText Kind = iota
	KindMarkdown
	KindDirectory
	KindEmpty
	KindBinary
	KindTooLarge
	KindInvalidUTF8
	KindError
)

// Preview is a rendered panel. Lines may carry ANSI styling and are already
// cut to the requested width.
type Preview struct {
	Kind  Kind
	Title string
	Lines []string
	More  int // lines or children not shown
}

// DirReader lists a directory; fileops.FS satisfies it.
type DirReader interface {
	ReadDirectory(dir string) ([]fileops.Entry, error)
}

// Options control rendering.
type Options struct {
	SyntaxHighlight bool
	ShowHidden      bool
	Style           string // chroma style name
}

type cached struct {
	path    string
	size    int64
	modTime time.Time
	width   int
	preview Preview
}

// Reader builds previews and remembers the most recent ones. A cached
// preview is reused only while the entry's size and mtime are unchanged.
// It is not safe for concurrent use.
type Reader struct {
	dirs  DirReader
	opts  Options
	cache map[uint64]cached
	order []uint64

	highlighter *highlighter
}

func NewReader(dirs DirReader, opts Options) *Reader {
	if opts.Style == "" {
		opts.Style = "monokai"
	}
	return &Reader{
		dirs:        dirs,
		opts:        opts,
		cache:       make(map[uint64]cached),
		highlighter: newHighlighter(opts.Style),
	}
}

// SetShowHidden changes whether directory previews list dotfiles.
func (r *Reader) SetShowHidden(show bool) {
	if r.opts.ShowHidden != show {
		r.opts.ShowHidden = show
		r.Invalidate()
	}
}

// Invalidate drops every cached preview.
func (r *Reader) Invalidate() {
	clear(r.cache)
	r.order = r.order[:0]
}

// Read returns the preview of e cut to width columns.
func (r *Reader) Read(e fileops.Entry, width int) Preview {
	key := xxhash.Sum64String(e.Path)
	if c, ok := r.cache[key]; ok && c.path == e.Path && c.size == e.Size && c.modTime.Equal(e.ModTime) && c.width == width {
		return c.preview
	}

	var p Preview
	if e.IsDir {
		p = r.readDirectory(e)
	} else {
		p = r.readFile(e, width)
	}
	p.Lines = fit(p.Lines, width)

	r.store(key, cached{path: e.Path, size: e.Size, modTime: e.ModTime, width: width, preview: p})
	return p
}

func (r *Reader) store(key uint64, c cached) {
	if _, ok := r.cache[key]; !ok {
		if len(r.order) >= maxCacheEntries {
			delete(r.cache, r.order[0])
			r.order = r.order[1:]
		}
		r.order = append(r.order, key)
	}
	r.cache[key] = c
}

func (r *Reader) readDirectory(e fileops.Entry) Preview {
	entries, err := r.dirs.ReadDirectory(e.Path)
	if err != nil {
		return Preview{Kind: KindError, Title: "Cannot read directory", Lines: []string{err.Error()}}
	}
	snap := browser.NewSnapshot(e.Path, entries, r.opts.ShowHidden)
	if snap.Len() == 0 {
		return Preview{Kind: KindEmpty, Title: "📁 Empty directory"}
	}

	p := Preview{Kind: KindDirectory, Title: fmt.Sprintf("📁 %d items", snap.Len())}
	for i, child := range snap.Entries {
		if i == MaxChildren {
			p.More = snap.Len() - MaxChildren
			break
		}
		line := utils.Icon(child) + " " + child.Name
		if child.HasSize() {
			line += " (" + utils.FormatFileSize(child.Size) + ")"
		}
		p.Lines = append(p.Lines, line)
	}
	return p
}

func (r *Reader) readFile(e fileops.Entry, width int) Preview {
	if e.HasSize() && e.Size > MaxFileSize {
		return Preview{
			Kind:  KindTooLarge,
			Title: "📄 File too large to preview",
			Lines: []string{"Size: " + utils.FormatFileSize(e.Size), "Open it in an editor instead."},
		}
	}

	data, err := readHead(e.Path)
	if err != nil {
		logger.Debug("Preview of %s failed: %v", e.Path, err)
		return Preview{Kind: KindError, Title: "Cannot read file", Lines: []string{err.Error()}}
	}
	if len(data) > MaxFileSize {
		return Preview{
			Kind:  KindTooLarge,
			Title: "📄 File too large to preview",
			Lines: []string{"Open it in an editor instead."},
		}
	}
	if isBinary(data) {
		return Preview{
			Kind:  KindBinary,
			Title: "🔧 Binary file",
			Lines: []string{fmt.Sprintf("%d bytes, not shown as text.", len(data))},
		}
	}
	if !utf8.Valid(data) {
		return Preview{
			Kind:  KindInvalidUTF8,
			Title: "⚠️ Invalid UTF-8",
			Lines: []string{"The file is not UTF-8 encoded and cannot be displayed."},
		}
	}

	lines := splitLines(string(data))
	p := Preview{Kind: KindText, Title: "📝 " + e.Name}
	if len(lines) > MaxLines {
		p.More = len(lines) - MaxLines
		lines = lines[:MaxLines]
	}
	text := expandTabs(strings.Join(lines, "\n"))

	if !r.opts.SyntaxHighlight {
		p.Lines = strings.Split(text, "\n")
		return p
	}
	if utils.IsMarkdown(e.Name) {
		if rendered, ok := r.highlighter.markdown(text, width); ok {
			p.Kind = KindMarkdown
			p.Lines = rendered
			return p
		}
	}
	p.Lines = r.highlighter.code(e.Name, text)
	return p
}

// readHead reads up to one byte past MaxFileSize so an entry whose size
// was stale is still caught.
func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxFileSize+1))
}

// isBinary reports a NUL or any control byte other than newline, carriage
// return and tab.
func isBinary(data []byte) bool {
	return bytes.ContainsFunc(data, func(r rune) bool {
		return r < 32 && r != '\n' && r != '\r' && r != '\t'
	})
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func fit(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	for i, l := range lines {
		if ansi.StringWidth(l) > width {
			lines[i] = ansi.Truncate(l, width, "…")
		}
	}
	return lines
}
