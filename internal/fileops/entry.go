package fileops

import (
	"os"
	"strings"
	"time"
)

// Entry is one filesystem object as seen by a directory read or a tree scan.
// Entries are never mutated; a refresh replaces the whole slice.
type Entry struct {
	Name      string
	Path      string // absolute
	IsDir     bool
	IsSymlink bool
	Size      int64
	Mode      os.FileMode
	ModTime   time.Time
}

// HasSize reports whether Size carries a byte count. Only regular files
// (or symlinks resolving to them) have one.
func (e Entry) HasSize() bool {
	return !e.IsDir && e.Mode.IsRegular()
}

// IsHidden reports whether the entry is a dotfile.
func (e Entry) IsHidden() bool {
	return strings.HasPrefix(e.Name, ".")
}
