package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/LFroesch/burrow/internal/logger"
)

// Options tune the recursive scan. Zero values fall back to the defaults.
type Options struct {
	SkipPatterns    []string // globs over directory names ("Python*") or path tails ("Android/Sdk")
	MaxDepth        int
	MaxFilesScanned int
}

const (
	defaultMaxDepth        = 12
	defaultMaxFilesScanned = 200000
)

// FS is the filesystem gateway: it only ever reads.
type FS struct {
	skip            []glob.Glob
	skipPaths       []glob.Glob
	maxDepth        int
	maxFilesScanned int
}

// New compiles the skip patterns. Invalid patterns are logged and ignored.
func New(opts Options) *FS {
	fsys := &FS{
		maxDepth:        opts.MaxDepth,
		maxFilesScanned: opts.MaxFilesScanned,
	}
	if fsys.maxDepth <= 0 {
		fsys.maxDepth = defaultMaxDepth
	}
	if fsys.maxFilesScanned <= 0 {
		fsys.maxFilesScanned = defaultMaxFilesScanned
	}

	for _, pattern := range opts.SkipPatterns {
		if strings.Contains(pattern, "/") {
			g, err := glob.Compile("**/"+strings.TrimPrefix(pattern, "/"), '/')
			if err != nil {
				logger.Warn("Ignoring invalid skip pattern %q: %v", pattern, err)
				continue
			}
			fsys.skipPaths = append(fsys.skipPaths, g)
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			logger.Warn("Ignoring invalid skip pattern %q: %v", pattern, err)
			continue
		}
		fsys.skip = append(fsys.skip, g)
	}
	return fsys
}

// ReadDirectory lists dir in directory order. Symlinks are resolved so a
// link to a directory can be entered; broken links show up as files.
func (f *FS) ReadDirectory(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		itemPath := filepath.Join(dir, de.Name())
		entry, err := statEntry(itemPath, de.Name())
		if err != nil {
			logger.Warn("Failed to read metadata for %s: %v", itemPath, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func statEntry(itemPath, name string) (Entry, error) {
	linfo, err := os.Lstat(itemPath)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Name:    name,
		Path:    itemPath,
		IsDir:   linfo.IsDir(),
		Size:    linfo.Size(),
		Mode:    linfo.Mode(),
		ModTime: linfo.ModTime(),
	}

	if linfo.Mode()&os.ModeSymlink != 0 {
		entry.IsSymlink = true
		if target, err := os.Stat(itemPath); err == nil {
			entry.IsDir = target.IsDir()
			entry.Size = target.Size()
			entry.Mode = target.Mode()
			entry.ModTime = target.ModTime()
		}
	}
	return entry, nil
}
