package fileops

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/LFroesch/burrow/internal/logger"
)

// Build output, dependency and cache directories that are never worth
// descending into during a tree scan.
var skipDirs = map[string]bool{
	// Dependencies
	"node_modules": true, "vendor": true, "bower_components": true,
	// Build outputs
	"dist": true, "build": true, "target": true, "out": true, "bin": true, "obj": true,
	// Caches
	"__pycache__": true, "coverage": true,
	// Python environments
	"venv": true, "env": true, "virtualenv": true, "site-packages": true,
	// Platform junk
	"$Recycle.Bin": true, "$RECYCLE.BIN": true, "System Volume Information": true,
}

// ScanTree walks root once and returns every file and directory below it,
// in walk order. Hidden entries, denylisted directories and directories
// matching the user's skip patterns are pruned. The walk stops early when
// ctx is cancelled or the depth/file limits are hit.
func (f *FS) ScanTree(ctx context.Context, root string) ([]Entry, error) {
	logger.Debug("Starting tree scan in %s", root)
	startTime := time.Now()

	var entries []Entry
	scannedCount := 0
	skippedDirs := 0
	permissionErrors := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			if errors.Is(err, fs.ErrPermission) {
				permissionErrors++
				return nil
			}
			logger.Warn("WalkDir error at %s: %v", path, err)
			return nil
		}

		if path == root {
			return nil
		}

		scannedCount++
		if scannedCount > f.maxFilesScanned {
			logger.Warn("Hit max files scanned limit (%d)", f.maxFilesScanned)
			return filepath.SkipAll
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() && f.skipDir(path, name) {
			skippedDirs++
			return filepath.SkipDir
		}

		relPath, _ := filepath.Rel(root, path)
		depth := strings.Count(relPath, string(filepath.Separator))
		if depth >= f.maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		var entry Entry
		if d.Type()&fs.ModeSymlink != 0 {
			entry, err = statEntry(path, name)
		} else {
			entry, err = entryFromDirEntry(path, d)
		}
		if err != nil {
			return nil
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	if permissionErrors > 0 {
		logger.Info("Scan complete: %d entries, %d dirs skipped, %d permission errors in %v", len(entries), skippedDirs, permissionErrors, time.Since(startTime))
	} else {
		logger.Info("Scan complete: %d entries, %d dirs skipped in %v", len(entries), skippedDirs, time.Since(startTime))
	}
	return entries, nil
}

func (f *FS) skipDir(path, name string) bool {
	if skipDirs[name] {
		return true
	}
	for _, g := range f.skip {
		if g.Match(name) {
			return true
		}
	}
	if len(f.skipPaths) > 0 {
		slashed := filepath.ToSlash(path)
		for _, g := range f.skipPaths {
			if g.Match(slashed) {
				return true
			}
		}
	}
	return false
}

func entryFromDirEntry(path string, d fs.DirEntry) (Entry, error) {
	info, err := d.Info()
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Name:    d.Name(),
		Path:    path,
		IsDir:   d.IsDir(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}, nil
}
