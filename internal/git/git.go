// Package git reads the branch and working-tree changes around a directory
// for the header and the list markers.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const timeout = 2 * time.Second

// Status is a snapshot of the repository containing a directory. The zero
// value means "not in a repository".
type Status struct {
	Root     string
	Branch   string
	modified map[string]bool // absolute paths of changed files and their parents
}

// InRepo reports whether the directory belonged to a work tree.
func (s Status) InRepo() bool {
	return s.Root != ""
}

// IsModified reports whether path, or anything below it, has uncommitted
// changes.
func (s Status) IsModified(path string) bool {
	return s.modified[filepath.Clean(path)]
}

// Changed is the number of paths marked modified, parents included.
func (s Status) Changed() int {
	return len(s.modified)
}

// Load queries git for dir. Outside a work tree it returns the zero Status
// and no error.
func Load(ctx context.Context, dir string) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	root, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return Status{}, nil
	}
	root = strings.TrimSpace(root)

	branch, err := run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		// fresh repository without commits
		branch = ""
	}

	out, err := run(ctx, dir, "status", "--porcelain", "-z")
	if err != nil {
		return Status{Root: root, Branch: strings.TrimSpace(branch)}, fmt.Errorf("git status in %s: %w", dir, err)
	}

	return Status{
		Root:     root,
		Branch:   strings.TrimSpace(branch),
		modified: markParents(root, parsePorcelain(out)),
	}, nil
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return string(out), nil
}

// parsePorcelain returns the repository-relative paths in the output of
// `git status --porcelain -z`. Renames and copies are followed by their
// source path, which is skipped.
func parsePorcelain(out string) []string {
	var paths []string
	records := strings.Split(out, "\x00")
	for i := 0; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 4 {
			continue
		}
		status := rec[:2]
		paths = append(paths, strings.TrimSuffix(rec[3:], "/"))
		if status[0] == 'R' || status[0] == 'C' {
			i++
		}
	}
	return paths
}

func markParents(root string, rel []string) map[string]bool {
	marked := make(map[string]bool, len(rel)*2)
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		for p != root && !marked[p] {
			marked[p] = true
			parent := filepath.Dir(p)
			if parent == p {
				break
			}
			p = parent
		}
	}
	return marked
}
