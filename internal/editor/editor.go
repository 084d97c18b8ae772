// Package editor launches the user's editor and the system opener.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/skratchdot/open-golang/open"

	"github.com/LFroesch/burrow/internal/logger"
)

// ErrNoEditor is returned when none of the candidate editors is installed.
var ErrNoEditor = errors.New("no suitable editor found ($EDITOR, vim or vi)")

// LaunchError reports an editor or opener that could not be started or
// exited unsuccessfully.
type LaunchError struct {
	Editor string
	Path   string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s failed on %s: %v", e.Editor, e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher picks an editor from, in order, the configured command, $EDITOR,
// vim and vi. Commands may carry arguments, e.g. "code -w".
type Launcher struct {
	configured string

	getenv   func(string) string
	lookPath func(string) (string, error)
	opener   func(string) error
}

func New(configured string) *Launcher {
	return &Launcher{
		configured: configured,
		getenv:     os.Getenv,
		lookPath:   exec.LookPath,
		opener:     open.Start,
	}
}

// Detect returns the argv prefix of the first installed candidate.
func (l *Launcher) Detect() ([]string, error) {
	candidates := []string{l.configured, l.getenv("EDITOR"), "vim", "vi"}
	for _, c := range candidates {
		fields := strings.Fields(c)
		if len(fields) == 0 {
			continue
		}
		if _, err := l.lookPath(fields[0]); err != nil {
			logger.Debug("Editor candidate %q not found: %v", fields[0], err)
			continue
		}
		return fields, nil
	}
	return nil, ErrNoEditor
}

// Command builds the editor invocation for path without running it, for
// hosts that need to hand the terminal over themselves.
func (l *Launcher) Command(path string) (*exec.Cmd, error) {
	argv, err := l.Detect()
	if err != nil {
		return nil, &LaunchError{Editor: "editor", Path: path, Err: err}
	}
	args := append(argv[1:len(argv):len(argv)], path)
	return exec.Command(argv[0], args...), nil
}

// Open runs the editor on path attached to the current terminal and waits
// for it to exit.
func (l *Launcher) Open(path string) error {
	cmd, err := l.Command(path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return Failed(cmd, path, cmd.Run())
}

// Failed converts the outcome of running cmd into a *LaunchError, or nil
// when err is nil.
func Failed(cmd *exec.Cmd, path string, err error) error {
	if err == nil {
		return nil
	}
	name := "editor"
	if cmd != nil && len(cmd.Args) > 0 {
		name = cmd.Args[0]
	}
	logger.Error("Editor %s failed on %s: %v", name, path, err)
	return &LaunchError{Editor: name, Path: path, Err: err}
}

// OpenExternal hands path to the desktop's default application and
// returns without waiting.
func (l *Launcher) OpenExternal(path string) error {
	if err := l.opener(path); err != nil {
		logger.Error("System opener failed on %s: %v", path, err)
		return &LaunchError{Editor: "system opener", Path: path, Err: err}
	}
	return nil
}
