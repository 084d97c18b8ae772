package main

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/burrow/internal/browser"
	"github.com/LFroesch/burrow/internal/editor"
	"github.com/LFroesch/burrow/internal/logger"
)

// editFile suspends the UI and runs the editor on path in the foreground.
func (m *model) editFile(path string) tea.Cmd {
	cmd, err := m.launcher.Command(path)
	if err != nil {
		m.setError(err)
		return expireStatus(errorStatusDuration)
	}
	logger.Info("Opening %s in %s", path, cmd.Args[0])
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{path: path, err: editor.Failed(cmd, path, err)}
	})
}

func (m *model) openExternal(path string) tea.Cmd {
	launcher := m.launcher
	return func() tea.Msg {
		return externalOpenedMsg{path: path, err: launcher.OpenExternal(path)}
	}
}

func (m *model) copyPath(path string) tea.Cmd {
	if err := m.copyToClipboard(path); err != nil {
		logger.Warn("Clipboard write failed: %v", err)
		m.setStatus("Failed to copy: %v", err)
		m.statusIsError = true
		return expireStatus(errorStatusDuration)
	}
	m.setStatus("Copied: %s", path)
	return expireStatus(statusDuration)
}

// errorText is the status-bar wording for an error.
func errorText(err error) string {
	var ioErr *browser.IOError
	var launchErr *editor.LaunchError
	switch {
	case errors.Is(err, browser.ErrNoSelection):
		return "Nothing selected"
	case errors.Is(err, browser.ErrAtRoot):
		return "Already at the root directory"
	case errors.Is(err, browser.ErrNotADirectory):
		return "Not a directory"
	case errors.Is(err, editor.ErrNoEditor):
		return "No editor found: set $EDITOR or editor in the config"
	case errors.As(err, &ioErr):
		switch {
		case errors.Is(ioErr.Err, os.ErrPermission):
			return "Permission denied: " + displayName(ioErr.Path)
		case errors.Is(ioErr.Err, os.ErrNotExist):
			return "No longer exists: " + displayName(ioErr.Path)
		}
		return ioErr.Error()
	case errors.As(err, &launchErr):
		return launchErr.Editor + " failed: " + launchErr.Err.Error()
	}
	return err.Error()
}

func displayName(path string) string {
	if base := filepath.Base(path); base != "." && base != string(filepath.Separator) {
		return base
	}
	return path
}
