package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/burrow/internal/browser"
	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/git"
	"github.com/LFroesch/burrow/internal/logger"
)

type scanDoneMsg struct{ result browser.ScanResult }

// dirChangedMsg arrives when the watcher saw the listed directory change.
type dirChangedMsg struct{ dir string }

type gitStatusMsg struct {
	dir    string
	status git.Status
	err    error
}

type editorDoneMsg struct {
	path string
	err  error
}

type externalOpenedMsg struct {
	path string
	err  error
}

type statusExpiredMsg struct{}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("Burrow - "+m.ctrl.Dir()),
		m.loadGitStatus(),
		m.waitForDirChange(),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.clearExpiredStatus(time.Now())

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width == m.width && msg.Height == m.height {
			return m, nil
		}
		m.width = msg.Width
		m.height = msg.Height
		m.query.Width = m.getSafeWidth() / 2
		m.clampScroll()
		m.updatePreview()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case scanDoneMsg:
		current := m.ctrl.Mode() == browser.ModeFuzzyFind && m.ctrl.Fuzzy().Pending(msg.result.ID)
		cmd := m.finish(m.ctrl.Dir(), func() tea.Cmd {
			return m.applyEffect(m.ctrl.CompleteScan(msg.result))
		})
		// A stale result leaves the newer scan running.
		if current {
			m.cancelScan()
		}
		return m, cmd

	case spinner.TickMsg:
		if !m.ctrl.Scanning() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dirChangedMsg:
		if msg.dir == m.ctrl.Dir() {
			logger.Debug("Change detected in %s", msg.dir)
			m.previews.Invalidate()
			return m, tea.Batch(
				m.finish(m.ctrl.Dir(), func() tea.Cmd { return m.applyEffect(m.ctrl.Refresh()) }),
				m.loadGitStatus(),
				m.waitForDirChange(),
			)
		}
		return m, m.waitForDirChange()

	case gitStatusMsg:
		if msg.dir != m.ctrl.Dir() {
			return m, nil
		}
		if msg.err != nil {
			logger.Warn("Git status for %s: %v", msg.dir, msg.err)
		}
		m.gitStatus = msg.status
		return m, nil

	case editorDoneMsg:
		m.previews.Invalidate()
		if msg.err != nil {
			m.updatePreview()
			m.setError(msg.err)
			return m, expireStatus(errorStatusDuration)
		}
		return m, tea.Batch(
			m.finish(m.ctrl.Dir(), func() tea.Cmd { return m.applyEffect(m.ctrl.Refresh()) }),
			m.loadGitStatus(),
		)

	case externalOpenedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, expireStatus(errorStatusDuration)
		}
		m.setStatus("Opened %s", displayName(msg.path))
		return m, expireStatus(statusDuration)

	case statusExpiredMsg:
		return m, nil
	}

	return m, nil
}

// handleKey gives host keys a chance first and feeds everything else to
// the controller one key at a time.
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return nil
	}

	if m.ctrl.Mode() == browser.ModeExplore {
		switch msg.String() {
		case "?":
			m.showHelp = true
			return nil
		case "p":
			m.showPreview = !m.showPreview
			m.updatePreview()
			return nil
		}
	}

	return m.finish(m.ctrl.Dir(), func() tea.Cmd {
		var cmds []tea.Cmd
		for _, k := range translateKey(msg) {
			eff := m.ctrl.HandleKey(k)
			cmds = append(cmds, m.applyEffect(eff))
			if eff.Kind == browser.EffectQuit || eff.Kind == browser.EffectOpenFile {
				break
			}
		}
		return tea.Batch(cmds...)
	})
}

// finish runs step and then brings the host in line with whatever the
// controller did: scan lifetime, directory watch, git markers, scroll.
func (m *model) finish(prevDir string, step func() tea.Cmd) tea.Cmd {
	cmd := step()
	cmds := []tea.Cmd{cmd}

	if m.ctrl.Mode() != browser.ModeFuzzyFind {
		m.cancelScan()
	}
	m.previews.SetShowHidden(m.ctrl.Navigation().ShowHidden())

	if dir := m.ctrl.Dir(); dir != prevDir {
		m.scrollOffset = 0
		m.gitStatus = git.Status{}
		if m.watcher != nil {
			if err := m.watcher.Watch(dir); err != nil {
				logger.Warn("%v", err)
			}
		}
		cmds = append(cmds, m.loadGitStatus(), tea.SetWindowTitle("Burrow - "+dir))
	}

	m.syncQuery()
	m.clampScroll()
	m.updatePreview()
	return tea.Batch(cmds...)
}

// applyEffect carries out what the controller asked for.
func (m *model) applyEffect(eff browser.Effect) tea.Cmd {
	if eff.Err != nil {
		m.setError(eff.Err)
		return expireStatus(errorStatusDuration)
	}

	switch eff.Kind {
	case browser.EffectOpenFile:
		return m.editFile(eff.Path)
	case browser.EffectOpenExternal:
		return m.openExternal(eff.Path)
	case browser.EffectCopyPath:
		return m.copyPath(eff.Path)
	case browser.EffectQuit:
		m.shutdown()
		return tea.Quit
	case browser.EffectScan:
		return m.startScan(eff.Scan)
	}
	return nil
}

// startScan walks the tree off the UI goroutine. Starting a new scan
// cancels the previous one; its late result is dropped by the controller.
func (m *model) startScan(req browser.ScanRequest) tea.Cmd {
	m.cancelScan()
	ctx, cancel := context.WithCancel(context.Background())
	m.scanCancel = cancel

	gw := m.fs
	return tea.Batch(
		func() tea.Msg {
			return scanDoneMsg{result: req.Run(ctx, gw)}
		},
		m.spinner.Tick,
	)
}

func (m *model) loadGitStatus() tea.Cmd {
	dir := m.ctrl.Dir()
	return func() tea.Msg {
		status, err := git.Load(context.Background(), dir)
		return gitStatusMsg{dir: dir, status: status, err: err}
	}
}

// waitForDirChange blocks on the watcher for the next change. It returns
// nil when watching is off.
func (m *model) waitForDirChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForWatcher(m.watcher)
}

func waitForWatcher(w *fileops.Watcher) tea.Cmd {
	return func() tea.Msg {
		dir, ok := <-w.Events()
		if !ok {
			return nil
		}
		return dirChangedMsg{dir: dir}
	}
}

func expireStatus(after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}
