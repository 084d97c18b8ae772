package main

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/burrow/internal/browser"
	"github.com/LFroesch/burrow/internal/config"
	"github.com/LFroesch/burrow/internal/editor"
	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/git"
	"github.com/LFroesch/burrow/internal/logger"
	"github.com/LFroesch/burrow/internal/preview"
)

// Terminal dimension constants
const (
	minTerminalWidth  = 60 // Minimum usable width
	minTerminalHeight = 20 // Minimum usable height
	minPreviewWidth   = 80 // Below this the preview panel is hidden
	uiOverhead        = 7  // Header (1) + status (1) + borders (2) + panel title (1) + padding (2)
)

const (
	statusDuration      = 2 * time.Second
	errorStatusDuration = 4 * time.Second
)

type model struct {
	ctrl     *browser.Controller
	fs       *fileops.FS
	config   *config.Config
	previews *preview.Reader
	launcher *editor.Launcher
	watcher  *fileops.Watcher // nil when watching is off

	keys      exploreKeys
	queryKeys queryKeys
	help      help.Model
	spinner   spinner.Model
	query     textinput.Model // display only; the controller owns the text

	width        int
	height       int
	scrollOffset int
	showPreview  bool
	showHelp     bool

	preview    preview.Preview // read in Update, rendered by View
	hasPreview bool

	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	gitStatus  git.Status
	scanCancel context.CancelFunc

	copyToClipboard func(string) error
}

// newModel lists dir and wires the collaborators the host needs. It fails
// only when dir itself cannot be listed.
func newModel(cfg *config.Config, dir string) (*model, error) {
	fsys := fileops.New(fileops.Options{
		SkipPatterns:    cfg.SkipDirectories,
		MaxDepth:        cfg.MaxDepth,
		MaxFilesScanned: cfg.MaxFilesScanned,
	})

	nav, err := browser.NewNavigation(fsys, dir, cfg.ShowHidden)
	if err != nil {
		return nil, err
	}

	query := textinput.New()
	query.Prompt = ""
	query.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	query.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	query.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	query.Cursor.SetMode(cursor.CursorStatic)
	query.Focus()

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("214"))),
	)

	m := &model{
		ctrl:   browser.NewController(nav),
		fs:     fsys,
		config: cfg,
		previews: preview.NewReader(fsys, preview.Options{
			SyntaxHighlight: cfg.SyntaxHighlight,
			ShowHidden:      cfg.ShowHidden,
		}),
		launcher:        editor.New(cfg.Editor),
		keys:            defaultExploreKeys(),
		queryKeys:       defaultQueryKeys(),
		help:            help.New(),
		spinner:         spin,
		query:           query,
		showPreview:     cfg.PreviewEnabled,
		copyToClipboard: clipboard.WriteAll,
	}

	if cfg.Watch {
		w, err := fileops.NewWatcher()
		if err != nil {
			logger.Warn("Directory watching disabled: %v", err)
		} else {
			m.watcher = w
			if err := w.Watch(nav.Dir()); err != nil {
				logger.Warn("%v", err)
			}
		}
	}

	logger.Info("Browsing %s", nav.Dir())
	return m, nil
}

func (m *model) getSafeWidth() int {
	if m.width < minTerminalWidth {
		return minTerminalWidth
	}
	return m.width
}

func (m *model) getSafeHeight() int {
	if m.height < minTerminalHeight {
		return minTerminalHeight
	}
	return m.height
}

// helpView is the key help footer for the active mode.
func (m *model) helpView() string {
	m.help.Width = m.getSafeWidth()
	m.help.ShowAll = m.showHelp
	if m.ctrl.Mode() == browser.ModeExplore {
		return m.help.View(m.keys)
	}
	return m.help.View(m.queryKeys)
}

// getContentHeight is the number of list rows between the panel title and
// the bottom border.
func (m *model) getContentHeight() int {
	h := m.getSafeHeight() - uiOverhead - lipgloss.Height(m.helpView())
	if h < 3 {
		h = 3
	}
	return h
}

// panelWidths splits the screen between list and preview. The preview
// width is zero when it is hidden.
func (m *model) panelWidths() (list, prev int) {
	width := m.getSafeWidth()
	if !m.showPreview || width < minPreviewWidth {
		return width, 0
	}
	prev = int(float64(width) * m.config.PanelWidthRatio)
	return width - prev, prev
}

// updatePreview reads the selected entry at the current panel width.
// View only renders what was read here.
func (m *model) updatePreview() {
	_, width := m.panelWidths()
	sel, ok := m.ctrl.Selected()
	if width == 0 || !ok {
		m.preview = preview.Preview{}
		m.hasPreview = false
		return
	}
	m.preview = m.previews.Read(sel, width-6)
	m.hasPreview = true
}

// scrollWindow returns the rows [start, end) of a list of total rows shown
// in height lines with the cursor kept on screen. When the list does not
// fit, two lines are kept for the scroll indicators.
func scrollWindow(cursor, offset, total, height int) (start, end int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	fit := height - 2
	if fit < 1 {
		fit = 1
	}
	if cursor < 0 {
		cursor = 0
	}

	start = offset
	if cursor < start {
		start = cursor
	}
	if cursor >= start+fit {
		start = cursor - fit + 1
	}
	if start > total-fit {
		start = total - fit
	}
	if start < 0 {
		start = 0
	}
	return start, start + fit
}

func (m *model) clampScroll() {
	m.scrollOffset, _ = scrollWindow(m.ctrl.SelectedIndex(), m.scrollOffset, m.ctrl.VisibleLen(), m.getContentHeight())
}

// syncQuery mirrors the controller's query into the display input.
func (m *model) syncQuery() {
	if m.query.Value() == m.ctrl.QueryText() {
		return
	}
	m.query.SetValue(m.ctrl.QueryText())
	m.query.CursorEnd()
}

func (m *model) setStatus(format string, args ...any) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusIsError = false
	m.statusExpiry = time.Now().Add(statusDuration)
}

func (m *model) setError(err error) {
	m.statusMsg = errorText(err)
	m.statusIsError = true
	m.statusExpiry = time.Now().Add(errorStatusDuration)
}

func (m *model) clearExpiredStatus(now time.Time) {
	if m.statusMsg != "" && now.After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

func (m *model) cancelScan() {
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
}

// shutdown releases the scan and the watcher before the program exits.
func (m *model) shutdown() {
	m.cancelScan()
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			logger.Warn("Failed to close watcher: %v", err)
		}
	}
}
