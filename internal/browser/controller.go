// Package browser is the terminal-independent core of the file browser:
// three modes over one directory listing, driven one key at a time.
package browser

import (
	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/logger"
)

// Mode is the active interaction mode.
type Mode int

const (
	ModeExplore Mode = iota
	ModeSearch
	ModeFuzzyFind
)

func (m Mode) String() string {
	switch m {
	case ModeExplore:
		return "EXPLORE"
	case ModeSearch:
		return "SEARCH"
	case ModeFuzzyFind:
		return "FUZZY"
	}
	return "UNKNOWN"
}

// EffectKind says what the host has to do after a key.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectOpenFile
	EffectOpenExternal
	EffectCopyPath
	EffectQuit
	EffectScan
)

// Effect is the outcome of a key that the core cannot carry out itself.
// Err is a failure to report; the state has not changed when it is set.
type Effect struct {
	Kind EffectKind
	Path string
	Scan ScanRequest
	Err  error
}

// Controller owns the mode and dispatches keys to the state of that mode.
// It is not safe for concurrent use; background scans report back through
// CompleteScan on the owning goroutine.
type Controller struct {
	mode  Mode
	nav   *Navigation
	fuzzy FuzzyIndex
}

// NewController starts in Explore mode over nav.
func NewController(nav *Navigation) *Controller {
	return &Controller{mode: ModeExplore, nav: nav}
}

func (c *Controller) Mode() Mode { return c.mode }

// Navigation exposes the directory listing state.
func (c *Controller) Navigation() *Navigation { return c.nav }

// Fuzzy exposes the fuzzy-find state.
func (c *Controller) Fuzzy() *FuzzyIndex { return &c.fuzzy }

// Dir is the directory being listed.
func (c *Controller) Dir() string { return c.nav.Dir() }

// Scanning reports whether a fuzzy scan is in flight.
func (c *Controller) Scanning() bool {
	return c.mode == ModeFuzzyFind && c.fuzzy.Scanning()
}

// QueryText is the query of the active mode. Explore shows the filter kept
// from the last search.
func (c *Controller) QueryText() string {
	if c.mode == ModeFuzzyFind {
		return c.fuzzy.Query()
	}
	return c.nav.Query()
}

// VisibleLen is the length of the list the active mode displays.
func (c *Controller) VisibleLen() int {
	if c.mode == ModeFuzzyFind {
		return c.fuzzy.VisibleLen()
	}
	return c.nav.VisibleLen()
}

// VisibleAt returns row i of the displayed list.
func (c *Controller) VisibleAt(i int) fileops.Entry {
	if c.mode == ModeFuzzyFind {
		return c.fuzzy.VisibleAt(i)
	}
	return c.nav.VisibleAt(i)
}

// VisibleEntries returns a copy of the displayed list.
func (c *Controller) VisibleEntries() []fileops.Entry {
	if c.mode == ModeFuzzyFind {
		return c.fuzzy.Visible()
	}
	return c.nav.Visible()
}

func (c *Controller) SelectedIndex() int {
	if c.mode == ModeFuzzyFind {
		return c.fuzzy.SelectedIndex()
	}
	return c.nav.SelectedIndex()
}

// Selected returns the entry under the cursor in the active mode.
func (c *Controller) Selected() (fileops.Entry, bool) {
	if c.mode == ModeFuzzyFind {
		return c.fuzzy.Selected()
	}
	return c.nav.Selected()
}

// HandleKey applies one key press.
func (c *Controller) HandleKey(k Key) Effect {
	switch c.mode {
	case ModeSearch:
		return c.handleSearch(k)
	case ModeFuzzyFind:
		return c.handleFuzzy(k)
	default:
		return c.handleExplore(k)
	}
}

func (c *Controller) setMode(m Mode) {
	if m != c.mode {
		logger.Debug("Mode %s -> %s", c.mode, m)
	}
	c.mode = m
}

func (c *Controller) handleExplore(k Key) Effect {
	switch {
	case k.is(KeyDown), k.isRune('j'):
		c.nav.MoveDown()
	case k.is(KeyUp), k.isRune('k'):
		c.nav.MoveUp()
	case k.is(KeyHome), k.isRune('g'):
		c.nav.Top()
	case k.is(KeyEnd), k.isRune('G'):
		c.nav.Bottom()

	case k.is(KeyEnter), k.is(KeyRight), k.isRune('l'):
		return c.activate()
	case k.is(KeyLeft), k.is(KeyBackspace), k.isRune('h'):
		return errEffect(c.nav.GoToParent())
	case k.is(KeyEsc):
		if c.nav.Query() != "" {
			c.nav.ClearQuery()
			return Effect{}
		}
		return errEffect(c.nav.GoToParent())

	case k.is(KeyF5), k.isRune('r'):
		return errEffect(c.nav.Refresh())
	case k.isRune('.'):
		return errEffect(c.nav.ToggleHidden())

	case k.isRune('/'):
		c.nav.ClearQuery()
		c.setMode(ModeSearch)
	case k.isRune('f'):
		req := c.fuzzy.Begin(c.nav.Dir())
		c.setMode(ModeFuzzyFind)
		logger.Debug("Fuzzy scan %d of %s requested", req.ID, req.Root)
		return Effect{Kind: EffectScan, Scan: req}

	case k.isRune('o'):
		return c.withSelection(EffectOpenExternal)
	case k.isRune('y'):
		return c.withSelection(EffectCopyPath)
	case k.isRune('q'), k.isCtrl('c'):
		return Effect{Kind: EffectQuit}
	}
	return Effect{}
}

// activate opens the selected file or enters the selected directory.
func (c *Controller) activate() Effect {
	sel, ok := c.nav.Selected()
	if !ok {
		return Effect{Err: ErrNoSelection}
	}
	if !sel.IsDir {
		return Effect{Kind: EffectOpenFile, Path: sel.Path}
	}
	return errEffect(c.nav.EnterSelected())
}

func (c *Controller) withSelection(kind EffectKind) Effect {
	sel, ok := c.Selected()
	if !ok {
		return Effect{Err: ErrNoSelection}
	}
	return Effect{Kind: kind, Path: sel.Path}
}

func (c *Controller) handleSearch(k Key) Effect {
	switch {
	case k.is(KeyEnter):
		// the filter stays applied in Explore until Esc or a directory change
		c.setMode(ModeExplore)
	case k.is(KeyEsc), k.isCtrl('c'):
		c.nav.ClearQuery()
		c.setMode(ModeExplore)
	case k.is(KeyUp), k.isCtrl('p'):
		c.nav.MoveUp()
	case k.is(KeyDown), k.isCtrl('n'):
		c.nav.MoveDown()
	default:
		if edit, ok := queryEdit(k); ok {
			c.nav.EditQuery(edit)
		}
	}
	return Effect{}
}

func (c *Controller) handleFuzzy(k Key) Effect {
	switch {
	case k.is(KeyEnter):
		return c.activateFuzzy()
	case k.is(KeyEsc), k.isCtrl('c'):
		c.fuzzy.Clear()
		c.setMode(ModeExplore)
	case k.is(KeyUp), k.isCtrl('p'):
		c.fuzzy.MoveUp()
	case k.is(KeyDown), k.isCtrl('n'):
		c.fuzzy.MoveDown()
	default:
		if edit, ok := queryEdit(k); ok {
			c.fuzzy.EditQuery(edit)
		}
	}
	return Effect{}
}

// activateFuzzy opens a selected file, or jumps Explore to a selected
// directory. The fuzzy state survives a failed jump.
func (c *Controller) activateFuzzy() Effect {
	sel, ok := c.fuzzy.Selected()
	if !ok {
		if c.fuzzy.Scanning() {
			return Effect{}
		}
		return Effect{Err: ErrNoSelection}
	}
	if !sel.IsDir {
		return Effect{Kind: EffectOpenFile, Path: sel.Path}
	}
	if err := c.nav.GoTo(sel.Path); err != nil {
		return Effect{Err: err}
	}
	c.fuzzy.Clear()
	c.setMode(ModeExplore)
	return Effect{}
}

// CompleteScan installs a finished scan. Results for a scan that is no
// longer pending, or that arrive outside FuzzyFind, are dropped.
func (c *Controller) CompleteScan(res ScanResult) Effect {
	if c.mode != ModeFuzzyFind || !c.fuzzy.Pending(res.ID) {
		logger.Debug("Dropping stale scan %d of %s", res.ID, res.Root)
		return Effect{}
	}
	if res.Err != nil {
		c.fuzzy.Fail(res.ID)
		logger.Error("Fuzzy scan of %s failed: %v", res.Root, res.Err)
		return Effect{Err: &IOError{Op: "scan", Path: res.Root, Err: res.Err}}
	}
	c.fuzzy.Complete(res.ID, res.Entries)
	logger.Info("Fuzzy scan of %s indexed %d entries", res.Root, len(res.Entries))
	return Effect{}
}

// Refresh re-reads the listed directory, as after an external change.
func (c *Controller) Refresh() Effect {
	return errEffect(c.nav.Refresh())
}

func errEffect(err error) Effect {
	if err != nil {
		return Effect{Err: err}
	}
	return Effect{}
}
