package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/burrow/internal/browser"
)

// exploreKeys documents Explore mode for the help footer. The bindings the
// core interprets are only used for display; Preview and Help are handled
// by the host.
type exploreKeys struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Enter   key.Binding
	Parent  key.Binding
	Search  key.Binding
	Fuzzy   key.Binding
	Refresh key.Binding
	Hidden  key.Binding
	Open    key.Binding
	Copy    key.Binding
	Preview key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// queryKeys documents Search and FuzzyFind.
type queryKeys struct {
	Up         key.Binding
	Down       key.Binding
	Accept     key.Binding
	Cancel     key.Binding
	DeleteWord key.Binding
	Clear      key.Binding
}

func defaultExploreKeys() exploreKeys {
	return exploreKeys{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Enter:   key.NewBinding(key.WithKeys("enter", "l", "right"), key.WithHelp("enter/l", "open")),
		Parent:  key.NewBinding(key.WithKeys("h", "left", "backspace", "esc"), key.WithHelp("h/esc", "parent")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Fuzzy:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fuzzy find")),
		Refresh: key.NewBinding(key.WithKeys("r", "f5"), key.WithHelp("r", "refresh")),
		Hidden:  key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden")),
		Open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "system open")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Preview: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func defaultQueryKeys() queryKeys {
	return queryKeys{
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/ctrl+p", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓/ctrl+n", "down")),
		Accept:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+u", "ctrl+k"), key.WithHelp("ctrl+u", "clear")),
	}
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Parent, k.Search, k.Fuzzy, k.Help, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Enter, k.Parent, k.Refresh, k.Hidden},
		{k.Search, k.Fuzzy, k.Open, k.Copy},
		{k.Preview, k.Help, k.Quit},
	}
}

func (k queryKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Cancel, k.Up, k.Down}
}

func (k queryKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Accept, k.Cancel},
		{k.DeleteWord, k.Clear},
	}
}

var specialKeys = map[tea.KeyType]browser.Key{
	tea.KeyEnter:     browser.SpecialKey(browser.KeyEnter),
	tea.KeyEsc:       browser.SpecialKey(browser.KeyEsc),
	tea.KeyBackspace: browser.SpecialKey(browser.KeyBackspace),
	tea.KeyDelete:    browser.SpecialKey(browser.KeyDelete),
	tea.KeyUp:        browser.SpecialKey(browser.KeyUp),
	tea.KeyDown:      browser.SpecialKey(browser.KeyDown),
	tea.KeyLeft:      browser.SpecialKey(browser.KeyLeft),
	tea.KeyRight:     browser.SpecialKey(browser.KeyRight),
	tea.KeyHome:      browser.SpecialKey(browser.KeyHome),
	tea.KeyEnd:       browser.SpecialKey(browser.KeyEnd),
	tea.KeyF5:        browser.SpecialKey(browser.KeyF5),
	tea.KeySpace:     browser.RuneKey(' '),
	tea.KeyCtrlC:     browser.CtrlKey('c'),
	tea.KeyCtrlH:     browser.CtrlKey('h'),
	tea.KeyCtrlK:     browser.CtrlKey('k'),
	tea.KeyCtrlN:     browser.CtrlKey('n'),
	tea.KeyCtrlP:     browser.CtrlKey('p'),
	tea.KeyCtrlU:     browser.CtrlKey('u'),
	tea.KeyCtrlW:     browser.CtrlKey('w'),
}

// translateKey turns a terminal key event into core keys. Pasted text
// arrives as one event and becomes one key per rune; alt chords are
// dropped.
func translateKey(msg tea.KeyMsg) []browser.Key {
	if msg.Alt {
		return nil
	}
	if msg.Type == tea.KeyRunes {
		keys := make([]browser.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' || r == '\t' {
				r = ' '
			}
			keys = append(keys, browser.RuneKey(r))
		}
		return keys
	}
	if k, ok := specialKeys[msg.Type]; ok {
		return []browser.Key{k}
	}
	return nil
}
