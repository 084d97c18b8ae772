package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/burrow/internal/browser"
	"github.com/LFroesch/burrow/internal/fileops"
	"github.com/LFroesch/burrow/internal/search"
	"github.com/LFroesch/burrow/internal/utils"
)

var (
	purpleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	symlinkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("105"))

	modeStyles = map[browser.Mode]lipgloss.Style{
		browser.ModeExplore:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Padding(0, 1),
		browser.ModeSearch:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")).Background(lipgloss.Color("226")).Padding(0, 1),
		browser.ModeFuzzyFind: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")).Background(lipgloss.Color("214")).Padding(0, 1),
	}
)

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var mainContent string
	listWidth, previewWidth := m.panelWidths()
	if previewWidth > 0 {
		panelHeight := m.getContentHeight() + 1
		fileList := lipgloss.NewStyle().Height(panelHeight).Render(m.renderFileList(listWidth))
		prev := lipgloss.NewStyle().Height(panelHeight).Render(m.renderPreview(previewWidth))
		mainContent = lipgloss.JoinHorizontal(lipgloss.Top, fileList, prev)
	} else {
		mainContent = m.renderFileList(listWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		mainContent,
		m.renderStatusBar(),
		m.helpView(),
	)
}

func (m *model) renderHeader() string {
	width := m.getSafeWidth()
	bg := lipgloss.Color("235")
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Background(bg).
		Padding(0, 1)

	var right string
	switch m.ctrl.Mode() {
	case browser.ModeSearch:
		right = purpleStyle.Background(bg).Render("/ ") + m.query.View()
	case browser.ModeFuzzyFind:
		right = purpleStyle.Background(bg).Render("find ") + m.query.View()
	default:
		if m.gitStatus.Branch != "" {
			right = purpleStyle.Background(bg).Render("⎇ " + m.gitStatus.Branch)
		}
	}
	rightWidth := lipgloss.Width(right)

	titleWidth := width - rightWidth - 3
	if titleWidth < 20 {
		titleWidth = 20
	}
	title := "🐇 Burrow - " + utils.TruncateLeft(m.ctrl.Dir(), titleWidth-12)

	left := titleStyle.Render(title)
	gap := width - lipgloss.Width(left) - rightWidth - 1
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap)) + right
	return lipgloss.NewStyle().Background(bg).Width(width).MaxWidth(width).Render(line)
}

func (m *model) renderStatusBar() string {
	width := m.getSafeWidth()
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("240")).
		Padding(0, 1)

	mode := m.ctrl.Mode()
	badge := modeStyles[mode].Render(mode.String())

	var parts []string
	if n := m.ctrl.VisibleLen(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", m.ctrl.SelectedIndex()+1, n))
	} else {
		parts = append(parts, "0/0")
	}
	if mode == browser.ModeExplore && m.ctrl.QueryText() != "" {
		parts = append(parts, fmt.Sprintf("filter: %q of %d", m.ctrl.QueryText(), m.ctrl.Navigation().Snapshot().Len()))
	}
	if m.ctrl.Navigation().ShowHidden() {
		parts = append(parts, "hidden shown")
	}
	if n := m.gitStatus.Changed(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", n))
	}
	if m.ctrl.Scanning() {
		parts = append(parts, m.spinner.View()+" scanning")
	}

	left := strings.Join(parts, " | ")
	if m.statusMsg != "" {
		msg := m.statusMsg
		if m.statusIsError {
			msg = errorStyle.Background(lipgloss.Color("240")).Render(msg)
		}
		left += " | " + msg
	}

	rightSide := "? for help"
	if mode != browser.ModeExplore {
		rightSide = "esc to cancel"
	}

	avail := width - lipgloss.Width(badge) - 2
	padding := avail - lipgloss.Width(left) - lipgloss.Width(rightSide) - 2
	if padding < 1 {
		padding = 1
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(
		badge + statusStyle.Width(avail+2).Render(left+strings.Repeat(" ", padding)+rightSide),
	)
}

// renderFileList renders the file list panel with the given width
func (m *model) renderFileList(width int) string {
	contentHeight := m.getContentHeight()
	mode := m.ctrl.Mode()

	var title string
	switch mode {
	case browser.ModeFuzzyFind:
		fz := m.ctrl.Fuzzy()
		if fz.Scanning() {
			title = fmt.Sprintf("🔎 %s scanning %s", m.spinner.View(), displayName(fz.Root()))
		} else {
			title = fmt.Sprintf("🔎 %d of %d under %s", fz.VisibleLen(), fz.Total(), displayName(fz.Root()))
		}
	case browser.ModeSearch:
		title = fmt.Sprintf("📁 %s [SEARCH %d]", displayName(m.ctrl.Dir()), m.ctrl.VisibleLen())
	default:
		title = "📁 " + displayName(m.ctrl.Dir())
	}
	header := panelTitleStyle.Width(width - 4).Render(utils.Truncate(title, width-4))

	total := m.ctrl.VisibleLen()
	start, end := scrollWindow(m.ctrl.SelectedIndex(), m.scrollOffset, total, contentHeight)

	var items []string
	if start > 0 {
		items = append(items, dimStyle.Render("▲ More files above..."))
	}
	for i := start; i < end; i++ {
		items = append(items, m.renderRow(m.ctrl.VisibleAt(i), i == m.ctrl.SelectedIndex(), width-4))
	}
	if end < total {
		items = append(items, dimStyle.Render("▼ More files below..."))
	}
	if total == 0 {
		items = append(items, dimStyle.Render(m.emptyListText()))
	}

	listStyle := lipgloss.NewStyle().Padding(0, 1)
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Height(contentHeight + 1)

	return borderStyle.Render(header + "\n" + listStyle.Render(strings.Join(items, "\n")))
}

func (m *model) emptyListText() string {
	switch {
	case m.ctrl.Scanning():
		return "Scanning..."
	case m.ctrl.QueryText() != "":
		return "No matches"
	}
	return "Empty directory"
}

// renderRow lays out icon, name, markers and a right-aligned size in
// width cells.
func (m *model) renderRow(e fileops.Entry, selected bool, width int) string {
	icon := utils.Icon(e)

	markers := ""
	if m.gitStatus.IsModified(e.Path) {
		markers += " " + modifiedStyle.Render("[M]")
	}
	if e.IsSymlink {
		markers += " " + symlinkStyle.Render("[→]")
	}

	sizeStr := ""
	if e.HasSize() {
		sizeStr = utils.FormatFileSizeColored(e.Size)
	}

	maxNameLen := width - lipgloss.Width(icon) - lipgloss.Width(markers) - lipgloss.Width(sizeStr) - 3
	if maxNameLen < 10 {
		maxNameLen = 10
	}

	name := m.rowName(e, maxNameLen)
	leftSide := fmt.Sprintf("%s %s%s", icon, name, markers)
	padding := width - lipgloss.Width(leftSide) - lipgloss.Width(sizeStr)
	if padding < 1 {
		padding = 1
	}
	line := leftSide + strings.Repeat(" ", padding) + sizeStr

	if selected {
		return selectedStyle.Render(line)
	}
	return normalStyle.Render(line)
}

// rowName is the label of a row with the query matches highlighted. Fuzzy
// rows show the path below the scan root; a truncated label loses its
// highlighting.
func (m *model) rowName(e fileops.Entry, maxLen int) string {
	query := m.ctrl.QueryText()

	if m.ctrl.Mode() == browser.ModeFuzzyFind {
		rel, err := filepath.Rel(m.ctrl.Fuzzy().Root(), e.Path)
		if err != nil {
			rel = e.Path
		}
		if e.IsDir {
			rel += string(filepath.Separator)
		}
		if lipgloss.Width(rel) > maxLen {
			return utils.TruncateLeft(rel, maxLen)
		}
		if query == "" {
			return rel
		}
		if matches := fuzzy.Find(query, []string{rel}); len(matches) > 0 {
			return utils.HighlightMatches(rel, matches[0].MatchedIndexes, matchStyle)
		}
		return rel
	}

	if lipgloss.Width(e.Name) > maxLen {
		return utils.Truncate(e.Name, maxLen)
	}
	return utils.HighlightMatches(e.Name, substringOffsets(e.Name, query), matchStyle)
}

// substringOffsets returns the byte offsets of the first case-insensitive
// occurrence of query in name. Names whose folded form differs in length
// are not highlighted.
func substringOffsets(name, query string) []int {
	if query == "" {
		return nil
	}
	folded := search.Fold(name)
	if len(folded) != len(name) {
		return nil
	}
	q := search.Fold(query)
	at := strings.Index(folded, q)
	if at < 0 {
		return nil
	}
	offsets := make([]int, 0, len(q))
	for i := at; i < at+len(q); i++ {
		offsets = append(offsets, i)
	}
	return offsets
}

func (m *model) renderPreview(width int) string {
	contentHeight := m.getContentHeight()
	previewStyle := lipgloss.NewStyle().Width(width-4).Padding(0, 1)
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Height(contentHeight + 1)

	if !m.hasPreview {
		header := panelTitleStyle.Width(width - 4).Render("👁 Preview")
		return borderStyle.Render(header + "\n" + previewStyle.Render(dimStyle.Render("No preview available")))
	}

	p := m.preview
	header := panelTitleStyle.Width(width - 4).Render(utils.Truncate(p.Title, width-4))

	lines := p.Lines
	more := p.More
	if len(lines) > contentHeight {
		more += len(lines) - (contentHeight - 1)
		lines = lines[:contentHeight-1]
	}
	content := strings.Join(lines, "\n")
	if more > 0 {
		content += "\n" + dimStyle.Render(fmt.Sprintf("▼ %d more", more))
	}
	return borderStyle.Render(header + "\n" + previewStyle.Render(content))
}
