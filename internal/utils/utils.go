package utils

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/LFroesch/burrow/internal/fileops"
)

var extIcons = map[string]string{
	".go":        "🐹",
	".js":        "📜",
	".ts":        "📜",
	".jsx":       "📜",
	".tsx":       "📜",
	".py":        "🐍",
	".rb":        "💎",
	".java":      "☕",
	".rs":        "🦀",
	".c":         "⚙️",
	".cpp":       "⚙️",
	".h":         "⚙️",
	".html":      "🌐",
	".htm":       "🌐",
	".css":       "🎨",
	".scss":      "🎨",
	".json":      "📋",
	".yaml":      "📋",
	".yml":       "📋",
	".toml":      "📋",
	".md":        "📝",
	".markdown":  "📝",
	".txt":       "📄",
	".log":       "📄",
	".png":       "🖼️",
	".jpg":       "🖼️",
	".jpeg":      "🖼️",
	".gif":       "🖼️",
	".svg":       "🖼️",
	".mp4":       "🎬",
	".mkv":       "🎬",
	".mp3":       "🎵",
	".flac":      "🎵",
	".zip":       "📦",
	".tar":       "📦",
	".gz":        "📦",
	".7z":        "📦",
	".pdf":       "📕",
	".sh":        "🖥️",
	".bash":      "🖥️",
	".zsh":       "🖥️",
	".gitignore": "🔀",
}

// GetFileIcon returns an emoji icon for a file based on its extension
func GetFileIcon(name string) string {
	if icon, ok := extIcons[strings.ToLower(filepath.Ext(name))]; ok {
		return icon
	}
	return "📄"
}

// Icon returns the icon shown in front of an entry in any list.
func Icon(e fileops.Entry) string {
	switch {
	case e.IsDir:
		return "📁"
	case e.IsSymlink && !e.Mode.IsRegular():
		return "🔗"
	}
	return GetFileIcon(e.Name)
}

// IsMarkdown reports whether name should be rendered as Markdown.
func IsMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".mdown":
		return true
	}
	return false
}

// FormatFileSize formats a file size in bytes to a human-readable string
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// FormatFileSizeColored returns a color-styled file size string based on size ranges
func FormatFileSizeColored(size int64) string {
	const (
		KB    = 1024
		MB    = 1024 * KB
		MB100 = 100 * MB
	)

	var style lipgloss.Style
	switch {
	case size < KB:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	case size < MB:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	case size < MB100:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	default:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	}
	return style.Render(FormatFileSize(size))
}

// Truncate cuts s to at most width terminal cells, marking the cut with an
// ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// TruncateLeft keeps the end of s, which is the useful part of a path.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	w := 1 // ellipsis
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return "…" + string(runes[i:])
}

// CommandExists checks if a command is available in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// HighlightMatches renders the bytes of text at the given offsets with
// style. Offsets that do not start a character are ignored.
func HighlightMatches(text string, matches []int, style lipgloss.Style) string {
	if len(matches) == 0 {
		return text
	}

	matchSet := make(map[int]bool, len(matches))
	for _, idx := range matches {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range text {
		if matchSet[i] {
			result.WriteString(style.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
