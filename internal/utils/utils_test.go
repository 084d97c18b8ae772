package utils

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/LFroesch/burrow/internal/fileops"
)

func TestGetFileIcon(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "🐹"},
		{"MAIN.GO", "🐹"},
		{"lib.rs", "🦀"},
		{"README.md", "📝"},
		{"Makefile", "📄"},
		{"archive.tar.gz", "📦"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetFileIcon(tt.name))
		})
	}
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "📁", Icon(fileops.Entry{Name: "src", IsDir: true}))
	assert.Equal(t, "🔗", Icon(fileops.Entry{Name: "dangling", IsSymlink: true, Mode: os.ModeSymlink}))
	assert.Equal(t, "🐍", Icon(fileops.Entry{Name: "app.py", IsSymlink: true}))
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("README.md"))
	assert.True(t, IsMarkdown("notes.Markdown"))
	assert.False(t, IsMarkdown("md"))
	assert.False(t, IsMarkdown("main.go"))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatFileSize(0))
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KiB", FormatFileSize(1536))
	assert.Equal(t, "10 MiB", FormatFileSize(10*1024*1024))
	assert.Equal(t, "0 B", FormatFileSize(-1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long-na…", Truncate("long-name.txt", 8))
	assert.Equal(t, "", Truncate("anything", 0))

	wide := Truncate("日本語のファイル.txt", 9)
	assert.LessOrEqual(t, runewidth.StringWidth(wide), 9)
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "src/main.rs", TruncateLeft("src/main.rs", 20))
	assert.Equal(t, "…/main.rs", TruncateLeft("/very/long/src/main.rs", 9))
	assert.Equal(t, "", TruncateLeft("x", 0))
}

func TestHighlightMatches(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	assert.Equal(t, "plain", HighlightMatches("plain", nil, style))

	got := HighlightMatches("héllo", []int{0, 3}, style)
	assert.Contains(t, got, "é", "multi-byte characters survive")
	assert.Equal(t, "héllo", ansi.Strip(got))
}
