package preview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"

	"github.com/LFroesch/burrow/internal/logger"
)

type highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter

	// glamour renderers are expensive to build; one per wrap width
	renderers map[int]*glamour.TermRenderer
}

func newHighlighter(styleName string) *highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	return &highlighter{
		style:     style,
		formatter: formatter,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// code highlights text with the lexer matching name, falling back to
// content analysis and then to plain text.
func (h *highlighter) code(name, text string) []string {
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return strings.Split(text, "\n")
	}
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		logger.Debug("Tokenising %s failed: %v", name, err)
		return strings.Split(text, "\n")
	}

	// lines are formatted one at a time; no escape sequence spans a newline
	want := strings.Count(text, "\n") + 1
	out := make([]string, 0, want)
	for _, line := range chroma.SplitTokensIntoLines(tokens) {
		for i := range line {
			line[i].Value = strings.TrimSuffix(line[i].Value, "\n")
		}
		var sb strings.Builder
		if err := h.formatter.Format(&sb, h.style, chroma.Literator(line...)); err != nil {
			logger.Debug("Formatting %s failed: %v", name, err)
			return strings.Split(text, "\n")
		}
		out = append(out, sb.String())
	}
	for len(out) < want {
		out = append(out, "")
	}
	return out[:want]
}

func (h *highlighter) markdown(text string, width int) ([]string, bool) {
	if width <= 0 {
		width = 80
	}
	r, ok := h.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logger.Warn("Failed to create markdown renderer: %v", err)
			return nil, false
		}
		h.renderers[width] = r
	}

	out, err := r.Render(text)
	if err != nil {
		logger.Debug("Rendering markdown failed: %v", err)
		return nil, false
	}
	return strings.Split(strings.Trim(out, "\n"), "\n"), true
}
