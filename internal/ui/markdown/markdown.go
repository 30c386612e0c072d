// Package markdown renders the binding reference as styled terminal
// markdown.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with a fixed style and word wrap.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer. style is a glamour standard style such as
// "dark", "light" or "notty"; "" means "dark". A named style avoids the
// terminal background query WithAutoStyle performs.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// Row is one line of the binding reference.
type Row struct {
	Gestures    []string
	Command     string
	Description string
}

// Table formats rows as a markdown table under a heading.
func Table(title string, rows []Row) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}
	sb.WriteString("| Keys | Command | Description |\n")
	sb.WriteString("|------|---------|-------------|\n")
	for _, row := range rows {
		keys := make([]string, len(row.Gestures))
		for i, g := range row.Gestures {
			keys[i] = "`" + g + "`"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n",
			cell(strings.Join(keys, ", ")), cell("`"+row.Command+"`"), cell(row.Description))
	}
	return sb.String()
}

// cell escapes pipes so gestures like "Alt-|" don't split the column.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
