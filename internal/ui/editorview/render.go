package editorview

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/grapheme"
)

const (
	tabWidth      = 4
	ringPanelMax  = 32
	ringPanelMin  = 16
	scratchName   = "*scratch*"
	ringEmptyHint = "(empty)"
)

// View renders the buffer, mode line and echo area.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	bodyH := m.bodyHeight()
	bodyW, panelW := m.width, 0
	if m.showRing {
		panelW = min(max(m.width/3, ringPanelMin), ringPanelMax)
		bodyW = max(m.width-panelW, 1)
	}

	body := m.renderBody(bodyW, bodyH)
	if m.showRing {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderKillRing(panelW, bodyH))
	}
	if m.showHelp {
		body = placeCenter(m.renderHelp(), body, m.width, bodyH)
	}

	parts := []string{body}
	if m.cfg.UI.ShowStatusBar {
		parts = append(parts, m.renderStatus())
	}
	parts = append(parts, m.renderEcho())
	return strings.Join(parts, "\n")
}

// bodyHeight is the number of rows left for buffer text.
func (m *Model) bodyHeight() int {
	h := m.height - 1
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	return max(h, 1)
}

// bodyWidth mirrors the width View gives the buffer.
func (m *Model) bodyWidth() int {
	if !m.showRing {
		return m.width
	}
	return max(m.width-min(max(m.width/3, ringPanelMin), ringPanelMax), 1)
}

// displayRows is how many screen rows line occupies.
func (m *Model) displayRows(line string, width int) int {
	if !m.cfg.Editor.LineWrapping || width <= 0 {
		return 1
	}
	cells := lineCells(line) + 1 // room for a cursor at end of line
	return max((cells+width-1)/width, 1)
}

// scrollToCursor moves the window so the cursor line is fully visible.
func (m *Model) scrollToCursor() {
	if m.height <= 0 {
		return
	}
	cur := m.buf.Cursor()
	m.top = min(m.top, m.buf.LastLine())
	if cur.Line < m.top {
		m.top = cur.Line
		return
	}
	width, height := m.bodyWidth(), m.bodyHeight()
	for m.top < cur.Line {
		rows := 0
		for l := m.top; l <= cur.Line; l++ {
			rows += m.displayRows(m.buf.Line(l), width)
		}
		if rows <= height {
			break
		}
		m.top++
	}
}

func (m *Model) renderBody(width, height int) string {
	cur := m.buf.Cursor()
	region := emacs.NewRange(m.buf.Anchor(), cur)

	rows := make([]string, 0, height)
	for l := m.top; l <= m.buf.LastLine() && len(rows) < height; l++ {
		line := renderLine(m.buf.Line(l), l, cur, region)
		switch {
		case m.cfg.Editor.LineWrapping:
			for _, row := range strings.Split(wrap.String(line, width), "\n") {
				if len(rows) == height {
					break
				}
				rows = append(rows, row)
			}
		case l == cur.Line:
			// Scroll the cursor line horizontally to keep the cursor in view
			col := cellsBefore(m.buf.Line(l), cur.Ch)
			if col >= width {
				line = continuation + ansi.TruncateLeft(line, col-width+2, "")
			}
			rows = append(rows, ansi.Truncate(line, width, continuation))
		default:
			rows = append(rows, ansi.Truncate(line, width, continuation))
		}
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(rows, "\n"))
}

// renderLine draws one logical line with the region highlighted and the
// cursor in reverse video.
func renderLine(line string, lineNo int, cur emacs.Position, region emacs.Range) string {
	var sb strings.Builder
	inRegion := false
	clusters := grapheme.Split(line)
	for i, c := range clusters {
		pos := emacs.Pos(lineNo, i)
		want := !region.Empty() && pos.Compare(region.From) >= 0 && pos.Compare(region.To) < 0
		if want != inRegion {
			if want {
				sb.WriteString(regionOn)
			} else {
				sb.WriteString(regionOff)
			}
			inRegion = want
		}
		if pos == cur {
			sb.WriteString(cursorOn)
			sb.WriteString(displayCluster(c))
			sb.WriteString(cursorOff)
			continue
		}
		sb.WriteString(displayCluster(c))
	}
	if inRegion {
		sb.WriteString(regionOff)
	}
	if cur.Line == lineNo && cur.Ch >= len(clusters) {
		sb.WriteString(cursorOn + " " + cursorOff)
	}
	return sb.String()
}

func displayCluster(c string) string {
	if c == "\t" {
		return strings.Repeat(" ", tabWidth)
	}
	return c
}

func clusterCells(c string) int {
	if c == "\t" {
		return tabWidth
	}
	return grapheme.DisplayWidth(c)
}

// cellsBefore returns the screen column of grapheme column ch.
func cellsBefore(line string, ch int) int {
	n := 0
	for i, c := range grapheme.Split(line) {
		if i >= ch {
			break
		}
		n += clusterCells(c)
	}
	return n
}

func lineCells(line string) int {
	return cellsBefore(line, grapheme.Count(line))
}

// renderStatus draws the mode line: modified flag, file name, cursor
// position, prefix argument, pending keys and kill ring size.
func (m *Model) renderStatus() string {
	mod := "--"
	if m.Modified() {
		mod = "**"
	}
	name := scratchName
	if m.path != "" {
		name = filepath.Base(m.path)
	}
	cur := m.buf.Cursor()

	segments := []string{
		statusStyle.Render(" -:" + mod + "- "),
		statusFileStyle.Render(name),
		statusStyle.Render(fmt.Sprintf("  L%d C%d", cur.Line+1, cur.Ch)),
	}
	p := m.editor.PrefixString()
	if p == "" && m.editor.PrefixMapActive() {
		p = "C-u-"
	}
	if p != "" {
		segments = append(segments, statusPrefixStyle.Render("  "+p))
	}
	if k := m.editor.PendingKeys(); k != "" {
		segments = append(segments, statusPendingStyle.Render("  "+k+"-"))
	}
	segments = append(segments, statusStyle.Render(fmt.Sprintf("  ring %d/%d ", m.keymap.Killer().Len(), emacs.KillRingCapacity)))

	line := ansi.Truncate(strings.Join(segments, ""), m.width, "")
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += statusStyle.Render(strings.Repeat(" ", pad))
	}
	return line
}

// renderEcho draws the minibuffer while prompting, otherwise the latest
// message, the echoed command or the key hints.
func (m *Model) renderEcho() string {
	var line string
	switch {
	case m.prompt != nil:
		line = m.minibuffer.View()
	case m.message != "" && m.messageErr:
		line = echoErrorStyle.Render(m.message)
	case m.message != "":
		line = echoStyle.Render(m.message)
	case m.echo != "":
		line = hintStyle.Render(m.echo)
	default:
		line = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return ansi.Truncate(line, m.width, continuation)
}

// renderKillRing lists ring entries newest first, one line each.
func (m *Model) renderKillRing(width, height int) string {
	inner := max(width-2, 1) // border and padding
	lines := []string{panelTitleStyle.Render("Kill ring")}

	entries := m.keymap.Killer().Entries()
	if len(entries) == 0 {
		lines = append(lines, hintStyle.Render(ringEmptyHint))
	}
	for i := len(entries) - 1; i >= 0 && len(lines) < height; i-- {
		idx := panelIndexStyle.Render(fmt.Sprintf("%-2d ", len(entries)-1-i))
		text := strings.ReplaceAll(entries[i], "\n", "⏎")
		text = strings.ReplaceAll(text, "\t", " ")
		lines = append(lines, idx+ansi.Truncate(text, max(inner-3, 1), continuation))
	}
	return panelStyle.Width(width - 1).Height(height).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	h.Width = max(m.width-4, 10)
	return helpBoxStyle.Render(h.FullHelpView(m.keys.FullHelp()))
}

// placeCenter draws fg centered over the first height rows of bg,
// keeping the background visible on either side.
func placeCenter(fg, bg string, width, height int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-len(fgLines))/2, 0)
	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]
		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if end := x + ansi.StringWidth(fgLine); end < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, end, "")
		}
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}
