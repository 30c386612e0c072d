package editorview

import "github.com/charmbracelet/lipgloss"

// Raw SGR codes for the cursor and region. They nest inside lipgloss
// output because they only reset the attribute they set.
const (
	cursorOn     = "\x1b[7m"
	cursorOff    = "\x1b[27m"
	regionOn     = "\x1b[48;5;238;38;5;255m"
	regionOff    = "\x1b[49;39m"
	continuation = "…"
)

var (
	textMutedColor   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#696969"}
	statusBgColor    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#3C3C3C"}
	statusFgColor    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"}
	prefixColor      = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
	pendingColor     = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"}
	errorColor       = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	panelBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
)

var statusStyle = lipgloss.NewStyle().Foreground(statusFgColor).Background(statusBgColor)

var (
	statusFileStyle    = statusStyle.Bold(true)
	statusPrefixStyle  = statusStyle.Foreground(prefixColor)
	statusPendingStyle = statusStyle.Foreground(pendingColor)

	echoStyle      = lipgloss.NewStyle()
	echoErrorStyle = lipgloss.NewStyle().Foreground(errorColor)
	hintStyle      = lipgloss.NewStyle().Foreground(textMutedColor)

	panelTitleStyle = lipgloss.NewStyle().Bold(true)
	panelIndexStyle = lipgloss.NewStyle().Foreground(textMutedColor)
)

// panelStyle draws a single rule on the left edge of the kill ring panel.
var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(panelBorderColor).
	PaddingLeft(1)

var helpBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(panelBorderColor).
	Padding(0, 1)
