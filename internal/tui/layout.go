package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type panelDimensions struct {
	summaryW, summaryH int
	chartW, chartH     int
	tableW, tableH     int
	headerH, statusH   int
}

const (
	minWidth  = 40
	minHeight = 14

	headerHeight = 1
	statusHeight = 1

	topRowMinHeight = 9
	topRowMaxHeight = 12
)

func computeDimensions(totalW, totalH int) panelDimensions {
	if totalW < minWidth {
		totalW = minWidth
	}
	if totalH < minHeight {
		totalH = minHeight
	}

	d := panelDimensions{
		headerH: headerHeight,
		statusH: statusHeight,
	}

	usableH := totalH - headerHeight - statusHeight

	topH := usableH * 40 / 100
	if topH < topRowMinHeight {
		topH = topRowMinHeight
	}
	if topH > topRowMaxHeight {
		topH = topRowMaxHeight
	}

	d.summaryW = totalW * 40 / 100
	if d.summaryW < 30 {
		d.summaryW = 30
	}
	if d.summaryW > totalW-10 {
		d.summaryW = totalW - 10
	}
	d.summaryH = topH

	d.chartW = totalW - d.summaryW
	d.chartH = topH

	d.tableW = totalW
	d.tableH = usableH - topH
	if d.tableH < 4 {
		d.tableH = 4
	}

	return d
}

// tableRowsFor returns the number of table body rows that fit in a panel
// of height h. Borders, the panel title, and the column header take five lines.
func tableRowsFor(h int) int {
	rows := h - 5
	if rows < 1 {
		rows = 1
	}
	return rows
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	profitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	lossStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("196"))

	chartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func renderBorderedPanel(content string, w, h int) string {
	return renderBorderedPanelStyled(content, w, h, panelBorderStyle)
}

func renderBorderedPanelStyled(content string, w, h int, style lipgloss.Style) string {
	contentH := h - 2
	if contentH < 1 {
		contentH = 1
	}

	lines := strings.Split(content, "\n")
	if len(lines) > contentH {
		lines = lines[:contentH]
		content = strings.Join(lines, "\n")
	}

	return style.
		Width(w - 2).
		Height(contentH).
		Render(content)
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func (m Model) renderDashboard() string {
	dims := computeDimensions(m.width, m.height)

	header := m.renderHeader()

	summary := m.renderSummaryPanel(dims.summaryW, dims.summaryH)
	chart := m.renderChartPanel(dims.chartW, dims.chartH)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, summary, chart)

	sessions := m.renderSessionsPanel(dims.tableW, dims.tableH)
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, topRow, sessions, status)
}

func (m Model) renderHeader() string {
	title := " pokerlytics"
	viewLabel := " [" + m.metric.String() + "] " + m.source

	help := m.headerHelp()

	padding := m.width - lipgloss.Width(title) - lipgloss.Width(viewLabel) - lipgloss.Width(help)
	if padding < 0 {
		padding = 0
	}

	return headerStyle.Width(m.width).Render(title + viewLabel + strings.Repeat(" ", padding) + help)
}

func (m Model) headerHelp() string {
	return "Tab:$/bb  ↑↓:Select  q:Quit "
}

func (m Model) renderStatusBar() string {
	s, ok := m.selectedSession()
	if !ok {
		return statusBarStyle.Render(" no sessions")
	}
	return statusBarStyle.Render(" " + formatSessionDetail(s))
}
