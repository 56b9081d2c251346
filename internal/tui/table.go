package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/nixlim/pokerlytics/internal/analytics"
)

func sessionColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Profit", Width: 11},
		{Title: "Cumulative", Width: 12},
		{Title: "$/h", Width: 9},
		{Title: "Avg $/h", Width: 9},
		{Title: "bb/h", Width: 9},
		{Title: "Avg bb/h", Width: 9},
	}
}

func sessionRows(sessions []analytics.ProcessedSession) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, table.Row{
			s.Date,
			formatMoney(s.Profit),
			formatMoney(s.CumProfit),
			formatSigned(s.DollarsPerHour),
			formatSigned(s.CumAvgDollarsPerHour),
			formatSigned(s.BBPerHour),
			formatSigned(s.CumAvgBBPerHour),
		})
	}
	return rows
}

// newSessionTable builds the sessions table with the cursor on the most
// recent session.
func newSessionTable(sessions []analytics.ProcessedSession) table.Model {
	t := table.New(
		table.WithColumns(sessionColumns()),
		table.WithRows(sessionRows(sessions)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = selectedStyle
	t.SetStyles(styles)

	t.GotoBottom()
	return t
}

func (m Model) renderSessionsPanel(w, h int) string {
	title := panelTitleStyle.Render("Sessions")
	return renderBorderedPanel(title+"\n"+m.table.View(), w, h)
}
