package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nixlim/pokerlytics/internal/analytics"
	"github.com/nixlim/pokerlytics/internal/config"
)

// Metric selects which rate family the dashboard charts.
type Metric int

const (
	MetricDollars Metric = iota
	MetricBB
)

// String returns the short label of the metric.
func (m Metric) String() string {
	if m == MetricBB {
		return "bb"
	}
	return "$"
}

type Model struct {
	width    int
	height   int
	keys     KeyMap
	quitting bool

	cfg    config.DisplayConfig
	result *analytics.Result
	source string

	metric Metric
	table  table.Model
}

func NewModel(result *analytics.Result, cfg config.DisplayConfig, opts ...ModelOption) Model {
	if result == nil {
		result = &analytics.Result{}
	}

	m := Model{
		keys:   DefaultKeyMap(),
		cfg:    cfg,
		result: result,
		source: "stdin",
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.table = newSessionTable(result.Sessions)
	return m
}

type ModelOption func(*Model)

// WithSource sets the input label shown in the header.
func WithSource(name string) ModelOption {
	return func(m *Model) { m.source = name }
}

// WithMetric sets the initially charted metric.
func WithMetric(metric Metric) ModelOption {
	return func(m *Model) { m.metric = metric }
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		dims := computeDimensions(m.width, m.height)
		m.table.SetWidth(dims.tableW - 2)
		m.table.SetHeight(tableRowsFor(dims.tableH))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.metric == MetricDollars {
			m.metric = MetricBB
		} else {
			m.metric = MetricDollars
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// Metric returns the currently charted metric.
func (m Model) Metric() Metric {
	return m.metric
}

// selectedSession returns the session under the table cursor, if any.
func (m Model) selectedSession() (analytics.ProcessedSession, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.result.Sessions) {
		return analytics.ProcessedSession{}, false
	}
	return m.result.Sessions[idx], true
}
