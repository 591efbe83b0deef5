package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.plan != nil {
				m.loading = true
				return m, projectCmd(m.engine, m.plan)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Header takes 9 lines, status bar 2.
		h := msg.Height - 11
		if h < 4 {
			h = 4
		}
		m.table.SetHeight(h)
		return m, nil

	case PlanLoadedMsg:
		m.plan = msg.Plan
		return m, projectCmd(m.engine, m.plan)

	case ProjectionDoneMsg:
		m.proj = msg.Projection
		m.loading = false
		m.table.SetRows(ledgerRows(m.proj))
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
