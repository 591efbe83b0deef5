package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application.
func (m Model) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.loading || m.proj == nil {
		return SubtitleStyle.Render("Projecting...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		TableBorderStyle.Render(m.table.View()),
		m.renderStatusBar(),
	)
}

// renderHeader renders the KPI summary above the ledger table.
func (m Model) renderHeader() string {
	res := m.proj.Results

	title := TitleStyle.Render("finsim - Projection Ledger")

	profitStyle := MetricPositiveStyle
	if res.NetProfit < 0 {
		profitStyle = MetricNegativeStyle
	}

	lines := []string{
		metric("Simulated days", fmt.Sprintf("%d", res.SimulatedDays)),
		metric("Capital invested", money(res.TotalCapitalInvested)),
		metric("Final balance", money(res.FinalBalance)),
		metric("Withdrawn (net)", money(res.TotalWithdrawn)),
		MetricLabelStyle.Render("Net profit:        ") + profitStyle.Render(money(res.NetProfit)),
		metric("ROI", res.ROIPercent.StringFixed(2)+"%"),
	}
	if res.NextWithdrawal != nil {
		lines = append(lines, metric("Next withdrawal",
			fmt.Sprintf("%s on %s", money(res.NextWithdrawal.Amount), res.NextWithdrawal.Date)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func metric(label, value string) string {
	return MetricLabelStyle.Render(fmt.Sprintf("%-19s", label+":")) + MetricValueStyle.Render(value)
}

func (m Model) renderStatusBar() string {
	return StatusBarStyle.Render("↑/↓ scroll  r rerun  q quit")
}
