// Package tui is an interactive day-ledger browser: a KPI summary header
// over a scrollable table of simulated days.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/finsim/finsim/internal/calculation"
	"github.com/finsim/finsim/internal/config"
	"github.com/finsim/finsim/internal/domain"
	"github.com/finsim/finsim/internal/output"
)

// Model represents the ledger browser state.
type Model struct {
	planPath string
	plan     *domain.Plan
	proj     *domain.Projection

	table table.Model

	width  int
	height int

	engine  *calculation.Engine
	loading bool
	err     error
}

// NewModel creates the browser model for a plan file.
func NewModel(planPath string) Model {
	return Model{
		planPath: planPath,
		engine:   calculation.NewEngine(),
		table:    newLedgerTable(),
		loading:  true,
		width:    80,
		height:   24,
	}
}

// Init loads the plan file.
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath)
}

// loadPlanCmd returns a command that loads and validates the plan file.
func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Plan: plan}
	}
}

// projectCmd returns a command that runs the projection.
func projectCmd(engine *calculation.Engine, plan *domain.Plan) tea.Cmd {
	return func() tea.Msg {
		proj, err := engine.Project(plan)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProjectionDoneMsg{Projection: proj}
	}
}

func newLedgerTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Opening", Width: 12},
		{Title: "Income", Width: 10},
		{Title: "Returns", Width: 10},
		{Title: "Withdrawn", Width: 10},
		{Title: "Closing", Width: 12},
		{Title: "Event", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorPrimary)
	styles.Selected = styles.Selected.Background(ColorPrimary)
	t.SetStyles(styles)
	return t
}

func ledgerRows(proj *domain.Projection) []table.Row {
	rows := make([]table.Row, 0, len(proj.Days))
	for _, date := range proj.Days {
		entry := proj.Ledger[date]

		event := ""
		switch {
		case entry.CycleClose:
			event = "cycle"
		case len(entry.Maturing) > 0:
			event = "maturity"
		case entry.WithdrawnGross > 0:
			event = string(entry.Withdrawal)
		}

		rows = append(rows, table.Row{
			entry.Date,
			money(entry.Opening),
			money(entry.Income),
			money(entry.Returns),
			money(entry.WithdrawnGross),
			money(entry.Closing),
			event,
		})
	}
	return rows
}

func money(minor int64) string {
	return domain.FormatMinorUnits(minor, output.DefaultCurrency)
}
