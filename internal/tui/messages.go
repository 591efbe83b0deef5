package tui

import "github.com/finsim/finsim/internal/domain"

// PlanLoadedMsg is sent when the plan file has been parsed.
type PlanLoadedMsg struct {
	Plan *domain.Plan
}

// ProjectionDoneMsg is sent when the engine finishes a run.
type ProjectionDoneMsg struct {
	Projection *domain.Projection
}

// ErrorMsg carries a fatal error to the view.
type ErrorMsg struct {
	Err error
}
