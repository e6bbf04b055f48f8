package tui

import "github.com/rgehrsitz/pensionproj/internal/domain"

// ProjectionCompleteMsg carries the result of a recalculation. Seq identifies the
// request so that results for superseded parameters are dropped.
type ProjectionCompleteMsg struct {
	Seq    int
	Result *domain.ProjectionResult
	Err    error
}

// ClipboardMsg reports the outcome of copying the table.
type ClipboardMsg struct {
	Rows int
	Err  error
}

// ScenarioLoadedMsg signals the input file has been parsed.
type ScenarioLoadedMsg struct {
	Request *domain.ProjectionRequest
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}
