package ports

import "github.com/sentinelai/phishguard/internal/domain"

// Presenter defines the contract for rendering analysis results to the user
//
// The engine hands over plain data structures; how they are displayed (console,
// web page, API response) is entirely the presenter's concern.
type Presenter interface {
	// RenderReport displays a completed analysis report
	RenderReport(report *domain.AnalysisReport) error

	// RenderInvalidInput displays a user-facing rejection message for input
	// that failed validation
	RenderInvalidInput(reason string) error
}
