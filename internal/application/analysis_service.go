package application

import (
	"errors"
	"fmt"
	"log"

	"github.com/sentinelai/phishguard/internal/domain"
	"github.com/sentinelai/phishguard/internal/domain/detection"
	"github.com/sentinelai/phishguard/internal/ports"
)

// AnalysisService orchestrates email analysis and result presentation
type AnalysisService struct {
	engine    *detection.Engine
	presenter ports.Presenter
}

// NewAnalysisService creates a new analysis service with dependency injection
func NewAnalysisService(engine *detection.Engine, presenter ports.Presenter) *AnalysisService {
	return &AnalysisService{
		engine:    engine,
		presenter: presenter,
	}
}

// AnalyzeEmail runs the full pipeline on one email body and renders the result
//
// Error handling strategy:
//   - Input rejected by the validator is a user-facing outcome, not a failure:
//     the rejection reason is rendered and nil is returned
//   - Presenter failures are returned to the caller
func (s *AnalysisService) AnalyzeEmail(text string) (*domain.AnalysisReport, error) {
	report, err := s.engine.BuildReport(text)
	if err != nil {
		var invalid *detection.InvalidInputError
		if errors.As(err, &invalid) {
			if renderErr := s.presenter.RenderInvalidInput(invalid.Reason); renderErr != nil {
				return nil, fmt.Errorf("failed to render rejection: %w", renderErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	if err := s.presenter.RenderReport(report); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	// Log blocked emails (for demo purposes)
	// In production, this would feed an alerting pipeline or quarantine the
	// email via the provider API
	if report.Recommendation == domain.RecommendationBlock {
		log.Printf("🚨 PHISHING SUSPECTED (report %s):", report.ID)
		log.Printf("  Content: %s (%.0f%% confidence): %s",
			report.TextVerdict.Label, report.TextVerdict.Confidence, report.TextVerdict.Reason)
		log.Printf("  Malicious links: %d of %d", report.MaliciousLinkCount(), len(report.Links))
		for _, link := range report.Links {
			if link.Verdict.Malicious() {
				log.Printf("    - %s [%s]: %s", link.URL, link.Path, link.Verdict.Reason)
			}
		}
	}

	return report, nil
}
