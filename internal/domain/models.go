package domain

import (
	"time"

	"github.com/google/uuid"
)

// Label classifies a piece of content as benign or malicious
type Label string

const (
	LabelBenign    Label = "benign"
	LabelMalicious Label = "malicious"
)

// EngineMode indicates whether the statistical model is available
//
// The mode is decided once at engine construction, from the outcome of the
// model load, and never changes for the lifetime of the engine. Classifiers
// read it; nothing mutates it.
type EngineMode string

const (
	// ModeActive means the statistical model loaded and participates in verdicts
	ModeActive EngineMode = "active"
	// ModeDegraded means only the heuristic rules run (model missing or corrupt)
	ModeDegraded EngineMode = "degraded"
)

// DecisionPath records which subsystem produced a link verdict
type DecisionPath string

const (
	PathAllowlisted DecisionPath = "allowlisted"
	PathRuleMatch   DecisionPath = "rule_match"
	PathModelMatch  DecisionPath = "model_match"
	PathClean       DecisionPath = "clean"
)

// Recommendation is the overall advice for an analyzed email
type Recommendation string

const (
	RecommendationBlock   Recommendation = "block"
	RecommendationProceed Recommendation = "proceed"
)

// Verdict is a single classification outcome with its justification
//
// Confidence is a percentage in [0,100]. It is only a real probability when
// produced by the statistical path; the rule-only path uses fixed sentinel
// values (95 flagged, 5 clear) because rules are binary.
type Verdict struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"` // Human-readable explanation, never empty
}

// Malicious reports whether the verdict flagged the content
func (v Verdict) Malicious() bool {
	return v.Label == LabelMalicious
}

// LinkFinding is the classification result for one URL found in the email.
// Immutable once produced.
type LinkFinding struct {
	URL     string       `json:"url"`
	Verdict Verdict      `json:"verdict"`
	Path    DecisionPath `json:"path"`
}

// AnalysisReport aggregates the text verdict and all link findings for one
// email. Built once per analysis, never mutated afterwards, not persisted.
//
// Links preserves the order of first appearance in the input text, duplicates
// included.
type AnalysisReport struct {
	ID             uuid.UUID      `json:"id"`
	TextVerdict    Verdict        `json:"text_verdict"`
	Links          []LinkFinding  `json:"links"`
	Recommendation Recommendation `json:"recommendation"`
	Mode           EngineMode     `json:"mode"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
}

// MaliciousLinkCount counts the flagged links in the report
func (r *AnalysisReport) MaliciousLinkCount() int {
	count := 0
	for _, link := range r.Links {
		if link.Verdict.Malicious() {
			count++
		}
	}
	return count
}
