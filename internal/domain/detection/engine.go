package detection

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sentinelai/phishguard/internal/domain"
	"github.com/sentinelai/phishguard/internal/ports"
)

// urlPattern extracts http(s) links as whitespace-terminated tokens.
// Deliberately simple: no normalization, deduplication, or trailing-punctuation
// trimming — punctuation stuck to a URL is treated as part of it.
var urlPattern = regexp.MustCompile(`https?://\S+`)

// Link verdict reasons
const (
	reasonTrustedDomain = "trusted domain"
	reasonModelFlagged  = "statistical model flagged this URL"
	reasonCleanActive   = "clean — passed rule and model checks"
	reasonCleanDegraded = "clean — passed rule checks"
)

// Engine is the hybrid threat-scoring engine: allowlist, then heuristic rules,
// then (when Active) the statistical model, fused by OR-of-failures
//
// The engine holds no per-call state. The allowlist, rule tables, and model
// are read-only after construction, so concurrent BuildReport calls are safe
// without locking.
type Engine struct {
	allowlist *Allowlist
	model     threatModel
}

// NewEngine creates an engine over the given trusted domains and optional
// statistical model
//
// A nil provider puts the engine in Degraded mode for its whole lifetime:
// rule-only verdicts, sentinel confidences, and the model strategy never
// consulted again. This is the single point where model availability is
// checked.
func NewEngine(trustedDomains []string, provider ports.ModelProvider) *Engine {
	var model threatModel = &ruleFallback{}
	if provider != nil {
		model = &statisticalModel{provider: provider}
	}

	return &Engine{
		allowlist: NewAllowlist(trustedDomains),
		model:     model,
	}
}

// Mode reports whether the engine runs with the statistical model or degraded
func (e *Engine) Mode() domain.EngineMode {
	return e.model.mode()
}

// ClassifyText produces the content verdict for an email body
func (e *Engine) ClassifyText(text string) domain.Verdict {
	return e.model.classifyText(text)
}

// ClassifyLink classifies one URL
//
// Decision order, first applicable wins:
//  1. Allowlisted domains are benign, full stop — not even the model is asked.
//  2. Heuristic rules; all firing reasons are kept.
//  3. In Active mode, the statistical model scores the feature vector.
//  4. Malicious if EITHER rules or model flagged it: a single subsystem's
//     suspicion is enough to block, since false negatives cost more than
//     false positives here. When both flag, the rule reasons are surfaced —
//     they are interpretable, the model's score is not. That is policy, not
//     an accident.
func (e *Engine) ClassifyLink(url string) domain.LinkFinding {
	if e.allowlist.IsTrusted(url) {
		return domain.LinkFinding{
			URL:  url,
			Path: domain.PathAllowlisted,
			Verdict: domain.Verdict{
				Label:      domain.LabelBenign,
				Confidence: allowlistConfidence,
				Reason:     reasonTrustedDomain,
			},
		}
	}

	ruleFlagged, ruleReasons := ScoreURL(url)
	modelFlagged, modelConfidence, modelEvaluated := e.model.scoreURL(ExtractFeatures(url))

	if ruleFlagged {
		return domain.LinkFinding{
			URL:  url,
			Path: domain.PathRuleMatch,
			Verdict: domain.Verdict{
				Label:      domain.LabelMalicious,
				Confidence: sentinelFlagged,
				Reason:     strings.Join(ruleReasons, ", "),
			},
		}
	}

	if modelEvaluated && modelFlagged {
		return domain.LinkFinding{
			URL:  url,
			Path: domain.PathModelMatch,
			Verdict: domain.Verdict{
				Label:      domain.LabelMalicious,
				Confidence: modelConfidence,
				Reason:     reasonModelFlagged,
			},
		}
	}

	verdict := domain.Verdict{Label: domain.LabelBenign}
	if modelEvaluated {
		verdict.Confidence = modelConfidence
		verdict.Reason = reasonCleanActive
	} else {
		verdict.Confidence = sentinelClear
		verdict.Reason = reasonCleanDegraded
	}

	return domain.LinkFinding{
		URL:     url,
		Path:    domain.PathClean,
		Verdict: verdict,
	}
}

// BuildReport validates the input, then classifies the text and every
// extracted URL into one immutable report
//
// Returns *InvalidInputError (and no report) when the input fails validation;
// no classifier runs in that case.
func (e *Engine) BuildReport(text string) (*domain.AnalysisReport, error) {
	if err := ValidateInput(text); err != nil {
		return nil, err
	}

	textVerdict := e.ClassifyText(text)

	urls := ExtractURLs(text)
	findings := make([]domain.LinkFinding, 0, len(urls))
	for _, url := range urls {
		findings = append(findings, e.ClassifyLink(url))
	}

	recommendation := domain.RecommendationProceed
	if textVerdict.Malicious() {
		recommendation = domain.RecommendationBlock
	}
	for _, finding := range findings {
		if finding.Verdict.Malicious() {
			recommendation = domain.RecommendationBlock
			break
		}
	}

	return &domain.AnalysisReport{
		ID:             uuid.New(),
		TextVerdict:    textVerdict,
		Links:          findings,
		Recommendation: recommendation,
		Mode:           e.Mode(),
		AnalyzedAt:     time.Now(),
	}, nil
}

// ExtractURLs returns every http(s) link in the text, in order of appearance,
// duplicates preserved
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
