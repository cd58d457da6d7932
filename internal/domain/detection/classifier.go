package detection

import (
	"github.com/sentinelai/phishguard/internal/domain"
	"github.com/sentinelai/phishguard/internal/ports"
)

// Sentinel confidences for verdicts not produced by the statistical path.
// Rules are binary, so these are conventions, not probabilities.
const (
	sentinelFlagged      = 95.0
	sentinelClear        = 5.0
	allowlistConfidence  = 100.0
	textReasonSuspicious = "suspicious language patterns detected"
)

// threatModel is the capability interface behind the Active/Degraded split
//
// Exactly one implementation is selected when the engine is constructed:
// statisticalModel when a ModelProvider loaded, ruleFallback otherwise. The
// classifiers never check for a missing model at call time.
type threatModel interface {
	// classifyText produces the content verdict for the whole email body
	classifyText(text string) domain.Verdict

	// scoreURL contributes the model's signal for one URL. evaluated is false
	// when this implementation has no statistical model to consult.
	scoreURL(features FeatureVector) (flagged bool, confidence float64, evaluated bool)

	mode() domain.EngineMode
}

// statisticalModel is the Active-mode implementation backed by a ModelProvider
type statisticalModel struct {
	provider ports.ModelProvider
}

func (m *statisticalModel) classifyText(text string) domain.Verdict {
	features := m.provider.VectorizeText(text)
	label, confidence := m.provider.ClassifyText(features)

	// The statistical path has no per-feature attribution, so the reason is a
	// fixed generic string either way.
	if label == 1 {
		return domain.Verdict{
			Label:      domain.LabelMalicious,
			Confidence: confidence * 100,
			Reason:     textReasonSuspicious,
		}
	}
	return domain.Verdict{
		Label:      domain.LabelBenign,
		Confidence: (1 - confidence) * 100,
		Reason:     TextReasonNormal,
	}
}

func (m *statisticalModel) scoreURL(features FeatureVector) (bool, float64, bool) {
	label, confidence := m.provider.ClassifyURL(features)
	if label == 1 {
		return true, confidence * 100, true
	}
	return false, (1 - confidence) * 100, true
}

func (m *statisticalModel) mode() domain.EngineMode {
	return domain.ModeActive
}

// ruleFallback is the Degraded-mode implementation: text verdicts come from
// the heuristic keyword scan, URL verdicts from the rule engine alone
type ruleFallback struct{}

func (m *ruleFallback) classifyText(text string) domain.Verdict {
	suspicious, reason := ScoreText(text)
	if suspicious {
		return domain.Verdict{
			Label:      domain.LabelMalicious,
			Confidence: sentinelFlagged,
			Reason:     reason,
		}
	}
	return domain.Verdict{
		Label:      domain.LabelBenign,
		Confidence: sentinelClear,
		Reason:     reason,
	}
}

func (m *ruleFallback) scoreURL(features FeatureVector) (bool, float64, bool) {
	return false, 0, false
}

func (m *ruleFallback) mode() domain.EngineMode {
	return domain.ModeDegraded
}
