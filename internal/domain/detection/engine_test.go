package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelai/phishguard/internal/domain"
)

// stubModel is a call-counting ModelProvider for testing mode behavior
type stubModel struct {
	urlLabel       int
	urlConfidence  float64
	textLabel      int
	textConfidence float64

	urlCalls       int
	textCalls      int
	vectorizeCalls int
}

func (m *stubModel) ClassifyURL(features []float64) (int, float64) {
	m.urlCalls++
	return m.urlLabel, m.urlConfidence
}

func (m *stubModel) VectorizeText(text string) []float64 {
	m.vectorizeCalls++
	return []float64{float64(len(text))}
}

func (m *stubModel) ClassifyText(features []float64) (int, float64) {
	m.textCalls++
	return m.textLabel, m.textConfidence
}

func TestEngine_AllowlistPrecedence(t *testing.T) {
	// The model insists everything is malicious; allowlisted domains must win
	// regardless.
	stub := &stubModel{urlLabel: 1, urlConfidence: 0.99}
	engine := NewEngine(nil, stub)

	finding := engine.ClassifyLink("http://paypal.com/signin")

	assert.Equal(t, domain.LabelBenign, finding.Verdict.Label)
	assert.Equal(t, domain.PathAllowlisted, finding.Path)
	assert.Equal(t, "trusted domain", finding.Verdict.Reason)
	assert.Equal(t, 0, stub.urlCalls, "allowlisted URLs must not reach the model")
}

func TestEngine_DegradedNeverInvokesModel(t *testing.T) {
	// Degraded mode means the provider was never handed to the engine; the
	// stub stands in for the absent model and must stay untouched.
	stub := &stubModel{}
	engine := NewEngine(nil, nil)
	require.Equal(t, domain.ModeDegraded, engine.Mode())

	engine.ClassifyText("URGENT: verify your bank password immediately or else")
	engine.ClassifyLink("http://192.168.1.5/login")
	engine.ClassifyLink("http://example.com")

	assert.Zero(t, stub.urlCalls)
	assert.Zero(t, stub.textCalls)
	assert.Zero(t, stub.vectorizeCalls)
}

func TestEngine_ClassifyText_DegradedUsesSentinelConfidence(t *testing.T) {
	engine := NewEngine(nil, nil)

	verdict := engine.ClassifyText("URGENT: verify your account immediately")
	assert.Equal(t, domain.LabelMalicious, verdict.Label)
	assert.Equal(t, 95.0, verdict.Confidence)
	assert.Equal(t, "contains panic words: urgent, verify, immediately", verdict.Reason)

	verdict = engine.ClassifyText("see you at lunch tomorrow, usual place")
	assert.Equal(t, domain.LabelBenign, verdict.Label)
	assert.Equal(t, 5.0, verdict.Confidence)
	assert.Equal(t, "language appears normal", verdict.Reason)
}

func TestEngine_ClassifyText_ActiveUsesModelConfidence(t *testing.T) {
	stub := &stubModel{textLabel: 1, textConfidence: 0.87}
	engine := NewEngine(nil, stub)
	require.Equal(t, domain.ModeActive, engine.Mode())

	verdict := engine.ClassifyText("completely innocuous text with no keywords at all")

	// Active mode trusts the model over the keyword scan, with a generic reason
	assert.Equal(t, domain.LabelMalicious, verdict.Label)
	assert.InDelta(t, 87.0, verdict.Confidence, 0.001)
	assert.Equal(t, "suspicious language patterns detected", verdict.Reason)
	assert.Equal(t, 1, stub.vectorizeCalls)
	assert.Equal(t, 1, stub.textCalls)
}

func TestEngine_ClassifyLink_RuleReasonWinsOverModel(t *testing.T) {
	// Both the rules and the model flag the URL. The interpretable rule
	// reasons are surfaced; the model's opinion stays behind the scenes.
	stub := &stubModel{urlLabel: 1, urlConfidence: 0.99}
	engine := NewEngine(nil, stub)

	finding := engine.ClassifyLink("http://192.168.1.5/login")

	assert.Equal(t, domain.LabelMalicious, finding.Verdict.Label)
	assert.Equal(t, domain.PathRuleMatch, finding.Path)
	assert.Equal(t, 95.0, finding.Verdict.Confidence)
	assert.Equal(t, "high digit count, IP address masking", finding.Verdict.Reason)
}

func TestEngine_ClassifyLink_ModelAloneCanFlag(t *testing.T) {
	// OR-of-failures: no rule fires, but the model's suspicion is sufficient.
	stub := &stubModel{urlLabel: 1, urlConfidence: 0.91}
	engine := NewEngine(nil, stub)

	finding := engine.ClassifyLink("http://example.net")

	assert.Equal(t, domain.LabelMalicious, finding.Verdict.Label)
	assert.Equal(t, domain.PathModelMatch, finding.Path)
	assert.InDelta(t, 91.0, finding.Verdict.Confidence, 0.001)
	assert.Equal(t, "statistical model flagged this URL", finding.Verdict.Reason)
}

func TestEngine_ClassifyLink_CleanActive(t *testing.T) {
	stub := &stubModel{urlLabel: 0, urlConfidence: 0.03}
	engine := NewEngine(nil, stub)

	finding := engine.ClassifyLink("http://example.com")

	assert.Equal(t, domain.LabelBenign, finding.Verdict.Label)
	assert.Equal(t, domain.PathClean, finding.Path)
	assert.Equal(t, "clean — passed rule and model checks", finding.Verdict.Reason)
}

func TestEngine_ClassifyLink_CleanDegraded(t *testing.T) {
	engine := NewEngine(nil, nil)

	finding := engine.ClassifyLink("http://example.com")

	assert.Equal(t, domain.LabelBenign, finding.Verdict.Label)
	assert.Equal(t, domain.PathClean, finding.Path)
	assert.Equal(t, 5.0, finding.Verdict.Confidence)
	assert.Equal(t, "clean — passed rule checks", finding.Verdict.Reason)
}

func TestEngine_ClassifyLink_Idempotent(t *testing.T) {
	stub := &stubModel{urlLabel: 1, urlConfidence: 0.8}
	engine := NewEngine(nil, stub)

	url := "http://login-secure-update-account-now.example.net"
	first := engine.ClassifyLink(url)
	second := engine.ClassifyLink(url)

	assert.Equal(t, first, second)
}

func TestEngine_BuildReport_PhishingScenario(t *testing.T) {
	engine := NewEngine(nil, nil) // Degraded

	report, err := engine.BuildReport(
		"URGENT: verify your account now or it will be suspended. " +
			"Visit http://192.168.1.5/login-now and http://paypal.com/signin")
	require.NoError(t, err)

	assert.Equal(t, domain.ModeDegraded, report.Mode)

	assert.Equal(t, domain.LabelMalicious, report.TextVerdict.Label)
	assert.Contains(t, report.TextVerdict.Reason, "urgent")
	assert.Contains(t, report.TextVerdict.Reason, "verify")
	assert.Contains(t, report.TextVerdict.Reason, "suspended")

	require.Len(t, report.Links, 2)

	ip := report.Links[0]
	assert.Equal(t, "http://192.168.1.5/login-now", ip.URL)
	assert.Equal(t, domain.LabelMalicious, ip.Verdict.Label)
	assert.Contains(t, ip.Verdict.Reason, "IP address masking")

	trusted := report.Links[1]
	assert.Equal(t, "http://paypal.com/signin", trusted.URL)
	assert.Equal(t, domain.LabelBenign, trusted.Verdict.Label)
	assert.Equal(t, domain.PathAllowlisted, trusted.Path)

	assert.Equal(t, domain.RecommendationBlock, report.Recommendation)
}

func TestEngine_BuildReport_TooShortInputRunsNothing(t *testing.T) {
	stub := &stubModel{textLabel: 1, textConfidence: 0.99}
	engine := NewEngine(nil, stub)

	report, err := engine.BuildReport("nineteen chars here") // exactly 19

	assert.Nil(t, report)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, ReasonTooShort, invalid.Reason)

	assert.Zero(t, stub.textCalls, "no classifier may run on rejected input")
	assert.Zero(t, stub.urlCalls)
}

func TestEngine_BuildReport_CleanEmailProceeds(t *testing.T) {
	stub := &stubModel{} // model says benign for everything
	engine := NewEngine(nil, stub)

	report, err := engine.BuildReport(
		"Hi team, notes from today are at http://example.com for review. Thanks!")
	require.NoError(t, err)

	assert.Equal(t, domain.LabelBenign, report.TextVerdict.Label)
	require.Len(t, report.Links, 1)
	assert.Equal(t, domain.PathClean, report.Links[0].Path)
	assert.Equal(t, "clean — passed rule and model checks", report.Links[0].Verdict.Reason)
	assert.Equal(t, domain.RecommendationProceed, report.Recommendation)
	assert.Equal(t, 0, report.MaliciousLinkCount())
}

func TestEngine_BuildReport_NoLinks(t *testing.T) {
	engine := NewEngine(nil, nil)

	report, err := engine.BuildReport(
		"Reminder that the team offsite happens on Monday, bring your laptop.")
	require.NoError(t, err)

	assert.Empty(t, report.Links)
	assert.Equal(t, domain.RecommendationProceed, report.Recommendation)
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "No URLs",
			text:     "nothing to see here",
			expected: nil,
		},
		{
			name:     "Order and duplicates preserved",
			text:     "first http://a.com then http://b.com then http://a.com again",
			expected: []string{"http://a.com", "http://b.com", "http://a.com"},
		},
		{
			name: "Trailing punctuation kept as part of the URL",
			// intentional simplification: tokens run to the next whitespace
			text:     "read this: https://example.com/page, it is great",
			expected: []string{"https://example.com/page,"},
		},
		{
			name:     "https and http both matched",
			text:     "see https://secure.example.com and http://plain.example.com now",
			expected: []string{"https://secure.example.com", "http://plain.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractURLs(tt.text))
		})
	}
}
