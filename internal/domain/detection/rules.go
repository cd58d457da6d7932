package detection

import (
	"fmt"
	"strings"
)

// urlRule is a single deterministic check on a raw URL string
//
// Each rule carries its own human-readable reason so verdicts stay explainable
// without the statistical model.
type urlRule struct {
	reason    string
	triggered func(url string) bool
}

// urlRules is the fixed rule table evaluated by ScoreURL. Thresholds follow
// common phishing-URL traits: legitimate URLs are rarely this long, this
// dash-heavy, or addressed by raw IP.
var urlRules = []urlRule{
	{
		reason:    "abnormally long URL",
		triggered: func(url string) bool { return len(url) > 75 },
	},
	{
		reason:    "too many dashes / typosquatting",
		triggered: func(url string) bool { return strings.Count(url, "-") > 3 },
	},
	{
		reason:    "contains '@' — credential harvesting pattern",
		triggered: func(url string) bool { return strings.Contains(url, "@") },
	},
	{
		reason:    "too many subdomains",
		triggered: func(url string) bool { return strings.Count(url, ".") > 3 },
	},
	{
		reason:    "high digit count",
		triggered: func(url string) bool { return countDigits(url) > 5 },
	},
	{
		reason:    "IP address masking",
		triggered: func(url string) bool { return dottedQuadPattern.MatchString(url) },
	},
}

// panicKeywords are the social-engineering terms scanned for by ScoreText.
// Case-insensitive substring match against the whole text.
var panicKeywords = []string{
	"urgent", "verify", "suspended", "immediately", "close",
	"bank", "password", "unauthorized", "lock", "action required",
}

// TextReasonNormal is the reason attached to text that trips no keyword
const TextReasonNormal = "language appears normal"

// ScoreURL runs every URL rule and collects the reasons of all that fire
//
// Every matching rule contributes its reason — stopping at the first match
// would hide part of the justification from the user.
func ScoreURL(url string) (bool, []string) {
	reasons := make([]string, 0)
	for _, rule := range urlRules {
		if rule.triggered(url) {
			reasons = append(reasons, rule.reason)
		}
	}
	return len(reasons) > 0, reasons
}

// ScoreText scans text for panic keywords and reports all that matched
func ScoreText(text string) (bool, string) {
	lowered := strings.ToLower(text)

	matched := make([]string, 0)
	for _, keyword := range panicKeywords {
		if strings.Contains(lowered, keyword) {
			matched = append(matched, keyword)
		}
	}

	if len(matched) == 0 {
		return false, TextReasonNormal
	}
	return true, fmt.Sprintf("contains panic words: %s", strings.Join(matched, ", "))
}
