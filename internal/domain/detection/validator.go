package detection

import (
	"fmt"
	"strings"
)

// Input thresholds. Anything below these is garbage in, and running the
// classifiers on it would only produce nonsensical verdicts.
const (
	minInputLength = 20
	minWordCount   = 3
	maxTokenLength = 40
)

// Validation reasons surfaced to the caller
const (
	ReasonEmpty       = "input is empty"
	ReasonTooShort    = "input too short to analyze (minimum 20 characters)"
	ReasonTooFewWords = "not enough words to analyze (minimum 3)"
	ReasonGibberish   = "input looks like gibberish (overlong token that is not a URL)"
)

// InvalidInputError explains why an input was rejected before analysis.
// It is the only error the core engine returns.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// ValidateInput rejects degenerate input before any classifier runs
//
// Checks, in order: empty/whitespace-only; trimmed length under 20 characters;
// fewer than 3 whitespace-delimited words; any token longer than 40 characters
// that does not contain "http" (legitimate long tokens are almost always URLs).
func ValidateInput(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &InvalidInputError{Reason: ReasonEmpty}
	}

	if len(trimmed) < minInputLength {
		return &InvalidInputError{Reason: ReasonTooShort}
	}

	tokens := strings.Fields(trimmed)
	if len(tokens) < minWordCount {
		return &InvalidInputError{Reason: ReasonTooFewWords}
	}

	for _, token := range tokens {
		if len(token) > maxTokenLength && !strings.Contains(token, "http") {
			return &InvalidInputError{Reason: ReasonGibberish}
		}
	}

	return nil
}
