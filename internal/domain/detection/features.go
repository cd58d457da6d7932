package detection

import (
	"regexp"
	"strings"
)

// FeatureVector is the fixed-order numeric encoding of a URL consumed by the
// statistical model.
//
// The order is an external contract with the trained model artifact and is not
// renegotiable at runtime:
//
//	[0] total length
//	[1] dot count
//	[2] '@' count
//	[3] dash count
//	[4] digit count
//	[5] HTTPS flag (1/0)
//	[6] literal dotted-quad IP flag (1/0)
type FeatureVector []float64

// FeatureCount is the length every FeatureVector must have
const FeatureCount = 7

// dottedQuadPattern matches a numeric IPv4 literal anywhere in the URL.
// A substring check for "ip" is not acceptable here: it fires on any URL
// containing those letters (e.g. "tripadvisor").
var dottedQuadPattern = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

// ExtractFeatures turns a URL into its feature vector
//
// Total function: any string is acceptable, including malformed URLs. Counts
// are simple character tallies over the raw string, not the parsed host, so
// nothing here can fail — unparseable input just yields the flags as 0.
func ExtractFeatures(url string) FeatureVector {
	return FeatureVector{
		float64(len(url)),
		float64(strings.Count(url, ".")),
		float64(strings.Count(url, "@")),
		float64(strings.Count(url, "-")),
		float64(countDigits(url)),
		boolFeature(strings.HasPrefix(url, "https://")),
		boolFeature(dottedQuadPattern.MatchString(url)),
	}
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
