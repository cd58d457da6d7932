package presenter

import (
	"fmt"
	"io"
	"os"

	"github.com/sentinelai/phishguard/internal/domain"
)

// Console implements ports.Presenter by rendering reports as plain text
type Console struct {
	out io.Writer
}

// NewConsole creates a console presenter writing to stdout
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a console presenter writing to w
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// RenderReport prints the full analysis report: content verdict, per-link
// findings split into malicious and safe, and the final recommendation
func (c *Console) RenderReport(report *domain.AnalysisReport) error {
	fmt.Fprintln(c.out, "=== Analysis Report ===")
	if report.Mode == domain.ModeDegraded {
		fmt.Fprintln(c.out, "(statistical model unavailable — heuristic rules only)")
	}

	fmt.Fprintln(c.out, "\nContent Analysis")
	if report.TextVerdict.Malicious() {
		fmt.Fprintf(c.out, "  PHISHING DETECTED (confidence %.1f%%)\n", report.TextVerdict.Confidence)
	} else {
		fmt.Fprintf(c.out, "  Legitimate (confidence %.1f%%)\n", report.TextVerdict.Confidence)
	}
	fmt.Fprintf(c.out, "  %s\n", report.TextVerdict.Reason)

	fmt.Fprintln(c.out, "\nLink Analysis")
	if len(report.Links) == 0 {
		fmt.Fprintln(c.out, "  No links found in this email.")
	} else {
		malicious := report.MaliciousLinkCount()
		if malicious > 0 {
			fmt.Fprintf(c.out, "  Found %d malicious link(s):\n", malicious)
			for _, link := range report.Links {
				if link.Verdict.Malicious() {
					fmt.Fprintf(c.out, "    [!] %s — %s\n", link.URL, link.Verdict.Reason)
				}
			}
		}
		if safe := len(report.Links) - malicious; safe > 0 {
			fmt.Fprintf(c.out, "  Found %d safe link(s):\n", safe)
			for _, link := range report.Links {
				if !link.Verdict.Malicious() {
					fmt.Fprintf(c.out, "    [ok] %s — %s\n", link.URL, link.Verdict.Reason)
				}
			}
		}
	}

	fmt.Fprintln(c.out, "\nRecommendation")
	if report.Recommendation == domain.RecommendationBlock {
		fmt.Fprintln(c.out, "  DO NOT REPLY OR CLICK LINKS. This email is highly likely to be a phishing attack.")
	} else {
		fmt.Fprintln(c.out, "  SAFE TO PROCEED. No obvious threats were detected.")
	}
	fmt.Fprintln(c.out)

	return nil
}

// RenderInvalidInput prints a user-facing rejection message
func (c *Console) RenderInvalidInput(reason string) error {
	fmt.Fprintf(c.out, "Cannot analyze this input: %s\n\n", reason)
	return nil
}
