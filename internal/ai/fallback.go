package ai

import (
	"fmt"
	"strings"
)

// Fallback renders deterministic templated commentary from the same
// context the backend would see. It is substituted whenever the backend
// is unavailable or fails, so a diagnosis never blocks on AI.
func Fallback(dc Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pod %s/%s is in phase %s.\n", dc.Namespace, dc.PodName, dc.Phase)

	if len(dc.Issues) == 0 {
		b.WriteString("No known issues were detected. Review the diagnostic commands below for a manual check.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%d issue(s) were detected:\n", len(dc.Issues))
	for _, is := range dc.Issues {
		fmt.Fprintf(&b, "  - %s\n", is)
	}
	if len(dc.QuickFixes) > 0 {
		b.WriteString("Suggested starting points:\n")
		for _, f := range dc.QuickFixes {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	b.WriteString("AI commentary is unavailable; the above is generated from the detection results.\n")
	return b.String()
}
