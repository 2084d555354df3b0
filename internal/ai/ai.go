// Package ai is the optional narrative backend: a single-capability
// Summarizer interface, a config-driven factory, and a deterministic
// fallback used whenever the backend is absent or failing. The detection
// and recommendation core never sees this package.
package ai

import (
	"context"
	"fmt"
	"strings"
)

// Context is the structured blob handed to the narrative backend. It is
// assembled from the same gathered data the detectors ran over; the
// backend adds prose, never facts.
type Context struct {
	PodName    string   `json:"pod_name"`
	Namespace  string   `json:"namespace"`
	Phase      string   `json:"phase"`
	Issues     []string `json:"issues,omitempty"`
	QuickFixes []string `json:"quick_fixes,omitempty"`
	LogExcerpt string   `json:"log_excerpt,omitempty"`
	Events     []string `json:"events,omitempty"`
}

// Summarizer is the narrative capability. Implementations paraphrase the
// gathered context into prose; they must not be consulted for detection.
type Summarizer interface {
	// Summarize returns free-text commentary on the diagnosis context.
	Summarize(ctx context.Context, dc Context) (string, error)
	// Name returns the provider identifier (e.g. "openai", "ollama").
	Name() string
}

// systemPrompt frames every provider request.
const systemPrompt = "You are a Kubernetes expert helping to diagnose pod issues. " +
	"Given the pod state, detected issues, events and log excerpt, explain the " +
	"likely root cause and the next debugging steps in plain language. Be concise."

// BuildPrompt renders the context as the user message sent to providers.
// Exported so provider subpackages share one rendering.
func BuildPrompt(dc Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pod %s in namespace %s is in phase %s.\n", dc.PodName, dc.Namespace, dc.Phase)
	if len(dc.Issues) > 0 {
		b.WriteString("\nDetected issues:\n")
		for _, is := range dc.Issues {
			fmt.Fprintf(&b, "- %s\n", is)
		}
	}
	if len(dc.Events) > 0 {
		b.WriteString("\nRecent events:\n")
		for _, e := range dc.Events {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	if len(dc.QuickFixes) > 0 {
		b.WriteString("\nSuggested quick fixes:\n")
		for _, q := range dc.QuickFixes {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	if dc.LogExcerpt != "" {
		fmt.Fprintf(&b, "\nLog excerpt:\n%s\n", truncate(dc.LogExcerpt, 3000))
	}
	b.WriteString("\nProvide: 1. a summary of the problem, 2. the likely root cause, 3. recommended next steps.")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
