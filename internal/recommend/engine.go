package recommend

import (
	"fmt"
	"math"

	"podscout/internal/diagnose"
	"podscout/internal/logging"
)

// Analysis is the fix bundle resolved for one detected issue.
type Analysis struct {
	Issue         string            `json:"issue"`
	Kind          diagnose.Kind     `json:"kind"`
	Severity      diagnose.Severity `json:"severity"`
	Category      diagnose.Category `json:"category"`
	Commands      []string          `json:"commands,omitempty"`
	QuickFixes    []string          `json:"quick_fixes,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
	PatchTemplate string            `json:"patch_template,omitempty"`
}

// Bundle is the per-run aggregate recommendation result.
type Bundle struct {
	PodName    string     `json:"pod_name"`
	Namespace  string     `json:"namespace"`
	Summary    string     `json:"summary"`
	Issues     []Analysis `json:"issues_analyzed"`
	Commands   []string   `json:"commands"`
	QuickFixes []string   `json:"quick_fixes,omitempty"`
	Confidence float64    `json:"confidence_score"`
}

// Recommend resolves each detected issue against the template table and
// assembles the aggregate bundle. Issue order is preserved; issues without
// a template are logged and skipped, never fatal. The general diagnostic
// block is always appended, even when no issues were detected.
func Recommend(issues []diagnose.Issue, pod, namespace string) Bundle {
	log := logging.New("recommend")

	b := Bundle{PodName: pod, Namespace: namespace}
	issueCommands := 0

	for _, issue := range issues {
		sig, ok := diagnose.Lookup(issue.Kind)
		if !ok {
			log.Warn("no template for issue, skipping", "kind", issue.Kind, "issue", issue.Detail)
			continue
		}
		tpl, ok := templates[issue.Kind]
		if !ok {
			log.Warn("catalog kind has no fix template, skipping", "kind", issue.Kind)
			continue
		}

		a := Analysis{
			Issue:         issue.Detail,
			Kind:          issue.Kind,
			Severity:      sig.Severity,
			Category:      sig.Category,
			QuickFixes:    tpl.quickFixes,
			Explanation:   tpl.explanation,
			PatchTemplate: tpl.patch,
		}
		for _, c := range tpl.commands {
			a.Commands = append(a.Commands, render(c, pod, namespace))
		}
		b.Issues = append(b.Issues, a)

		b.Commands = append(b.Commands, a.Commands...)
		issueCommands += len(a.Commands)
		b.QuickFixes = append(b.QuickFixes, tpl.quickFixes...)
	}

	for _, c := range generalCommands {
		b.Commands = append(b.Commands, render(c, pod, namespace))
	}

	b.Commands = dedupe(b.Commands)
	b.QuickFixes = dedupe(b.QuickFixes)
	b.Summary = fmt.Sprintf("Found %d issues with %d recommended diagnostic commands and specific fixes provided.",
		len(b.Issues), len(b.Commands))
	b.Confidence = confidence(len(b.Issues), issueCommands, len(b.QuickFixes))

	return b
}

// confidence summarizes recommendation coverage: commands and quick fixes
// relative to three per issue, capped at 1.0 and rounded to 2 decimals.
// Zero issues means zero confidence.
func confidence(issues, commands, fixes int) float64 {
	if issues == 0 {
		return 0.0
	}
	score := math.Min(1.0, float64(commands+fixes)/float64(issues*3))
	return math.Round(score*100) / 100
}

// dedupe removes repeated strings, keeping the first occurrence in place.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
