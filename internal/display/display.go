// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output, markdown reports, logs, and docs.
// Keep raw codes for JSON fields, map keys, and equality comparisons.
package display

import (
	"fmt"
	"time"

	"podscout/internal/diagnose"
)

// --- Issue kinds ---

var issueKinds = map[diagnose.Kind]string{
	diagnose.KindCrashLoopBackOff: "Crash Loop",
	diagnose.KindImagePullError:   "Image Pull Failure",
	diagnose.KindOOMKilled:        "Out of Memory Kill",
	diagnose.KindHighRestartCount: "Restart Storm",
	diagnose.KindPodPending:       "Stuck Pod",
	diagnose.KindConditionFailed:  "Failed Condition",
	diagnose.KindWarningEvent:     "Cluster Warning",
	diagnose.KindLogErrorPattern:  "Log Errors",
}

// IssueKind returns the human-readable name for an issue kind.
// Unknown kinds are returned as-is.
func IssueKind(k diagnose.Kind) string {
	if name, ok := issueKinds[k]; ok {
		return name
	}
	return string(k)
}

// IssueKindWithCode returns "Crash Loop (CrashLoopBackOff)" format.
func IssueKindWithCode(k diagnose.Kind) string {
	if name, ok := issueKinds[k]; ok {
		return name + " (" + string(k) + ")"
	}
	return string(k)
}

// --- Severity ---

var severities = map[diagnose.Severity]string{
	diagnose.SeverityHigh:   "High",
	diagnose.SeverityMedium: "Medium",
	diagnose.SeverityLow:    "Low",
}

// severityMarks give severities a terminal-friendly glyph prefix.
var severityMarks = map[diagnose.Severity]string{
	diagnose.SeverityHigh:   "!!",
	diagnose.SeverityMedium: "!",
	diagnose.SeverityLow:    "-",
}

// Severity returns the human-readable severity name.
func Severity(s diagnose.Severity) string {
	if name, ok := severities[s]; ok {
		return name
	}
	return string(s)
}

// SeverityMark returns "!! High" format for table cells.
func SeverityMark(s diagnose.Severity) string {
	name, ok := severities[s]
	if !ok {
		return string(s)
	}
	return severityMarks[s] + " " + name
}

// --- Category ---

var categories = map[diagnose.Category]string{
	diagnose.CategoryRuntime:       "Runtime",
	diagnose.CategoryConfiguration: "Configuration",
	diagnose.CategoryResources:     "Resources",
	diagnose.CategoryScheduling:    "Scheduling",
}

// Category returns the human-readable category name.
func Category(c diagnose.Category) string {
	if name, ok := categories[c]; ok {
		return name
	}
	return string(c)
}

// --- Ages ---

// Age renders the distance between t and now as a compact kubectl-style
// age: "3d", "2h", "15m", "42s". Zero times render as "unknown".
func Age(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours())/24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
