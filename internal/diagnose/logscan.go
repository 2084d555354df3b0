package diagnose

import (
	"regexp"
	"strings"
)

// Log-scanner window sizes, carried over from the original known-issue
// table. logTailWindow bounds how far back the line scan looks;
// maxErrorLines bounds how many matching lines are reported.
const (
	logTailWindow = 50
	maxErrorLines = 5
)

// LogFinding is one matched log signature with its human description.
type LogFinding struct {
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

// logSignature pairs a compiled pattern with a description. The table is
// data, not code: extending it never touches the scan functions.
type logSignature struct {
	re   *regexp.Regexp
	desc string
}

// errorSignatures is the ordered detailed-scan table. Each signature is
// matched independently; a log may trigger several descriptions.
var errorSignatures = []logSignature{
	{regexp.MustCompile(`(?i)out of memory|oom|OutOfMemoryError`), "Memory issues detected - consider increasing memory limits"},
	{regexp.MustCompile(`(?i)connection refused|connection timeout`), "Network connectivity issues detected"},
	{regexp.MustCompile(`(?i)permission denied|access denied`), "Permission/security issues detected"},
	{regexp.MustCompile(`(?i)no space left|disk full`), "Disk space issues detected"},
	{regexp.MustCompile(`(?i)image.*not found|pull.*failed`), "Container image issues detected"},
	{regexp.MustCompile(`(?i)port.*already in use|address already in use`), "Port conflict detected"},
	{regexp.MustCompile(`(?i)failed to start|startup failed|initialization failed`), "Application startup issues detected"},
}

// quickErrorPatterns is the coarse has-any-error set used by the boolean
// check over the full log text.
var quickErrorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)error`),
	regexp.MustCompile(`(?i)exception`),
	regexp.MustCompile(`(?i)fatal`),
	regexp.MustCompile(`(?i)panic`),
	regexp.MustCompile(`(?i)failed`),
	regexp.MustCompile(`(?i)timeout`),
}

// errorLineWords flag individual log lines in the tail scan.
var errorLineWords = []string{"error", "exception", "fatal", "panic"}

// HasErrorPatterns reports whether the log text matches any coarse error
// pattern. Empty text never matches.
func HasErrorPatterns(logText string) bool {
	if logText == "" {
		return false
	}
	for _, re := range quickErrorPatterns {
		if re.MatchString(logText) {
			return true
		}
	}
	return false
}

// ScanLogs runs the detailed signature table over the full log text and
// returns each matched description exactly once, in table order.
func ScanLogs(logText string) []LogFinding {
	if logText == "" {
		return nil
	}
	var findings []LogFinding
	for _, sig := range errorSignatures {
		if sig.re.MatchString(logText) {
			findings = append(findings, LogFinding{
				Pattern:     sig.re.String(),
				Description: sig.desc,
			})
		}
	}
	return findings
}

// RecentErrorLines scans the last logTailWindow lines for error-ish words
// (case-insensitive substring match) and returns at most the last
// maxErrorLines matches, trimmed.
func RecentErrorLines(logText string) []string {
	if logText == "" {
		return nil
	}
	lines := strings.Split(logText, "\n")
	if len(lines) > logTailWindow {
		lines = lines[len(lines)-logTailWindow:]
	}

	var matched []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, w := range errorLineWords {
			if strings.Contains(lower, w) {
				matched = append(matched, strings.TrimSpace(line))
				break
			}
		}
	}
	if len(matched) > maxErrorLines {
		matched = matched[len(matched)-maxErrorLines:]
	}
	return matched
}
