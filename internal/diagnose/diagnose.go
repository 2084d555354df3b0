package diagnose

import "podscout/internal/snapshot"

// Result is the combined output of the three detectors over one snapshot.
// Issues keeps the contract order: classifier output first, then the log
// scanner's, then the event filter's. That order flows through to the
// recommendation engine unchanged.
type Result struct {
	Issues      []Issue      `json:"issues"`
	LogFindings []LogFinding `json:"log_findings,omitempty"`
	ErrorLines  []string     `json:"error_lines,omitempty"`
}

// Run executes all detectors over the snapshot and unions their output.
// Pure and total: partial snapshots (empty logs, no events, no containers)
// yield a valid, possibly empty result.
func Run(snap snapshot.PodSnapshot) Result {
	var res Result

	res.Issues = Classify(snap.Phase, snap.Containers, snap.Conditions)

	if HasErrorPatterns(snap.LogText) {
		res.Issues = append(res.Issues, Issue{
			Kind:   KindLogErrorPattern,
			Detail: "error patterns detected in logs",
		})
	}
	res.LogFindings = ScanLogs(snap.LogText)
	res.ErrorLines = RecentErrorLines(snap.LogText)

	res.Issues = append(res.Issues, FilterEvents(snap.Events, snap.Name)...)

	return res
}
