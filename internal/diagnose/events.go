package diagnose

import (
	"fmt"

	"podscout/internal/snapshot"
)

// warningReasons is the known-bad set of warning-event reasons.
var warningReasons = map[string]bool{
	"Failed":           true,
	"FailedScheduling": true,
	"FailedMount":      true,
}

// FilterEvents emits a WarningEvent issue for each Warning-typed event
// whose reason is in the known-bad set. When podName is non-empty, only
// events about that pod are considered. Input order is preserved.
func FilterEvents(events []snapshot.EventRecord, podName string) []Issue {
	var issues []Issue
	for _, e := range events {
		if podName != "" && e.Object.Name != podName {
			continue
		}
		if e.Type != snapshot.EventWarning {
			continue
		}
		if !warningReasons[e.Reason] {
			continue
		}
		issues = append(issues, Issue{
			Kind:   KindWarningEvent,
			Detail: fmt.Sprintf("warning event: %s - %s", e.Reason, e.Message),
		})
	}
	return issues
}
