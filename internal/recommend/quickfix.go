package recommend

import "podscout/internal/diagnose"

// quickFixTips is the terse per-kind tip set used when a full diagnosis
// has not been run (e.g. the scan workflow, which only has coarse status).
var quickFixTips = map[diagnose.Kind][]string{
	diagnose.KindCrashLoopBackOff: {
		"Check logs for startup errors: kubectl logs <pod> --previous",
		"Verify resource limits are not too restrictive",
	},
	diagnose.KindImagePullError: {
		"Verify image name and tag are correct",
		"Check registry access and credentials",
	},
	diagnose.KindOOMKilled: {
		"Increase memory limits in pod specification",
		"Review application memory usage patterns",
	},
	diagnose.KindHighRestartCount: {
		"Check logs for startup errors: kubectl logs <pod> --previous",
		"Verify resource limits are not too restrictive",
	},
	diagnose.KindPodPending: {
		"Check node resources: kubectl describe nodes",
		"Verify scheduling constraints and tolerations",
	},
}

// QuickFixes returns one or two canned tips per detected issue, in issue
// order, deduplicated. Kinds without a tip contribute nothing.
func QuickFixes(issues []diagnose.Issue) []string {
	var fixes []string
	for _, issue := range issues {
		fixes = append(fixes, quickFixTips[issue.Kind]...)
	}
	return dedupe(fixes)
}
