package diagnose

import (
	"fmt"

	"podscout/internal/snapshot"
)

// restartThreshold is the restart count above which a container is flagged.
// Carried over from the known-issue table; not tunable at runtime.
const restartThreshold = 5

// reasons that mark a waiting container as unable to pull its image.
var imagePullReasons = map[string]bool{
	"ImagePullBackOff": true,
	"ErrImagePull":     true,
}

// conditions whose false status is worth surfacing.
var watchedConditions = map[string]bool{
	"Ready":        true,
	"PodScheduled": true,
}

// Classify inspects phase, container states and conditions and emits every
// matching issue, in rule order. It never fails: absent fields simply
// produce no match.
func Classify(phase snapshot.Phase, containers []snapshot.ContainerStatus, conditions []snapshot.Condition) []Issue {
	var issues []Issue

	if phase == snapshot.PhaseFailed || phase == snapshot.PhasePending {
		issues = append(issues, Issue{
			Kind:   KindPodPending,
			Detail: fmt.Sprintf("pod is in %s state", phase),
		})
	}

	for _, c := range containers {
		switch c.State.Kind {
		case snapshot.StateWaiting:
			if c.State.Reason == "CrashLoopBackOff" {
				issues = append(issues, Issue{
					Kind:   KindCrashLoopBackOff,
					Detail: fmt.Sprintf("container %s is in CrashLoopBackOff", c.Name),
				})
			}
			if imagePullReasons[c.State.Reason] {
				issues = append(issues, Issue{
					Kind:   KindImagePullError,
					Detail: fmt.Sprintf("container %s has image pull issues (%s)", c.Name, c.State.Reason),
				})
			}
		case snapshot.StateTerminated:
			if c.State.Reason == "OOMKilled" {
				issues = append(issues, Issue{
					Kind:   KindOOMKilled,
					Detail: fmt.Sprintf("container %s was killed due to OOM (out of memory)", c.Name),
				})
			}
		}
		if c.RestartCount > restartThreshold {
			issues = append(issues, Issue{
				Kind:   KindHighRestartCount,
				Detail: fmt.Sprintf("container %s has high restart count: %d", c.Name, c.RestartCount),
			})
		}
	}

	for _, cond := range conditions {
		if !cond.Status && watchedConditions[cond.Type] {
			issues = append(issues, Issue{
				Kind:   KindConditionFailed,
				Detail: fmt.Sprintf("%s condition is false: %s", cond.Type, cond.Message),
			})
		}
	}

	return issues
}
