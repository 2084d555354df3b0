package kube

import (
	"time"

	corev1 "k8s.io/api/core/v1"

	"podscout/internal/snapshot"
)

func convertPod(pod *corev1.Pod) snapshot.PodSnapshot {
	snap := snapshot.PodSnapshot{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		Phase:     snapshot.Phase(pod.Status.Phase),
	}
	for _, cs := range pod.Status.ContainerStatuses {
		snap.Containers = append(snap.Containers, convertContainer(cs))
	}
	for _, cond := range pod.Status.Conditions {
		snap.Conditions = append(snap.Conditions, snapshot.Condition{
			Type:    string(cond.Type),
			Status:  cond.Status == corev1.ConditionTrue,
			Reason:  cond.Reason,
			Message: cond.Message,
		})
	}
	return snap
}

func convertContainer(cs corev1.ContainerStatus) snapshot.ContainerStatus {
	return snapshot.ContainerStatus{
		Name:         cs.Name,
		Ready:        cs.Ready,
		RestartCount: cs.RestartCount,
		State:        convertState(cs.State),
	}
}

func convertState(state corev1.ContainerState) snapshot.ContainerState {
	switch {
	case state.Waiting != nil:
		return snapshot.ContainerState{
			Kind:   snapshot.StateWaiting,
			Reason: state.Waiting.Reason,
		}
	case state.Terminated != nil:
		return snapshot.ContainerState{
			Kind:     snapshot.StateTerminated,
			Reason:   state.Terminated.Reason,
			ExitCode: state.Terminated.ExitCode,
		}
	default:
		return snapshot.ContainerState{Kind: snapshot.StateRunning}
	}
}

func convertEvent(ev corev1.Event) snapshot.EventRecord {
	return snapshot.EventRecord{
		Type:    ev.Type,
		Reason:  ev.Reason,
		Message: ev.Message,
		Object: snapshot.ObjectRef{
			Kind: ev.InvolvedObject.Kind,
			Name: ev.InvolvedObject.Name,
		},
		LastTimestamp: eventTime(ev),
		Count:         ev.Count,
	}
}

// eventTime picks the most useful timestamp an event carries. Newer API
// servers leave LastTimestamp zero and set EventTime instead.
func eventTime(ev corev1.Event) time.Time {
	if !ev.LastTimestamp.IsZero() {
		return ev.LastTimestamp.Time
	}
	if !ev.EventTime.IsZero() {
		return ev.EventTime.Time
	}
	return ev.CreationTimestamp.Time
}
