package diagnose

import (
	"testing"

	"podscout/internal/snapshot"
)

func kinds(issues []Issue) []Kind {
	out := make([]Kind, len(issues))
	for i, is := range issues {
		out[i] = is.Kind
	}
	return out
}

func TestClassify_CrashLoopWithHighRestarts(t *testing.T) {
	containers := []snapshot.ContainerStatus{
		{
			Name:         "app",
			RestartCount: 12,
			State:        snapshot.ContainerState{Kind: snapshot.StateWaiting, Reason: "CrashLoopBackOff"},
		},
	}
	got := Classify(snapshot.PhaseRunning, containers, nil)

	want := []Kind{KindCrashLoopBackOff, KindHighRestartCount}
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("kinds = %v, want %v", gk, want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, gk[i], want[i])
		}
	}
	if got[0].Detail != "container app is in CrashLoopBackOff" {
		t.Errorf("detail = %q", got[0].Detail)
	}
}

func TestClassify_PendingWithUnschedulable(t *testing.T) {
	conditions := []snapshot.Condition{
		{Type: "PodScheduled", Status: false, Reason: "Unschedulable", Message: "0/3 nodes are available"},
	}
	got := Classify(snapshot.PhasePending, nil, conditions)

	want := []Kind{KindPodPending, KindConditionFailed}
	gk := kinds(got)
	if len(gk) != 2 || gk[0] != want[0] || gk[1] != want[1] {
		t.Fatalf("kinds = %v, want %v", gk, want)
	}
	if got[1].Detail != "PodScheduled condition is false: 0/3 nodes are available" {
		t.Errorf("condition detail = %q", got[1].Detail)
	}
}

func TestClassify_ImagePullReasons(t *testing.T) {
	for _, reason := range []string{"ImagePullBackOff", "ErrImagePull"} {
		containers := []snapshot.ContainerStatus{
			{Name: "web", State: snapshot.ContainerState{Kind: snapshot.StateWaiting, Reason: reason}},
		}
		got := Classify(snapshot.PhaseRunning, containers, nil)
		if len(got) != 1 || got[0].Kind != KindImagePullError {
			t.Errorf("reason %s: got %v, want one ImagePullError", reason, got)
		}
	}
}

func TestClassify_OOMKilled(t *testing.T) {
	containers := []snapshot.ContainerStatus{
		{Name: "worker", State: snapshot.ContainerState{Kind: snapshot.StateTerminated, Reason: "OOMKilled", ExitCode: 137}},
	}
	got := Classify(snapshot.PhaseRunning, containers, nil)
	if len(got) != 1 || got[0].Kind != KindOOMKilled {
		t.Fatalf("got %v, want one OOMKilled", got)
	}
}

func TestClassify_RestartThresholdBoundary(t *testing.T) {
	cases := []struct {
		restarts int32
		want     int
	}{
		{0, 0},
		{5, 0}, // threshold is exclusive
		{6, 1},
	}
	for _, tc := range cases {
		containers := []snapshot.ContainerStatus{
			{Name: "app", RestartCount: tc.restarts, State: snapshot.ContainerState{Kind: snapshot.StateRunning}},
		}
		got := Classify(snapshot.PhaseRunning, containers, nil)
		if len(got) != tc.want {
			t.Errorf("restarts=%d: got %d issues, want %d", tc.restarts, len(got), tc.want)
		}
	}
}

func TestClassify_HealthyPod(t *testing.T) {
	containers := []snapshot.ContainerStatus{
		{Name: "app", Ready: true, State: snapshot.ContainerState{Kind: snapshot.StateRunning}},
	}
	conditions := []snapshot.Condition{
		{Type: "Ready", Status: true},
		{Type: "PodScheduled", Status: true},
	}
	if got := Classify(snapshot.PhaseRunning, containers, conditions); len(got) != 0 {
		t.Errorf("healthy pod produced issues: %v", got)
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	if got := Classify("", nil, nil); len(got) != 0 {
		t.Errorf("empty input produced issues: %v", got)
	}
}

func TestClassify_IgnoresUnwatchedConditions(t *testing.T) {
	conditions := []snapshot.Condition{
		{Type: "ContainersReady", Status: false, Message: "not ready"},
	}
	if got := Classify(snapshot.PhaseRunning, nil, conditions); len(got) != 0 {
		t.Errorf("unwatched condition produced issues: %v", got)
	}
}
