package mcp

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"podscout/internal/kube"
	"podscout/internal/snapshot"
)

// fakeSource serves canned cluster state to the tool handlers.
type fakeSource struct {
	pods   map[string]snapshot.PodSnapshot
	list   []snapshot.PodSnapshot
	logs   string
	events []snapshot.EventRecord
}

func (f *fakeSource) GetPod(_ context.Context, namespace, name string) (snapshot.PodSnapshot, error) {
	snap, ok := f.pods[namespace+"/"+name]
	if !ok {
		return snapshot.PodSnapshot{}, kube.ErrNotFound
	}
	return snap, nil
}

func (f *fakeSource) GetLogs(_ context.Context, _, _ string, _ kube.LogOptions) (string, error) {
	return f.logs, nil
}

func (f *fakeSource) GetEvents(_ context.Context, _, podName string) ([]snapshot.EventRecord, error) {
	if podName == "" {
		return f.events, nil
	}
	var out []snapshot.EventRecord
	for _, ev := range f.events {
		if ev.Object.Name == podName {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeSource) ListPods(_ context.Context, _ string) ([]snapshot.PodSnapshot, error) {
	return f.list, nil
}

func (f *fakeSource) FollowLogs(_ context.Context, _, _ string, _ kube.LogOptions, _ io.Writer) error {
	return errors.New("not implemented")
}

func (f *fakeSource) TopPod(_ context.Context, _, _ string) (*snapshot.ResourceUsage, error) {
	return nil, errors.New("metrics unavailable")
}

func crashingPod() snapshot.PodSnapshot {
	return snapshot.PodSnapshot{
		Name:      "checkout",
		Namespace: "shop",
		Phase:     snapshot.PhaseRunning,
		Containers: []snapshot.ContainerStatus{
			{
				Name:         "app",
				RestartCount: 9,
				State:        snapshot.ContainerState{Kind: snapshot.StateWaiting, Reason: "CrashLoopBackOff"},
			},
		},
	}
}

func TestDiagnosePod(t *testing.T) {
	src := &fakeSource{
		pods: map[string]snapshot.PodSnapshot{"shop/checkout": crashingPod()},
		logs: "panic: runtime error\n",
	}
	srv := NewServer(src)

	_, out, err := srv.handleDiagnosePod(context.Background(), nil, diagnosePodInput{
		Name: "checkout", Namespace: "shop",
	})
	if err != nil {
		t.Fatalf("diagnose_pod: %v", err)
	}

	if out.Pod != "checkout" || out.Namespace != "shop" {
		t.Errorf("identity = %s/%s", out.Namespace, out.Pod)
	}
	if len(out.Issues) == 0 {
		t.Fatal("expected issues for a crash-looping pod")
	}
	if !strings.Contains(out.Issues[0], "CrashLoopBackOff") {
		t.Errorf("first issue = %q", out.Issues[0])
	}
	if out.Confidence <= 0 {
		t.Errorf("confidence = %v, want > 0", out.Confidence)
	}
	if len(out.Commands) == 0 || len(out.QuickFixes) == 0 {
		t.Error("expected commands and quick fixes")
	}
	if out.Analysis != "" {
		t.Errorf("analysis = %q, want empty without ai flag", out.Analysis)
	}
}

func TestDiagnosePod_NotFound(t *testing.T) {
	srv := NewServer(&fakeSource{pods: map[string]snapshot.PodSnapshot{}})
	_, _, err := srv.handleDiagnosePod(context.Background(), nil, diagnosePodInput{Name: "ghost"})
	if !errors.Is(err, kube.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestDiagnosePod_RequiresName(t *testing.T) {
	srv := NewServer(&fakeSource{})
	_, _, err := srv.handleDiagnosePod(context.Background(), nil, diagnosePodInput{})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestDiagnosePod_AIFallbackWithoutProvider(t *testing.T) {
	src := &fakeSource{
		pods: map[string]snapshot.PodSnapshot{"default/checkout": crashingPod()},
	}
	srv := NewServer(src)

	_, out, err := srv.handleDiagnosePod(context.Background(), nil, diagnosePodInput{
		Name: "checkout", AI: true,
	})
	if err != nil {
		t.Fatalf("diagnose_pod: %v", err)
	}
	if !strings.Contains(out.Analysis, "AI commentary is unavailable") {
		t.Errorf("analysis = %q, want deterministic fallback", out.Analysis)
	}
}

func TestScanPods(t *testing.T) {
	healthy := snapshot.PodSnapshot{
		Name: "web", Namespace: "shop", Phase: snapshot.PhaseRunning,
		Containers: []snapshot.ContainerStatus{
			{Name: "app", Ready: true, State: snapshot.ContainerState{Kind: snapshot.StateRunning}},
		},
	}
	src := &fakeSource{list: []snapshot.PodSnapshot{healthy, crashingPod()}}
	srv := NewServer(src)

	_, out, err := srv.handleScanPods(context.Background(), nil, scanPodsInput{Namespace: "shop"})
	if err != nil {
		t.Fatalf("scan_pods: %v", err)
	}
	if out.Total != 2 || out.Unhealthy != 1 {
		t.Errorf("total=%d unhealthy=%d, want 2/1", out.Total, out.Unhealthy)
	}
	if len(out.Pods) != 1 || out.Pods[0].Name != "checkout" {
		t.Fatalf("pods = %+v", out.Pods)
	}
	if len(out.Pods[0].QuickFixes) == 0 {
		t.Error("expected quick fixes for the unhealthy pod")
	}
}

func TestGetPodLogs_ErrorsOnly(t *testing.T) {
	src := &fakeSource{
		pods: map[string]snapshot.PodSnapshot{"default/checkout": crashingPod()},
		logs: "starting\nError: connection refused\nready\n",
	}
	srv := NewServer(src)

	_, out, err := srv.handleGetPodLogs(context.Background(), nil, getPodLogsInput{
		Name: "checkout", ErrorsOnly: true,
	})
	if err != nil {
		t.Fatalf("get_pod_logs: %v", err)
	}
	if out.Logs != "" {
		t.Errorf("Logs = %q, want empty in errors-only mode", out.Logs)
	}
	if len(out.Lines) != 1 || !strings.Contains(out.Lines[0], "connection refused") {
		t.Errorf("Lines = %+v", out.Lines)
	}
	if len(out.Findings) == 0 {
		t.Error("expected findings for a connection error")
	}
}

func TestGetPodEvents_LimitAndOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	src := &fakeSource{
		events: []snapshot.EventRecord{
			{Reason: "Scheduled", Object: snapshot.ObjectRef{Name: "checkout"}, LastTimestamp: base},
			{Reason: "Pulled", Object: snapshot.ObjectRef{Name: "checkout"}, LastTimestamp: base.Add(time.Minute)},
			{Reason: "Failed", Object: snapshot.ObjectRef{Name: "checkout"}, LastTimestamp: base.Add(2 * time.Minute)},
		},
	}
	srv := NewServer(src)

	_, out, err := srv.handleGetPodEvents(context.Background(), nil, getPodEventsInput{
		Pod: "checkout", Limit: 2,
	})
	if err != nil {
		t.Fatalf("get_pod_events: %v", err)
	}
	if out.Total != 3 {
		t.Errorf("Total = %d, want 3", out.Total)
	}
	if len(out.Events) != 2 {
		t.Fatalf("got %d events, want limit 2", len(out.Events))
	}
	if out.Events[0].Reason != "Failed" {
		t.Errorf("first event = %q, want newest", out.Events[0].Reason)
	}
}
