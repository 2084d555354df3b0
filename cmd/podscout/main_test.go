package main

import (
	"strings"
	"testing"

	"podscout/internal/config"
	"podscout/internal/diagnose"
	"podscout/internal/recommend"
	"podscout/internal/snapshot"
)

func sampleReport() diagnosisReport {
	return diagnosisReport{
		Pod:       "checkout",
		Namespace: "shop",
		Phase:     "Running",
		Containers: []snapshot.ContainerStatus{
			{
				Name:         "app",
				RestartCount: 9,
				State:        snapshot.ContainerState{Kind: snapshot.StateWaiting, Reason: "CrashLoopBackOff"},
			},
		},
		Issues: []recommend.Analysis{
			{
				Issue:         "container app is in CrashLoopBackOff",
				Kind:          diagnose.KindCrashLoopBackOff,
				Severity:      diagnose.SeverityHigh,
				Category:      diagnose.CategoryRuntime,
				Explanation:   "The container keeps crashing shortly after start.",
				QuickFixes:    []string{"Check logs for startup errors: kubectl logs <pod> --previous"},
				PatchTemplate: "spec:\n  containers: []\n",
			},
		},
		Summary:    "Found 1 issues with 10 recommended diagnostic commands and specific fixes provided.",
		Confidence: 0.67,
		Commands:   []string{"kubectl logs checkout -n shop --previous"},
		QuickFixes: []string{"Check logs for startup errors: kubectl logs <pod> --previous"},
	}
}

func TestRenderDiagnosis(t *testing.T) {
	var sb strings.Builder
	renderDiagnosis(&sb, sampleReport())
	out := sb.String()

	for _, want := range []string{
		"Pod shop/checkout (Running)",
		"Waiting (CrashLoopBackOff)",
		"!! High",
		"Crash Loop",
		"kubectl logs checkout -n shop --previous",
		"Confidence: 0.67",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderDiagnosis_NoIssues(t *testing.T) {
	rep := diagnosisReport{Pod: "quiet", Namespace: "default", Phase: "Running"}
	var sb strings.Builder
	renderDiagnosis(&sb, rep)
	if !strings.Contains(sb.String(), "No known issues detected.") {
		t.Errorf("output = %s", sb.String())
	}
}

func TestRenderScan(t *testing.T) {
	rep := scanReport{
		Total:     3,
		Unhealthy: 1,
		Pods: []scannedPod{
			{
				Name:       "checkout",
				Namespace:  "shop",
				Phase:      "Running",
				Issues:     []string{"container app is in CrashLoopBackOff", "container app has high restart count: 9"},
				QuickFixes: []string{"Check logs for startup errors: kubectl logs <pod> --previous"},
			},
		},
	}
	var sb strings.Builder
	renderScan(&sb, rep)
	out := sb.String()

	if !strings.Contains(out, "Unhealthy pods (1 of 3)") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "(+1 more)") {
		t.Errorf("missing issue overflow marker:\n%s", out)
	}
	if !strings.Contains(out, "quick fixes:") {
		t.Errorf("missing quick fixes:\n%s", out)
	}
}

func TestRenderScan_AllHealthy(t *testing.T) {
	var sb strings.Builder
	renderScan(&sb, scanReport{Total: 5})
	if !strings.Contains(sb.String(), "All 5 pods look healthy.") {
		t.Errorf("output = %s", sb.String())
	}
}

func TestRenderFixes(t *testing.T) {
	var sb strings.Builder
	renderFixes(&sb, sampleReport())
	out := sb.String()

	for _, want := range []string{
		"Fixes for shop/checkout (1 issues)",
		"Crash Loop (CrashLoopBackOff)",
		"The container keeps crashing shortly after start.",
		"Patch template:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestEmit(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()

	cfg = &config.Config{Output: "json"}
	var sb strings.Builder
	if err := emit(&sb, sampleReport()); err != nil {
		t.Fatalf("emit json: %v", err)
	}
	if !strings.Contains(sb.String(), `"confidence_score": 0.67`) {
		t.Errorf("json output = %s", sb.String())
	}

	cfg = &config.Config{Output: "yaml"}
	sb.Reset()
	if err := emit(&sb, sampleReport()); err != nil {
		t.Fatalf("emit yaml: %v", err)
	}
	if !strings.Contains(sb.String(), "confidence_score: 0.67") {
		t.Errorf("yaml output = %s", sb.String())
	}

	cfg = &config.Config{Output: "xml"}
	if err := emit(&strings.Builder{}, sampleReport()); err == nil {
		t.Error("unknown format should error")
	}
}
