package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"podscout/internal/ai"
	"podscout/internal/diagnose"
	"podscout/internal/kube"
	"podscout/internal/logging"
	"podscout/internal/recommend"
	"podscout/internal/snapshot"
)

func newSource() (kube.Source, error) {
	return kube.New(
		kube.WithKubeconfig(cfg.Kubeconfig),
		kube.WithTimeout(cfg.Timeout),
	)
}

// emit writes v as JSON or YAML according to the configured output format.
// Table rendering is per-command; callers handle that case before emit.
func emit(w io.Writer, v any) error {
	switch cfg.Output {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format: %s (available: table, json, yaml)", cfg.Output)
	}
}

// diagnosisReport is the serializable result of one full diagnosis run.
type diagnosisReport struct {
	Pod        string                     `json:"pod" yaml:"pod"`
	Namespace  string                     `json:"namespace" yaml:"namespace"`
	Phase      string                     `json:"phase" yaml:"phase"`
	Containers []snapshot.ContainerStatus `json:"containers,omitempty" yaml:"containers,omitempty"`
	Usage      *snapshot.ResourceUsage    `json:"usage,omitempty" yaml:"usage,omitempty"`
	Issues     []recommend.Analysis       `json:"issues" yaml:"issues"`
	Summary    string                     `json:"summary" yaml:"summary"`
	Confidence float64                    `json:"confidence_score" yaml:"confidence_score"`
	Commands   []string                   `json:"commands" yaml:"commands"`
	QuickFixes []string                   `json:"quick_fixes,omitempty" yaml:"quick_fixes,omitempty"`
	LogSummary []string                   `json:"log_findings,omitempty" yaml:"log_findings,omitempty"`
	ErrorLines []string                   `json:"error_lines,omitempty" yaml:"error_lines,omitempty"`
	Analysis   string                     `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

// diagnosePod runs the full pipeline for one pod: snapshot, detectors,
// recommendations, and optional AI commentary.
func diagnosePod(ctx context.Context, src kube.Source, name string, tail int, useAI bool) (diagnosisReport, error) {
	if tail <= 0 {
		tail = cfg.LogTail
	}
	snap, err := kube.BuildSnapshot(ctx, src, cfg.Namespace, name, kube.GatherOptions{Tail: tail})
	if err != nil {
		return diagnosisReport{}, err
	}

	result := diagnose.Run(snap)
	bundle := recommend.Recommend(result.Issues, snap.Name, snap.Namespace)

	rep := diagnosisReport{
		Pod:        snap.Name,
		Namespace:  snap.Namespace,
		Phase:      string(snap.Phase),
		Containers: snap.Containers,
		Usage:      snap.Usage,
		Issues:     bundle.Issues,
		Summary:    bundle.Summary,
		Confidence: bundle.Confidence,
		Commands:   bundle.Commands,
		QuickFixes: bundle.QuickFixes,
		ErrorLines: result.ErrorLines,
	}
	for _, f := range result.LogFindings {
		rep.LogSummary = append(rep.LogSummary, f.Description)
	}
	if useAI {
		rep.Analysis = narrate(ctx, snap, rep)
	}
	return rep, nil
}

// narrate asks the configured AI provider for commentary and falls back to
// the deterministic text when the provider is absent or fails.
func narrate(ctx context.Context, snap snapshot.PodSnapshot, rep diagnosisReport) string {
	log := logging.New("cli")

	dc := ai.Context{
		PodName:    snap.Name,
		Namespace:  snap.Namespace,
		Phase:      string(snap.Phase),
		QuickFixes: rep.QuickFixes,
		LogExcerpt: snap.LogText,
	}
	for _, a := range rep.Issues {
		dc.Issues = append(dc.Issues, a.Issue)
	}
	for _, ev := range snapshot.LatestEvents(snap.Events, 10) {
		dc.Events = append(dc.Events, fmt.Sprintf("%s: %s", ev.Reason, ev.Message))
	}

	summarizer, err := ai.NewSummarizer(cfg.AI)
	if err != nil {
		log.Warn("AI provider unavailable, using fallback", "error", err)
		return ai.Fallback(dc)
	}
	if summarizer == nil {
		return ai.Fallback(dc)
	}

	aiCtx, cancel := context.WithTimeout(ctx, cfg.AI.Timeout)
	defer cancel()
	text, err := summarizer.Summarize(aiCtx, dc)
	if err != nil {
		log.Warn("AI summary failed, using fallback", "provider", summarizer.Name(), "error", err)
		return ai.Fallback(dc)
	}
	return text
}

// bulletList renders strings as an indented bullet list.
func bulletList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString("  - ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
