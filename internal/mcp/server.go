// Package mcp exposes pod diagnosis as MCP tools over stdio so that
// editor agents can call the same detectors the CLI uses.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"podscout/internal/ai"
	"podscout/internal/diagnose"
	"podscout/internal/kube"
	"podscout/internal/logging"
	"podscout/internal/recommend"
	"podscout/internal/snapshot"
)

const defaultTail = 50

// Server wraps the MCP SDK server around a cluster source. All tools are
// stateless; every call reads fresh cluster state.
type Server struct {
	MCPServer *sdkmcp.Server

	source     kube.Source
	summarizer ai.Summarizer
	namespace  string
}

// Option adjusts Server construction.
type Option func(*Server)

// WithSummarizer enables AI commentary on diagnose_pod results.
func WithSummarizer(s ai.Summarizer) Option {
	return func(srv *Server) { srv.summarizer = s }
}

// WithNamespace sets the namespace used when a tool call omits one.
func WithNamespace(ns string) Option {
	return func(srv *Server) { srv.namespace = ns }
}

// NewServer creates an MCP server with the pod diagnosis tool set.
func NewServer(source kube.Source, opts ...Option) *Server {
	s := &Server{source: source, namespace: "default"}
	for _, opt := range opts {
		opt(s)
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "podscout", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "diagnose_pod",
		Description: "Diagnose one pod: status classification, log scan, warning events, and fix recommendations with a confidence score.",
	}, s.handleDiagnosePod)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "scan_pods",
		Description: "Scan a namespace (or the whole cluster) for unhealthy pods and return quick-fix hints per pod.",
	}, s.handleScanPods)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_pod_logs",
		Description: "Fetch a pod's log tail, optionally reduced to lines matching known error patterns.",
	}, s.handleGetPodLogs)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_pod_events",
		Description: "List recent events for a pod or namespace, most recent first.",
	}, s.handleGetPodEvents)
}

// --- Tool input/output types ---

type diagnosePodInput struct {
	Name      string `json:"name" jsonschema:"pod name"`
	Namespace string `json:"namespace,omitempty" jsonschema:"namespace (defaults to the server namespace)"`
	Tail      int    `json:"tail,omitempty" jsonschema:"log lines to fetch (default 50)"`
	AI        bool   `json:"ai,omitempty" jsonschema:"include AI commentary when a provider is configured"`
}

type diagnosePodOutput struct {
	Pod        string   `json:"pod"`
	Namespace  string   `json:"namespace"`
	Phase      string   `json:"phase"`
	Issues     []string `json:"issues"`
	Summary    string   `json:"summary"`
	Confidence float64  `json:"confidence"`
	Commands   []string `json:"commands,omitempty"`
	QuickFixes []string `json:"quick_fixes,omitempty"`
	ErrorLines []string `json:"error_lines,omitempty"`
	Analysis   string   `json:"analysis,omitempty"`
}

type scanPodsInput struct {
	Namespace     string `json:"namespace,omitempty" jsonschema:"namespace to scan (defaults to the server namespace)"`
	AllNamespaces bool   `json:"all_namespaces,omitempty" jsonschema:"scan every namespace"`
}

type scanPodsOutput struct {
	Pods      []scannedPod `json:"pods"`
	Total     int          `json:"total"`
	Unhealthy int          `json:"unhealthy"`
}

type scannedPod struct {
	Name       string   `json:"name"`
	Namespace  string   `json:"namespace"`
	Phase      string   `json:"phase"`
	Issues     []string `json:"issues,omitempty"`
	QuickFixes []string `json:"quick_fixes,omitempty"`
}

type getPodLogsInput struct {
	Name       string `json:"name" jsonschema:"pod name"`
	Namespace  string `json:"namespace,omitempty" jsonschema:"namespace (defaults to the server namespace)"`
	Container  string `json:"container,omitempty" jsonschema:"container name for multi-container pods"`
	Tail       int    `json:"tail,omitempty" jsonschema:"log lines to fetch (default 50)"`
	ErrorsOnly bool   `json:"errors_only,omitempty" jsonschema:"return only lines matching known error patterns"`
}

type getPodLogsOutput struct {
	Pod      string   `json:"pod"`
	Logs     string   `json:"logs,omitempty"`
	Lines    []string `json:"lines,omitempty"`
	Findings []string `json:"findings,omitempty"`
}

type getPodEventsInput struct {
	Namespace string `json:"namespace,omitempty" jsonschema:"namespace (defaults to the server namespace)"`
	Pod       string `json:"pod,omitempty" jsonschema:"narrow to events involving this pod"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum events to return (default 20)"`
}

type getPodEventsOutput struct {
	Events []eventSummary `json:"events"`
	Total  int            `json:"total"`
}

type eventSummary struct {
	Type    string `json:"type"`
	Reason  string `json:"reason"`
	Object  string `json:"object"`
	Message string `json:"message"`
	Count   int32  `json:"count,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleDiagnosePod(ctx context.Context, _ *sdkmcp.CallToolRequest, input diagnosePodInput) (*sdkmcp.CallToolResult, diagnosePodOutput, error) {
	if input.Name == "" {
		return nil, diagnosePodOutput{}, fmt.Errorf("name is required")
	}
	ns := s.resolveNamespace(input.Namespace)
	tail := input.Tail
	if tail <= 0 {
		tail = defaultTail
	}

	snap, err := kube.BuildSnapshot(ctx, s.source, ns, input.Name, kube.GatherOptions{Tail: tail})
	if err != nil {
		return nil, diagnosePodOutput{}, fmt.Errorf("diagnose_pod: %w", err)
	}

	result := diagnose.Run(snap)
	bundle := recommend.Recommend(result.Issues, snap.Name, snap.Namespace)

	out := diagnosePodOutput{
		Pod:        snap.Name,
		Namespace:  snap.Namespace,
		Phase:      string(snap.Phase),
		Issues:     issueStrings(result.Issues),
		Summary:    bundle.Summary,
		Confidence: bundle.Confidence,
		Commands:   bundle.Commands,
		QuickFixes: bundle.QuickFixes,
		ErrorLines: result.ErrorLines,
	}

	if input.AI {
		out.Analysis = s.narrate(ctx, snap, result, bundle)
	}
	return nil, out, nil
}

func (s *Server) handleScanPods(ctx context.Context, _ *sdkmcp.CallToolRequest, input scanPodsInput) (*sdkmcp.CallToolResult, scanPodsOutput, error) {
	ns := s.resolveNamespace(input.Namespace)
	if input.AllNamespaces {
		ns = ""
	}

	snaps, err := s.source.ListPods(ctx, ns)
	if err != nil {
		return nil, scanPodsOutput{}, fmt.Errorf("scan_pods: %w", err)
	}

	out := scanPodsOutput{Total: len(snaps), Pods: []scannedPod{}}
	for _, snap := range snaps {
		issues := diagnose.Classify(snap.Phase, snap.Containers, snap.Conditions)
		if len(issues) == 0 {
			continue
		}
		out.Unhealthy++
		out.Pods = append(out.Pods, scannedPod{
			Name:       snap.Name,
			Namespace:  snap.Namespace,
			Phase:      string(snap.Phase),
			Issues:     issueStrings(issues),
			QuickFixes: recommend.QuickFixes(issues),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetPodLogs(ctx context.Context, _ *sdkmcp.CallToolRequest, input getPodLogsInput) (*sdkmcp.CallToolResult, getPodLogsOutput, error) {
	if input.Name == "" {
		return nil, getPodLogsOutput{}, fmt.Errorf("name is required")
	}
	ns := s.resolveNamespace(input.Namespace)
	tail := input.Tail
	if tail <= 0 {
		tail = defaultTail
	}

	text, err := s.source.GetLogs(ctx, ns, input.Name, kube.LogOptions{
		Container: input.Container,
		TailLines: tail,
	})
	if err != nil {
		return nil, getPodLogsOutput{}, fmt.Errorf("get_pod_logs: %w", err)
	}

	out := getPodLogsOutput{Pod: input.Name}
	for _, f := range diagnose.ScanLogs(text) {
		out.Findings = append(out.Findings, f.Description)
	}
	if input.ErrorsOnly {
		out.Lines = diagnose.RecentErrorLines(text)
	} else {
		out.Logs = text
	}
	return nil, out, nil
}

func (s *Server) handleGetPodEvents(ctx context.Context, _ *sdkmcp.CallToolRequest, input getPodEventsInput) (*sdkmcp.CallToolResult, getPodEventsOutput, error) {
	ns := s.resolveNamespace(input.Namespace)
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	events, err := s.source.GetEvents(ctx, ns, input.Pod)
	if err != nil {
		return nil, getPodEventsOutput{}, fmt.Errorf("get_pod_events: %w", err)
	}

	out := getPodEventsOutput{Total: len(events), Events: []eventSummary{}}
	for _, ev := range snapshot.LatestEvents(events, limit) {
		out.Events = append(out.Events, eventSummary{
			Type:    ev.Type,
			Reason:  ev.Reason,
			Object:  ev.Object.Name,
			Message: ev.Message,
			Count:   ev.Count,
		})
	}
	return nil, out, nil
}

// narrate produces AI commentary, falling back to the deterministic text
// when no provider is configured or the call fails.
func (s *Server) narrate(ctx context.Context, snap snapshot.PodSnapshot, result diagnose.Result, bundle recommend.Bundle) string {
	dc := ai.Context{
		PodName:    snap.Name,
		Namespace:  snap.Namespace,
		Phase:      string(snap.Phase),
		Issues:     issueStrings(result.Issues),
		QuickFixes: bundle.QuickFixes,
		LogExcerpt: snap.LogText,
	}
	for _, ev := range snapshot.LatestEvents(snap.Events, 10) {
		dc.Events = append(dc.Events, fmt.Sprintf("%s: %s", ev.Reason, ev.Message))
	}

	if s.summarizer == nil {
		return ai.Fallback(dc)
	}
	text, err := s.summarizer.Summarize(ctx, dc)
	if err != nil {
		logging.New("mcp").Warn("AI summary failed, using fallback",
			"provider", s.summarizer.Name(), "error", err)
		return ai.Fallback(dc)
	}
	return text
}

func (s *Server) resolveNamespace(ns string) string {
	if ns != "" {
		return ns
	}
	return s.namespace
}

func issueStrings(issues []diagnose.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Detail)
	}
	return out
}
