package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"podscout/internal/display"
	"podscout/internal/format"
)

var diagnoseFlags struct {
	tail int
	ai   bool
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <pod>",
	Short: "Diagnose one pod and recommend fixes",
	Long: `Diagnose inspects a pod's status, recent logs and namespace events,
classifies known failure modes, and prints kubectl commands and fix
suggestions for each detected issue with an overall confidence score.

Usage:
  podscout diagnose checkout -n shop
  podscout diagnose checkout --ai           # add AI commentary
  podscout diagnose checkout -o json        # machine-readable output`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	f := diagnoseCmd.Flags()
	f.IntVar(&diagnoseFlags.tail, "tail", 0, "Log lines to inspect (default: config log_tail)")
	f.BoolVar(&diagnoseFlags.ai, "ai", false, "Include AI commentary (requires a configured provider)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	rep, err := diagnosePod(cmd.Context(), src, args[0], diagnoseFlags.tail, diagnoseFlags.ai)
	if err != nil {
		return err
	}

	if cfg.Output != "table" {
		return emit(cmd.OutOrStdout(), rep)
	}
	renderDiagnosis(cmd.OutOrStdout(), rep)
	return nil
}

func renderDiagnosis(w io.Writer, rep diagnosisReport) {
	fmt.Fprintf(w, "Pod %s/%s (%s)\n\n", rep.Namespace, rep.Pod, rep.Phase)
	if rep.Usage != nil {
		fmt.Fprintf(w, "Usage: cpu=%s memory=%s\n\n", rep.Usage.CPU, rep.Usage.Memory)
	}

	if len(rep.Containers) > 0 {
		tb := format.NewTable(format.ASCII)
		tb.Header("Container", "Ready", "Restarts", "State")
		for _, c := range rep.Containers {
			state := string(c.State.Kind)
			if c.State.Reason != "" {
				state += " (" + c.State.Reason + ")"
			}
			tb.Row(c.Name, format.BoolMark(c.Ready), c.RestartCount, state)
		}
		tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
		fmt.Fprintln(w, tb.String())
		fmt.Fprintln(w)
	}

	if len(rep.Issues) == 0 {
		fmt.Fprintln(w, "No known issues detected.")
	} else {
		tb := format.NewTable(format.ASCII)
		tb.Title(fmt.Sprintf("Issues (%d)", len(rep.Issues)))
		tb.Header("Severity", "Kind", "Category", "Issue")
		for _, a := range rep.Issues {
			tb.Row(
				display.SeverityMark(a.Severity),
				display.IssueKind(a.Kind),
				display.Category(a.Category),
				a.Issue,
			)
		}
		tb.Columns(format.ColumnConfig{Number: 4, MaxWidth: 60})
		fmt.Fprintln(w, tb.String())
	}

	if len(rep.LogSummary) > 0 {
		fmt.Fprintf(w, "\nLog findings:\n%s", bulletList(rep.LogSummary))
	}
	if len(rep.ErrorLines) > 0 {
		fmt.Fprintf(w, "\nRecent error lines:\n%s", bulletList(rep.ErrorLines))
	}
	if len(rep.Commands) > 0 {
		fmt.Fprintf(w, "\nDiagnostic commands:\n%s", bulletList(rep.Commands))
	}
	if len(rep.QuickFixes) > 0 {
		fmt.Fprintf(w, "\nQuick fixes:\n%s", bulletList(rep.QuickFixes))
	}

	fmt.Fprintf(w, "\n%s\n", rep.Summary)
	fmt.Fprintf(w, "Confidence: %.2f\n", rep.Confidence)

	if rep.Analysis != "" {
		fmt.Fprintf(w, "\nAnalysis:\n%s\n", rep.Analysis)
	}
}
