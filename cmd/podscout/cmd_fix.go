package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"podscout/internal/display"
)

var fixFlags struct {
	tail int
}

var fixCmd = &cobra.Command{
	Use:   "fix <pod>",
	Short: "Show fix explanations and patch templates for a pod's issues",
	Long: `Fix runs the same detection as 'diagnose' but focuses the output on
remediation: per-issue explanations, quick fixes, and ready-to-edit
patch templates for kubectl patch or the pod manifest.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().IntVar(&fixFlags.tail, "tail", 0, "Log lines to inspect (default: config log_tail)")
}

func runFix(cmd *cobra.Command, args []string) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	rep, err := diagnosePod(cmd.Context(), src, args[0], fixFlags.tail, false)
	if err != nil {
		return err
	}

	if cfg.Output != "table" {
		return emit(cmd.OutOrStdout(), rep)
	}
	renderFixes(cmd.OutOrStdout(), rep)
	return nil
}

func renderFixes(w io.Writer, rep diagnosisReport) {
	if len(rep.Issues) == 0 {
		fmt.Fprintf(w, "No known issues detected for %s/%s; nothing to fix.\n", rep.Namespace, rep.Pod)
		return
	}

	fmt.Fprintf(w, "Fixes for %s/%s (%d issues)\n", rep.Namespace, rep.Pod, len(rep.Issues))
	for _, a := range rep.Issues {
		fmt.Fprintf(w, "\n%s %s\n", display.SeverityMark(a.Severity), display.IssueKindWithCode(a.Kind))
		fmt.Fprintf(w, "  Issue: %s\n", a.Issue)
		if a.Explanation != "" {
			fmt.Fprintf(w, "  Why:   %s\n", a.Explanation)
		}
		if len(a.QuickFixes) > 0 {
			fmt.Fprintf(w, "  Try:\n%s", bulletList(a.QuickFixes))
		}
		if a.PatchTemplate != "" {
			fmt.Fprintf(w, "  Patch template:\n%s\n", a.PatchTemplate)
		}
	}
}
