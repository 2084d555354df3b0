package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"podscout/internal/diagnose"
	"podscout/internal/format"
	"podscout/internal/recommend"
)

var scanFlags struct {
	allNamespaces bool
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for unhealthy pods",
	Long: `Scan classifies the status of every pod in the namespace (or the whole
cluster with --all-namespaces) and lists the unhealthy ones with quick-fix
hints. Logs and events are not fetched; use 'diagnose' for a deep look at
one pod.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanFlags.allNamespaces, "all-namespaces", "A", false, "Scan every namespace")
}

// scanReport is the serializable scan result.
type scanReport struct {
	Total     int          `json:"total" yaml:"total"`
	Unhealthy int          `json:"unhealthy" yaml:"unhealthy"`
	Pods      []scannedPod `json:"pods" yaml:"pods"`
}

type scannedPod struct {
	Name       string   `json:"name" yaml:"name"`
	Namespace  string   `json:"namespace" yaml:"namespace"`
	Phase      string   `json:"phase" yaml:"phase"`
	Issues     []string `json:"issues" yaml:"issues"`
	QuickFixes []string `json:"quick_fixes,omitempty" yaml:"quick_fixes,omitempty"`
}

func runScan(cmd *cobra.Command, _ []string) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	ns := cfg.Namespace
	if scanFlags.allNamespaces {
		ns = ""
	}
	snaps, err := src.ListPods(cmd.Context(), ns)
	if err != nil {
		return err
	}

	rep := scanReport{Total: len(snaps), Pods: []scannedPod{}}
	for _, snap := range snaps {
		issues := diagnose.Classify(snap.Phase, snap.Containers, snap.Conditions)
		if len(issues) == 0 {
			continue
		}
		rep.Unhealthy++
		sp := scannedPod{
			Name:       snap.Name,
			Namespace:  snap.Namespace,
			Phase:      string(snap.Phase),
			QuickFixes: recommend.QuickFixes(issues),
		}
		for _, issue := range issues {
			sp.Issues = append(sp.Issues, issue.Detail)
		}
		rep.Pods = append(rep.Pods, sp)
	}

	if cfg.Output != "table" {
		return emit(cmd.OutOrStdout(), rep)
	}
	renderScan(cmd.OutOrStdout(), rep)
	return nil
}

func renderScan(w io.Writer, rep scanReport) {
	if rep.Unhealthy == 0 {
		fmt.Fprintf(w, "All %d pods look healthy.\n", rep.Total)
		return
	}

	tb := format.NewTable(format.ASCII)
	tb.Title(fmt.Sprintf("Unhealthy pods (%d of %d)", rep.Unhealthy, rep.Total))
	tb.Header("Namespace", "Pod", "Phase", "Issues")
	for _, p := range rep.Pods {
		first := ""
		if len(p.Issues) > 0 {
			first = format.Truncate(p.Issues[0], 60)
			if len(p.Issues) > 1 {
				first = fmt.Sprintf("%s (+%d more)", first, len(p.Issues)-1)
			}
		}
		tb.Row(p.Namespace, p.Name, p.Phase, first)
	}
	fmt.Fprintln(w, tb.String())

	for _, p := range rep.Pods {
		if len(p.QuickFixes) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s/%s quick fixes:\n%s", p.Namespace, p.Name, bulletList(p.QuickFixes))
	}
}
