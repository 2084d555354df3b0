package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podscout/internal/diagnose"
	"podscout/internal/kube"
)

var logsFlags struct {
	container string
	tail      int
	previous  bool
	follow    bool
	analyze   bool
}

var logsCmd = &cobra.Command{
	Use:   "logs <pod>",
	Short: "Fetch or follow a pod's logs",
	Long: `Logs prints a pod's log tail. With --analyze the tail is scanned for
known error patterns and reduced to findings plus the matching lines.
With --follow the stream stays open until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogs,
}

func init() {
	f := logsCmd.Flags()
	f.StringVarP(&logsFlags.container, "container", "c", "", "Container name for multi-container pods")
	f.IntVar(&logsFlags.tail, "tail", 0, "Log lines to fetch (default: config log_tail)")
	f.BoolVarP(&logsFlags.previous, "previous", "p", false, "Logs of the previous container instance")
	f.BoolVarP(&logsFlags.follow, "follow", "f", false, "Stream logs until interrupted")
	f.BoolVar(&logsFlags.analyze, "analyze", false, "Scan the tail for known error patterns")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if logsFlags.follow && logsFlags.analyze {
		return fmt.Errorf("--follow and --analyze are mutually exclusive")
	}

	src, err := newSource()
	if err != nil {
		return err
	}

	name := args[0]
	opts := kube.LogOptions{
		Container: logsFlags.container,
		TailLines: logsFlags.tail,
		Previous:  logsFlags.previous,
	}
	if opts.TailLines <= 0 {
		opts.TailLines = cfg.LogTail
	}

	if logsFlags.follow {
		return src.FollowLogs(cmd.Context(), cfg.Namespace, name, opts, cmd.OutOrStdout())
	}

	text, err := src.GetLogs(cmd.Context(), cfg.Namespace, name, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !logsFlags.analyze {
		fmt.Fprint(out, text)
		return nil
	}

	findings := diagnose.ScanLogs(text)
	lines := diagnose.RecentErrorLines(text)
	if len(findings) == 0 && len(lines) == 0 {
		fmt.Fprintln(out, "No known error patterns in the log tail.")
		return nil
	}
	if len(findings) > 0 {
		fmt.Fprintln(out, "Findings:")
		for _, f := range findings {
			fmt.Fprintf(out, "  - %s\n", f.Description)
		}
	}
	if len(lines) > 0 {
		fmt.Fprintf(out, "\nMatching lines:\n%s", bulletList(lines))
	}
	return nil
}
