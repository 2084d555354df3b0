package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"podscout/internal/display"
	"podscout/internal/format"
	"podscout/internal/snapshot"
)

var eventsFlags struct {
	limit int
}

var eventsCmd = &cobra.Command{
	Use:   "events [pod]",
	Short: "List recent events for a pod or namespace",
	Long: `Events lists cluster events most-recent-first. With a pod argument the
list is narrowed to events involving that pod; otherwise the whole
namespace is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().IntVar(&eventsFlags.limit, "limit", 20, "Maximum events to show")
}

// eventReport is the serializable events listing.
type eventReport struct {
	Total  int                    `json:"total" yaml:"total"`
	Events []snapshot.EventRecord `json:"events" yaml:"events"`
}

func runEvents(cmd *cobra.Command, args []string) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	podName := ""
	if len(args) > 0 {
		podName = args[0]
	}

	events, err := src.GetEvents(cmd.Context(), cfg.Namespace, podName)
	if err != nil {
		return err
	}
	rep := eventReport{
		Total:  len(events),
		Events: snapshot.LatestEvents(events, eventsFlags.limit),
	}

	if cfg.Output != "table" {
		return emit(cmd.OutOrStdout(), rep)
	}

	out := cmd.OutOrStdout()
	if len(rep.Events) == 0 {
		fmt.Fprintln(out, "No events found.")
		return nil
	}

	now := time.Now()
	tb := format.NewTable(format.ASCII)
	tb.Header("Age", "Type", "Reason", "Object", "Count", "Message")
	for _, ev := range rep.Events {
		tb.Row(
			display.Age(ev.LastTimestamp, now),
			ev.Type,
			ev.Reason,
			ev.Object.Name,
			ev.Count,
			ev.Message,
		)
	}
	tb.Columns(
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, MaxWidth: 60},
	)
	fmt.Fprintln(out, tb.String())
	return nil
}
