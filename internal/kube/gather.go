package kube

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"podscout/internal/logging"
	"podscout/internal/snapshot"
)

// Section headers inserted when a restarted container's previous logs are
// included ahead of the current ones.
const (
	previousLogsHeader = "=== PREVIOUS CONTAINER LOGS ==="
	currentLogsHeader  = "=== CURRENT CONTAINER LOGS ==="
)

// GatherOptions tunes snapshot assembly.
type GatherOptions struct {
	Container string
	Tail      int
	// SkipUsage disables the kubectl top call entirely.
	SkipUsage bool
}

// BuildSnapshot assembles the full diagnostic view of one pod. The pod
// fetch itself is fatal; logs, events and usage are gathered concurrently
// and degrade to empty on failure so a broken pod can still be diagnosed.
func BuildSnapshot(ctx context.Context, src Source, namespace, name string, opts GatherOptions) (snapshot.PodSnapshot, error) {
	snap, err := src.GetPod(ctx, namespace, name)
	if err != nil {
		return snapshot.PodSnapshot{}, err
	}

	log := logging.New("kube").With("pod", name, "namespace", namespace)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.LogText = gatherLogs(gctx, src, snap, opts)
		return nil
	})
	g.Go(func() error {
		events, err := src.GetEvents(gctx, namespace, "")
		if err != nil {
			log.Warn("events unavailable", "error", err)
			return nil
		}
		snap.Events = events
		return nil
	})
	if !opts.SkipUsage {
		g.Go(func() error {
			usage, err := src.TopPod(gctx, namespace, name)
			if err != nil {
				log.Debug("usage unavailable", "error", err)
				return nil
			}
			snap.Usage = usage
			return nil
		})
	}
	_ = g.Wait()

	return snap, nil
}

// gatherLogs fetches the log tail, prepending the previous container's
// logs when any container has restarted. Failures degrade to empty text.
func gatherLogs(ctx context.Context, src Source, snap snapshot.PodSnapshot, opts GatherOptions) string {
	log := logging.New("kube").With("pod", snap.Name, "namespace", snap.Namespace)
	logOpts := LogOptions{Container: opts.Container, TailLines: opts.Tail}

	var b strings.Builder
	if anyRestarts(snap.Containers) {
		prevOpts := logOpts
		prevOpts.Previous = true
		prev, err := src.GetLogs(ctx, snap.Namespace, snap.Name, prevOpts)
		if err != nil {
			log.Debug("previous logs unavailable", "error", err)
		} else if prev != "" {
			b.WriteString(previousLogsHeader + "\n")
			b.WriteString(prev)
			if !strings.HasSuffix(prev, "\n") {
				b.WriteString("\n")
			}
			b.WriteString(currentLogsHeader + "\n")
		}
	}

	current, err := src.GetLogs(ctx, snap.Namespace, snap.Name, logOpts)
	if err != nil {
		log.Warn("logs unavailable", "error", err)
		return b.String()
	}
	b.WriteString(current)
	return b.String()
}

func anyRestarts(containers []snapshot.ContainerStatus) bool {
	for _, c := range containers {
		if c.RestartCount > 0 {
			return true
		}
	}
	return false
}
