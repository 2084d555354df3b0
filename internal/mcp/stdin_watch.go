package mcp

import (
	"context"
	"os"
	"time"

	"podscout/internal/logging"
)

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the editor disconnected or restarted), it
// calls cancelFn to trigger graceful shutdown so server processes do not
// accumulate.
//
// This must NOT read from stdin. The MCP SDK's StdioTransport owns stdin
// exclusively; reading here would corrupt the JSON-RPC stream.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
