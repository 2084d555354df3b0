package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"podscout/internal/ai"
	"podscout/internal/logging"
	mcpserver "podscout/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio for editor integration",
	Long: `Starts an MCP server over stdin/stdout exposing diagnose_pod, scan_pods,
get_pod_logs and get_pod_events tools, so editor agents can run the same
detectors the CLI uses.

The server monitors for parent process death and self-terminates when the
editor disconnects, preventing zombie processes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	src, err := newSource()
	if err != nil {
		return err
	}

	opts := []mcpserver.Option{mcpserver.WithNamespace(cfg.Namespace)}
	summarizer, err := ai.NewSummarizer(cfg.AI)
	if err != nil {
		logging.New("mcp").Warn("AI provider unavailable, commentary will use fallback", "error", err)
	} else if summarizer != nil {
		opts = append(opts, mcpserver.WithSummarizer(summarizer))
	}

	srv := mcpserver.NewServer(src, opts...)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting podscout MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
