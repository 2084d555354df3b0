package main

import (
	"github.com/spf13/cobra"

	"podscout/internal/config"
	"podscout/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

// cfg is resolved once in the persistent pre-run and read by every command.
var cfg *config.Config

var rootFlags struct {
	configPath string
	namespace  string
	kubeconfig string
	logLevel   string
	logFormat  string
	output     string
}

var rootCmd = &cobra.Command{
	Use:   "podscout",
	Short: "Diagnose unhealthy Kubernetes pods and recommend fixes",
	Long: "Podscout inspects pod status, logs and events to detect known failure\n" +
		"modes (crash loops, image pull errors, OOM kills, stuck scheduling) and\n" +
		"produces concrete kubectl commands and fix suggestions for each.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(rootFlags.configPath)
		if err != nil {
			return err
		}
		f := cmd.Flags()
		if f.Changed("namespace") {
			c.Namespace = rootFlags.namespace
		}
		if f.Changed("kubeconfig") {
			c.Kubeconfig = rootFlags.kubeconfig
		}
		if f.Changed("log-level") {
			c.LogLevel = rootFlags.logLevel
		}
		if f.Changed("log-format") {
			c.LogFormat = rootFlags.logFormat
		}
		if f.Changed("output") {
			c.Output = rootFlags.output
		}
		logging.Init(c.LogLevel, c.LogFormat)
		cfg = c
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file path (default: "+config.DefaultPath+")")
	pf.StringVarP(&rootFlags.namespace, "namespace", "n", "default", "Kubernetes namespace")
	pf.StringVar(&rootFlags.kubeconfig, "kubeconfig", "", "Kubeconfig file path (default: standard loading rules)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVarP(&rootFlags.output, "output", "o", "table", "Output format: table, json or yaml")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}
