// podscout is the main CLI: diagnose, scan, logs, events, fix, serve.
//
// Usage:
//
//	podscout diagnose <pod> [-n <namespace>] [--ai]
//	podscout scan [-n <namespace>] [--all-namespaces]
//	podscout logs <pod> [-c <container>] [--follow|--analyze]
//	podscout events [pod] [--limit=<n>]
//	podscout fix <pod>
//	podscout serve
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
