// Command scopeprof demonstrates the scope profiler on a simulated game
// loop, either as a one-shot run that prints the accumulated report (demo)
// or as a live terminal view that re-renders it every frame (watch).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/scopeprof/log"
	"go.jacobcolvin.com/scopeprof/runprof"
	"go.jacobcolvin.com/scopeprof/version"
)

func main() {
	logCfg := log.NewConfig()
	profCfg := runprof.NewConfig()
	session := profCfg.NewSession()

	rootCmd := &cobra.Command{
		Use:           "scopeprof",
		Short:         "Hierarchical call-scope profiler demo",
		Version:       version.Get().String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logCfg.NewLogger(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(logger)

			return session.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return session.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(newDemoCmd(), newWatchCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
