package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/scopeprof/profiler"
	"go.jacobcolvin.com/scopeprof/report"
)

func newDemoCmd() *cobra.Command {
	reportCfg := report.NewConfig()

	var workloadPath string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a simulated frame loop once and write the profile report",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			workload := defaultWorkload()

			if workloadPath != "" {
				var err error

				workload, err = loadWorkload(workloadPath)
				if err != nil {
					return err
				}
			}

			p := profiler.New()

			slog.Info("running workload", "frames", workload.Frames, "stages", len(workload.Stages))

			err := workload.run(p)
			if err != nil {
				return err
			}

			return reportCfg.WriteSnapshot(p.Snapshot())
		},
	}

	cmd.Flags().StringVarP(&workloadPath, "workload", "w", "",
		"YAML workload file (default: built-in game loop)")
	reportCfg.RegisterFlags(cmd.Flags())

	completionErr := reportCfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}
