// Command tsquery runs a node-descriptor pipeline against a reference
// DataStoreFactory and writes its output to stdout.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/profiler"
	"github.com/spf13/cobra"

	"github.com/jrmccluskey/tsquery/cmd/tsquery/commands"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var enableProfiler bool
	var profilerService string
	var profilerProject string

	root := &cobra.Command{
		Use:   "tsquery",
		Short: "Run streaming time-series query pipelines described by a node descriptor",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !enableProfiler {
				return nil
			}
			// Mirrors the way a long-lived Beam worker process starts
			// Stackdriver Profiler once at boot, before entering its main
			// loop; best-effort, so a failure to start is logged, not fatal.
			err := profiler.Start(profiler.Config{
				Service:   profilerService,
				ProjectID: profilerProject,
			})
			if err != nil {
				logger.Warn("profiler: failed to start", slog.Any("error", err))
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&enableProfiler, "enable-profiler", false, "start Cloud Profiler for this process")
	root.PersistentFlags().StringVar(&profilerService, "profiler-service", "tsquery", "service name reported to Cloud Profiler")
	root.PersistentFlags().StringVar(&profilerProject, "profiler-project", "", "GCP project id for Cloud Profiler (optional on GCE/GKE)")
	root.AddCommand(commands.NewRunCommand(logger))
	root.AddCommand(commands.NewSeedCommand(logger))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
