// Package commands implements tsquery's cobra subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrmccluskey/tsquery/internal/descriptor"
	"github.com/jrmccluskey/tsquery/internal/sink"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/engine"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store/configstore"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store/memory"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/summarize"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/window"
)

// NewRunCommand builds the "run" subcommand: load a descriptor, wire its
// roots to a reference DataStoreFactory, execute, and print results.
func NewRunCommand(logger *slog.Logger) *cobra.Command {
	var descriptorPath string
	var dbName string
	var rollupProject string
	var rollupName string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a node-descriptor pipeline against the in-memory reference store",
		RunE: func(cmd *cobra.Command, args []string) error {
			yamlDoc, err := os.ReadFile(descriptorPath)
			if err != nil {
				return fmt.Errorf("read descriptor: %w", err)
			}

			reg := exec.NewRegistry()
			window.Register(reg)
			summarize.Register(reg)

			ctx := exec.NewContext(reg, nil, logger)
			factories := descriptor.NewRegistry(window.Factory{}, summarize.Factory{})

			graph, err := descriptor.Build(ctx, factories, yamlDoc)
			if err != nil {
				return fmt.Errorf("build graph: %w", err)
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			var rollupFallback rollup.Loader
			if rollupProject != "" {
				cs, err := configstore.Open(runCtx, rollupProject, rollupName)
				if err != nil {
					return fmt.Errorf("open configstore %q/%q: %w", rollupProject, rollupName, err)
				}
				rollupFallback = cs
			}
			rollupCfg, err := descriptor.ResolveRollupConfig(runCtx, yamlDoc, rollupFallback)
			if err != nil {
				return fmt.Errorf("resolve rollup config: %w", err)
			}

			store, err := memory.Open(dbName, logger)
			if err != nil {
				return fmt.Errorf("open store %q: %w", dbName, err)
			}
			store.Rollup = rollupCfg

			writer := sink.New(ctx, "tsquery-stdout", os.Stdout)
			for _, terminal := range graph.Terminals() {
				if base, ok := terminal.(interface{ AddDownstream(exec.Node) }); ok {
					base.AddDownstream(writer)
				}
			}

			var pipelines []engine.Pipeline
			for nodeID, ids := range graph.Roots {
				nodeID, ids := nodeID, ids
				sinkNode := graph.Nodes[nodeID]
				for _, seriesID := range ids {
					seriesID := seriesID
					pipelines = append(pipelines, func(pctx context.Context) error {
						ds, err := store.Open(pctx, seriesID)
						if err != nil {
							return fmt.Errorf("open series %q: %w", seriesID, err)
						}
						return ds.Run(pctx, sinkNode)
					})
				}
			}

			runner := engine.New(logger)
			if err := runner.Run(runCtx, pipelines); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&descriptorPath, "descriptor", "d", "", "path to a YAML node descriptor")
	cmd.Flags().StringVar(&dbName, "db", "tsquery", "in-memory reference store database name")
	cmd.Flags().StringVar(&rollupProject, "rollup-project", "", "GCP project to load a centrally-managed RollupConfig from (store/configstore), used when the descriptor has no inline \"rollup\" section")
	cmd.Flags().StringVar(&rollupName, "rollup-name", "default", "named configuration to load from --rollup-project")
	_ = cmd.MarkFlagRequired("descriptor")
	return cmd
}
