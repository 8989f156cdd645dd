package commands

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/store/memory"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// NewSeedCommand builds the "seed" subcommand: insert points into the
// in-memory reference store, for exercising "run" without a real ingestion
// pipeline.
func NewSeedCommand(logger *slog.Logger) *cobra.Command {
	var dbName, seriesID string
	var points []string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert points into the in-memory reference store",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := memory.Open(dbName, logger)
			if err != nil {
				return fmt.Errorf("open store %q: %w", dbName, err)
			}
			for _, raw := range points {
				ts, v, err := parsePoint(raw)
				if err != nil {
					return fmt.Errorf("point %q: %w", raw, err)
				}
				if err := store.Insert(seriesID, ts, v); err != nil {
					return fmt.Errorf("insert %q: %w", raw, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbName, "db", "tsquery", "in-memory reference store database name")
	cmd.Flags().StringVar(&seriesID, "series", "", "series id to seed")
	cmd.Flags().StringSliceVar(&points, "point", nil, `one "<millis>:<value>" pair per occurrence, e.g. --point 0:5 --point 1000:7.5`)
	_ = cmd.MarkFlagRequired("series")
	return cmd
}

func parsePoint(raw string) (tstime.TimeStamp, value.Number, error) {
	ms, valStr, ok := strings.Cut(raw, ":")
	if !ok {
		return tstime.TimeStamp{}, value.Number{}, fmt.Errorf("expected <millis>:<value>")
	}
	millis, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return tstime.TimeStamp{}, value.Number{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	if strings.ContainsAny(valStr, ".eE") {
		f, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return tstime.TimeStamp{}, value.Number{}, fmt.Errorf("invalid value: %w", err)
		}
		return tstime.FromMillis(millis), value.Float(f), nil
	}
	iv, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return tstime.TimeStamp{}, value.Number{}, fmt.Errorf("invalid value: %w", err)
	}
	return tstime.FromMillis(millis), value.Int(iv), nil
}
