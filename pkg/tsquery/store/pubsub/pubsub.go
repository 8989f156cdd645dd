// Package pubsub is a reference DataStoreFactory modeling an asynchronous
// ingestion source via cloud.google.com/go/pubsub, the teacher's direct
// dependency (SPEC_FULL.md §3). Pub/Sub delivers messages on its own
// goroutines; this backend buffers them internally and calls onNext
// synchronously only once a batch closes, per spec.md §5's requirement
// that stores may receive data asynchronously but must still push Results
// through the node lifecycle synchronously.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/pubsub"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// pointMessage is the JSON payload this backend expects on each Pub/Sub
// message.
type pointMessage struct {
	SeriesID string  `json:"series_id"`
	TSMillis int64   `json:"ts_millis"`
	IsFloat  bool    `json:"is_float"`
	IVal     int64   `json:"ival"`
	FVal     float64 `json:"fval"`
}

// Factory implements store.Factory over a Pub/Sub subscription.
type Factory struct {
	client       *pubsub.Client
	subscription string
	// BatchWindow bounds how long Open buffers messages for a series before
	// emitting whatever it has collected. 0 uses a 2s default.
	BatchWindow time.Duration
	logger      *slog.Logger
	Spec        tstime.Specification
	Rollup      value.RollupConfig
}

// Open builds a Pub/Sub client for projectID, bound to subscriptionID.
func Open(ctx context.Context, projectID, subscriptionID string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub: new client: %w", err)
	}
	return &Factory{client: client, subscription: subscriptionID, logger: logger}, nil
}

func (f *Factory) IDKind() series.IDKind { return series.StringID }

func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Open implements store.Factory: buffers messages tagged with series id
// for BatchWindow, acking each as consumed, then emits the batch as one
// NumericScalar series.
func (f *Factory) Open(ctx context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		window := f.BatchWindow
		if window <= 0 {
			window = 2 * time.Second
		}
		sub := f.client.Subscription(f.subscription)

		var points []value.ScalarPoint
		recvCtx, cancel := context.WithTimeout(ctx, window)
		defer cancel()

		err := sub.Receive(recvCtx, func(_ context.Context, msg *pubsub.Message) {
			var pm pointMessage
			if err := json.Unmarshal(msg.Data, &pm); err != nil {
				f.logger.Warn("pubsub: malformed message", slog.String("error", err.Error()))
				msg.Nack()
				return
			}
			msg.Ack()
			if pm.SeriesID != id {
				return
			}
			v := value.Int(pm.IVal)
			if pm.IsFloat {
				v = value.Float(pm.FVal)
			}
			points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(pm.TSMillis), Value: v})
		})
		if err != nil && recvCtx.Err() == nil {
			return nil, fmt.Errorf("pubsub: receive for %q: %w", id, err)
		}

		ts := series.NewScalarSeries(series.StringIdentity(id), points)
		return result.NewBase(0, f.Spec, tstime.Millis, f.Rollup, series.StringID, []series.TimeSeries{ts}, ds), nil
	})
	return ds, nil
}
