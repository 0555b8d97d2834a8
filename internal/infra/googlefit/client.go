package googlefit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/maypok86/otter/v2"
	"google.golang.org/api/fitness/v1"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/tracing"
)

const (
	userID = "me"

	defaultDataSourceTTL = time.Hour
)

type ClientConfig struct {
	// Endpoint overrides the Fitness API base path, e.g. a local stub.
	Endpoint         string
	StepStreamMatch  string
	SleepStreamMatch string
	DataSourceTTL    time.Duration
}

// Client reads sleep segments and step deltas from the Google Fit REST API.
type Client struct {
	service          *fitness.Service
	stepStreamMatch  string
	sleepStreamMatch string
	streams          *otter.Cache[string, string]
}

func NewClient(ctx context.Context, httpClient *http.Client, cfg ClientConfig) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := fitness.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness service: %w", err)
	}

	ttl := cfg.DataSourceTTL
	if ttl <= 0 {
		ttl = defaultDataSourceTTL
	}

	streams := otter.Must(&otter.Options[string, string]{
		MaximumSize:      16,
		ExpiryCalculator: otter.ExpiryWriting[string, string](ttl),
	})

	return &Client{
		service:          service,
		stepStreamMatch:  cfg.StepStreamMatch,
		sleepStreamMatch: cfg.SleepStreamMatch,
		streams:          streams,
	}, nil
}

func (c *Client) GetSleepObservations(ctx context.Context, start, end time.Time) ([]domain.SleepObservation, error) {
	points, err := c.fetchPoints(ctx, "sleep", c.sleepStreamMatch, start, end)
	if err != nil {
		return nil, err
	}

	observations := make([]domain.SleepObservation, 0, len(points))
	for _, p := range points {
		if p == nil || len(p.Value) == 0 || p.Value[0] == nil {
			slog.DebugContext(ctx, "skipping sleep point",
				slog.String("error", domain.ErrMalformedPoint.Error()),
			)
			continue
		}

		observations = append(observations, domain.SleepObservation{
			Start: time.Unix(0, p.StartTimeNanos),
			End:   time.Unix(0, p.EndTimeNanos),
			Stage: domain.SleepStage(p.Value[0].IntVal),
		})
	}

	return observations, nil
}

func (c *Client) GetStepObservations(ctx context.Context, start, end time.Time) ([]domain.StepObservation, error) {
	points, err := c.fetchPoints(ctx, "steps", c.stepStreamMatch, start, end)
	if err != nil {
		return nil, err
	}

	observations := make([]domain.StepObservation, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}

		obs := domain.StepObservation{
			Start: time.Unix(0, p.StartTimeNanos),
			End:   time.Unix(0, p.EndTimeNanos),
		}
		// A point without a value keeps a nil count.
		if len(p.Value) > 0 && p.Value[0] != nil {
			steps := p.Value[0].IntVal
			obs.Count = &steps
		}

		observations = append(observations, obs)
	}

	return observations, nil
}

func (c *Client) fetchPoints(ctx context.Context, kind, match string, start, end time.Time) ([]*fitness.DataPoint, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "googlefit.dataset."+kind, c.service.BasePath)
	defer span.End()

	streamID, err := c.resolveStream(ctx, match)
	if err != nil {
		tracing.RecordFetchResult(span, 0, err)
		return nil, err
	}

	dataset, err := c.service.Users.DataSources.Datasets.
		Get(userID, streamID, DatasetID(start, end)).
		Context(ctx).
		Do()
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch google fit dataset",
			slog.String("kind", kind),
			slog.String("data_stream_id", streamID),
			slog.String("error", err.Error()),
		)
		err = fmt.Errorf("failed to fetch %s dataset: %w", kind, err)
		tracing.RecordFetchResult(span, 0, err)
		return nil, err
	}

	slog.DebugContext(ctx, "fetched google fit dataset",
		slog.String("kind", kind),
		slog.String("data_stream_id", streamID),
		slog.Int("point_count", len(dataset.Point)),
	)
	tracing.RecordFetchResult(span, len(dataset.Point), nil)

	return dataset.Point, nil
}

// resolveStream finds the first data source whose stream id contains match.
func (c *Client) resolveStream(ctx context.Context, match string) (string, error) {
	if id, ok := c.streams.GetIfPresent(match); ok {
		return id, nil
	}

	resp, err := c.service.Users.DataSources.List(userID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to list data sources: %w", err)
	}

	for _, ds := range resp.DataSource {
		if ds != nil && strings.Contains(ds.DataStreamId, match) {
			c.streams.Set(match, ds.DataStreamId)

			slog.DebugContext(ctx, "resolved google fit data source",
				slog.String("match", match),
				slog.String("data_stream_id", ds.DataStreamId),
			)
			return ds.DataStreamId, nil
		}
	}

	slog.ErrorContext(ctx, "google fit data source not found",
		slog.String("event", "googlefit.datasource.missing"),
		slog.String("match", match),
		slog.Int("data_source_count", len(resp.DataSource)),
	)

	return "", fmt.Errorf("%w: %s", domain.ErrDataSourceNotFound, match)
}

// DatasetID formats the "<startNanos>-<endNanos>" id the datasets endpoint expects.
func DatasetID(start, end time.Time) string {
	return fmt.Sprintf("%d-%d", start.UnixNano(), end.UnixNano())
}
