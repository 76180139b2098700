// Package pipeline orchestrates one dashboard render pass: fetch the sheet,
// ingest it, apply the caller's filters, detect planned/actual divergences,
// aggregate, and assemble the view model. Every pass starts from a fresh
// fetch; there is no shared table state between passes.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/domain"
	"github.com/vivmon/viveiro-dashboard/internal/ingest"
	"github.com/vivmon/viveiro-dashboard/internal/observability"
)

// ErrSourceUnavailable marks a pass aborted because the sheet could not be
// fetched or parsed. Cell-level problems never produce it; they degrade to
// absent values instead.
var ErrSourceUnavailable = errors.New("source unavailable")

// Source fetches the raw CSV export of the sheet.
type Source interface {
	FetchCSV(ctx context.Context) ([]byte, error)
}

// AlertSink receives the divergence alerts of a render pass.
type AlertSink interface {
	Publish(ctx context.Context, alerts []domain.DivergenceAlert) error
}

// Pipeline runs render passes. Safe for concurrent use: passes share no
// mutable state beyond the readiness flag and metrics.
type Pipeline struct {
	source  Source
	alerts  AlertSink // nil disables alert publishing
	columns config.Columns
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline. Pass a nil sink to disable alert publishing.
func New(source Source, alerts AlertSink, columns config.Columns, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		alerts:  alerts,
		columns: columns,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once at least one pass has completed
// successfully, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no render pass has completed yet")
	}
	return nil
}

// Render runs one full pass and builds the dashboard view for the given
// filter state. Only a fetch/parse failure aborts the pass; an empty sheet
// yields a view with Empty set.
func (p *Pipeline) Render(ctx context.Context, f domain.FilterState) (*View, error) {
	start := time.Now()
	passID := uuid.NewString()
	logger := p.logger.With("pass_id", passID)

	table, err := p.load(ctx, logger)
	if err != nil {
		return nil, err
	}

	filtered := domain.Apply(table, f)
	diffs := domain.Detect(filtered)
	divergent := domain.Divergent(diffs)
	p.metrics.DivergentRows.Set(float64(len(divergent)))

	p.publishAlerts(ctx, logger, filtered, divergent)

	view := buildView(passID, table, filtered, diffs)
	if view.Empty {
		p.metrics.EmptyPasses.Inc()
	}

	p.metrics.RenderPasses.Inc()
	p.metrics.PassDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)

	logger.Info("render pass complete",
		"rows", len(table.Rows),
		"filtered_rows", len(filtered.Rows),
		"divergent_rows", len(divergent),
		"empty", view.Empty,
	)
	return view, nil
}

// NearestUnit resolves a map click against a fresh pass: the filtered table
// is searched for the closest record by flat-plane squared distance, and its
// photos are returned for the gallery focus.
func (p *Pipeline) NearestUnit(ctx context.Context, lat, lon float64, f domain.FilterState) (*NearestView, error) {
	passID := uuid.NewString()
	logger := p.logger.With("pass_id", passID)

	table, err := p.load(ctx, logger)
	if err != nil {
		return nil, err
	}

	filtered := domain.Apply(table, f)
	idx, ok := domain.Nearest(filtered, lat, lon)
	if !ok {
		return &NearestView{PassID: passID}, nil
	}

	rec := filtered.Rows[idx]
	diffs := domain.Detect(filtered)
	row := buildDetailRow(rec, diffs[idx])

	view := &NearestView{PassID: passID, Found: true, Unit: &row}
	if photo, ok := domain.ResolvePhoto(rec); ok {
		view.Photos = []domain.Photo{photo}
	}

	p.ready.Store(true)
	return view, nil
}

// load fetches and ingests the sheet, recording source metrics. All failures
// here are terminal for the pass.
func (p *Pipeline) load(ctx context.Context, logger *slog.Logger) (domain.Table, error) {
	fetchStart := time.Now()
	data, err := p.source.FetchCSV(ctx)
	if err != nil {
		p.metrics.SourceErrors.Inc()
		logger.Error("sheet fetch failed", "error", err)
		return domain.Table{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	p.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	table, err := ingest.Parse(bytes.NewReader(data), p.columns)
	if err != nil {
		p.metrics.SourceErrors.Inc()
		logger.Error("sheet parse failed", "error", err)
		return domain.Table{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	p.metrics.RowsIngested.Observe(float64(len(table.Rows)))
	p.metrics.CoercionFailures.Add(float64(table.CoercionFailures()))
	return table, nil
}

// publishAlerts sends the pass's divergent rows to the alert sink. Publish
// failures degrade to a warning; the render pass itself still succeeds.
func (p *Pipeline) publishAlerts(ctx context.Context, logger *slog.Logger, t domain.Table, divergent []domain.RowDiff) {
	if p.alerts == nil || len(divergent) == 0 {
		return
	}

	alerts := make([]domain.DivergenceAlert, len(divergent))
	for i, d := range divergent {
		alerts[i] = domain.NewDivergenceAlert(t.Rows[d.Row], d)
	}

	if err := p.alerts.Publish(ctx, alerts); err != nil {
		p.metrics.AlertPublishErrors.Inc()
		logger.Warn("alert publish failed", "error", err, "alerts", len(alerts))
		return
	}
	p.metrics.AlertsPublished.Add(float64(len(alerts)))
}
