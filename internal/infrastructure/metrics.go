package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"pollcli/internal/polling"
	"pollcli/pkg/contracts/domain"
)

// RunMetrics holds the instruments recorded by one report run
type RunMetrics struct {
	RowsRead         metric.Int64Counter
	RowsAccepted     metric.Int64Counter
	RowsSkipped      metric.Int64Counter
	SamplesDefaulted metric.Int64Counter
	IngestDuration   metric.Float64Histogram

	LikelyVoterAverage metric.Float64Gauge
	HistoryChange      metric.Float64Gauge
}

// NewRunMetrics creates the run instruments on meter
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	m := &RunMetrics{}
	var err error

	m.RowsRead, err = meter.Int64Counter(
		"poll_rows_read",
		metric.WithDescription("Data rows read after the header"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rows read counter: %w", err)
	}

	m.RowsAccepted, err = meter.Int64Counter(
		"poll_rows_accepted",
		metric.WithDescription("Data rows stored as poll records"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rows accepted counter: %w", err)
	}

	m.RowsSkipped, err = meter.Int64Counter(
		"poll_rows_skipped",
		metric.WithDescription("Data rows skipped for having too few fields"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rows skipped counter: %w", err)
	}

	m.SamplesDefaulted, err = meter.Int64Counter(
		"poll_samples_defaulted",
		metric.WithDescription("Records stored with the unknown sample descriptor"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create samples defaulted counter: %w", err)
	}

	m.IngestDuration, err = meter.Float64Histogram(
		"poll_ingest_duration",
		metric.WithDescription("Time spent loading the poll data file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingest duration histogram: %w", err)
	}

	m.LikelyVoterAverage, err = meter.Float64Gauge(
		"poll_likely_voter_average",
		metric.WithDescription("Mean result among likely voter polls"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create likely voter gauge: %w", err)
	}

	m.HistoryChange, err = meter.Float64Gauge(
		"poll_history_change",
		metric.WithDescription("Latest window mean minus earliest window mean"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create history change gauge: %w", err)
	}

	return m, nil
}

// RecordIngest records the outcome of loading a file
func (m *RunMetrics) RecordIngest(ctx context.Context, source string, stats polling.IngestStats, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("source", source))

	m.RowsRead.Add(ctx, int64(stats.Rows), attrs)
	m.RowsAccepted.Add(ctx, int64(stats.Accepted), attrs)
	m.RowsSkipped.Add(ctx, int64(stats.SkippedShort), attrs)
	m.SamplesDefaulted.Add(ctx, int64(stats.DefaultedSample), attrs)
	m.IngestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSummary records the per-candidate summary figures
func (m *RunMetrics) RecordSummary(ctx context.Context, names domain.CandidateNames, lv, change domain.CandidatePair) {
	a := metric.WithAttributes(attribute.String("candidate", names.A))
	b := metric.WithAttributes(attribute.String("candidate", names.B))

	m.LikelyVoterAverage.Record(ctx, lv.A, a)
	m.LikelyVoterAverage.Record(ctx, lv.B, b)
	m.HistoryChange.Record(ctx, change.A, a)
	m.HistoryChange.Record(ctx, change.B, b)
}
