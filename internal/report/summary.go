package report

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"pollcli/internal/infrastructure"
	"pollcli/internal/polling"
	"pollcli/pkg/contracts/domain"
)

const tracerName = "pollcli/internal/report"

// Summary is the outcome of the report queries over one dataset.
type Summary struct {
	Source  string
	Names   domain.CandidateNames
	Records int
	Stats   polling.IngestStats

	// Leader is only meaningful when HasLeader is true.
	Leader        polling.Leader
	HasLeader     bool
	LikelyVoter   domain.CandidatePair
	HistoryChange domain.CandidatePair
}

// Build runs the report queries over ds.
func Build(ctx context.Context, ds *polling.Dataset, names domain.CandidateNames) Summary {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "report.Build")
	defer span.End()

	leader, ok := ds.HighestAverage(names)
	s := Summary{
		Source:        ds.Source(),
		Names:         names,
		Records:       ds.Len(),
		Stats:         ds.Stats(),
		Leader:        leader,
		HasLeader:     ok,
		LikelyVoter:   ds.LikelyVoterAverage(),
		HistoryChange: ds.HistoryChange(),
	}

	span.SetAttributes(
		attribute.Int("poll.records", s.Records),
		attribute.Bool("poll.has_leader", s.HasLeader),
	)

	logger := infrastructure.WithComponent(slog.Default(), "report")
	if ds.Len() < polling.MinHistoryRecords {
		logger.DebugContext(ctx, "Too few records for a history change",
			slog.Int("records", ds.Len()),
			slog.Int("required", polling.MinHistoryRecords))
	}

	logger.DebugContext(ctx, "Summary built",
		slog.Int("records", s.Records),
		slog.Bool("has_leader", s.HasLeader))

	return s
}
