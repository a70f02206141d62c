package polling

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "pollcli/internal/errors"
	"pollcli/pkg/contracts/domain"
)

// RequiredFields is the number of raw fields a data row must have:
// month, date, sample descriptor and the two candidate results.
const RequiredFields = 5

// Raw field positions within a data row.
const (
	colMonth = iota
	colDate
	colSample
	colCandidateA
	colCandidateB
)

var columnNames = [RequiredFields]string{"month", "date", "sample", "candidate_a_result", "candidate_b_result"}

const tracerName = "pollcli/internal/polling"

// Option configures ingestion.
type Option func(*parseOptions)

type parseOptions struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// WithLogger sets the logger used for ingestion messages.
func WithLogger(logger *slog.Logger) Option {
	return func(o *parseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the tracer used for the ingestion span.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *parseOptions) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

func newParseOptions(opts []Option) *parseOptions {
	o := &parseOptions{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "polling")
	return o
}

// Load reads a poll data file into a Dataset. The file is opened read-only,
// consumed once and closed.
//
// Rows with fewer than RequiredFields fields are skipped. A sample descriptor
// that is not "<int> <code>" is stored as the unknown pair. A date or result
// that is not a number aborts the whole load: no dataset is returned.
func Load(ctx context.Context, path string, opts ...Option) (*Dataset, error) {
	o := newParseOptions(opts)

	ctx, span := o.tracer.Start(ctx, "polling.Load", trace.WithAttributes(
		attribute.String("poll.file", path),
	))
	defer span.End()

	file, err := os.Open(path)
	if err != nil {
		err = openError(path, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer file.Close()

	ds, err := parse(ctx, file, o)
	if err != nil {
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	ds.source = path

	span.SetAttributes(
		attribute.Int("poll.rows", ds.stats.Rows),
		attribute.Int("poll.accepted", ds.stats.Accepted),
		attribute.Int("poll.skipped_short", ds.stats.SkippedShort),
		attribute.Int("poll.defaulted_sample", ds.stats.DefaultedSample),
	)

	return ds, nil
}

// Parse reads poll data from r. It follows the same rules as Load.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*Dataset, error) {
	return parse(ctx, r, newParseOptions(opts))
}

func openError(path string, err error) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return apperrors.NewNotFoundError("poll data file", err).WithContext("path", path)
	}
	return apperrors.NewStorageError("failed to open poll data file", err).WithContext("path", path)
}

func parse(ctx context.Context, r io.Reader, o *parseOptions) (*Dataset, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row length is checked per row
	reader.LazyQuotes = true

	ds := &Dataset{}

	// Header row is ignored
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			o.logger.WarnContext(ctx, "Poll data has no header row, dataset is empty")
			return ds, nil
		}
		return nil, readError(err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(err)
		}
		ds.stats.Rows++

		line, _ := reader.FieldPos(0)

		if len(row) < RequiredFields {
			ds.stats.SkippedShort++
			o.logger.DebugContext(ctx, "Skipping short row",
				slog.Int("line", line),
				slog.Int("fields", len(row)))
			continue
		}

		rec, defaulted, err := parseRow(row, line)
		if err != nil {
			o.logger.ErrorContext(ctx, "Poll data ingestion aborted",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			return nil, err
		}
		if defaulted {
			ds.stats.DefaultedSample++
			o.logger.DebugContext(ctx, "Unparseable sample descriptor, using unknown sample",
				slog.Int("line", line),
				slog.String("sample", row[colSample]))
		}

		ds.records = append(ds.records, rec)
	}

	ds.stats.Accepted = len(ds.records)

	o.logger.InfoContext(ctx, "Dataset loaded",
		slog.Int("rows", ds.stats.Rows),
		slog.Int("accepted", ds.stats.Accepted),
		slog.Int("skipped_short", ds.stats.SkippedShort),
		slog.Int("defaulted_sample", ds.stats.DefaultedSample),
		slog.Duration("duration", time.Since(start)))

	return ds, nil
}

// parseRow converts the first RequiredFields fields of row into a record.
// defaulted reports whether the sample descriptor fell back to the unknown pair.
func parseRow(row []string, line int) (rec domain.PollRecord, defaulted bool, err error) {
	date, err := strconv.Atoi(strings.TrimSpace(row[colDate]))
	if err != nil {
		return rec, false, fieldError(line, colDate, row[colDate], err)
	}

	a, err := parseResult(row[colCandidateA])
	if err != nil {
		return rec, false, fieldError(line, colCandidateA, row[colCandidateA], err)
	}

	b, err := parseResult(row[colCandidateB])
	if err != nil {
		return rec, false, fieldError(line, colCandidateB, row[colCandidateB], err)
	}

	size, sampleType, ok := domain.ParseSampleDescriptor(row[colSample])

	return domain.PollRecord{
		Month:      row[colMonth],
		Date:       date,
		SampleSize: size,
		SampleType: sampleType,
		CandidateA: a,
		CandidateB: b,
	}, !ok, nil
}

var errNotFinite = stderrors.New("value is not a finite number")

func parseResult(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func fieldError(line, col int, value string, cause error) error {
	return apperrors.NewParsingError(
		fmt.Sprintf("invalid %s on line %d", columnNames[col], line), cause).
		WithContext("line", line).
		WithContext("column", columnNames[col]).
		WithContext("value", value)
}

func readError(err error) error {
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		return apperrors.NewParsingError(
			fmt.Sprintf("malformed CSV on line %d", perr.Line), err).
			WithContext("line", perr.Line)
	}
	return apperrors.NewStorageError("failed to read poll data", err)
}
