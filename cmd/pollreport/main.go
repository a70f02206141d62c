// Command pollreport prints a summary of a poll data file: the candidate with
// the highest mean result, the likely voter averages and the change between
// the earliest and latest polls.
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"pollcli/internal/config"
	apperrors "pollcli/internal/errors"
	"pollcli/internal/infrastructure"
	"pollcli/internal/polling"
	"pollcli/internal/report"
	"pollcli/pkg/contracts"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(apperrors.ExitCode(err))
	}
}

// options holds the command line flags; empty values keep the configured setting.
type options struct {
	file        string
	configPath  string
	xlsxPath    string
	csvPath     string
	metricsFile string
	scale       string
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("pollreport", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.file, "file", "", "poll data CSV file (defaults to input.file, polling_data.csv)")
	fs.StringVar(&o.configPath, "config", "", "YAML config file (defaults to pollreport.yaml or config.yaml if present)")
	fs.StringVar(&o.xlsxPath, "xlsx", "", "also write the summary to this XLSX workbook")
	fs.StringVar(&o.csvPath, "csv", "", "also write the summary to this CSV file")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	fs.StringVar(&o.scale, "scale", "", "result scale of the input: percent | fraction")
	fs.BoolVar(&o.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// apply overlays the flags that were set onto cfg.
func (o *options) apply(cfg *config.Config) {
	if o.file != "" {
		cfg.Input.File = o.file
	}
	if o.scale != "" {
		cfg.Input.ResultScale = strings.ToLower(o.scale)
	}
	if o.xlsxPath != "" {
		cfg.Export.XLSXPath = o.xlsxPath
	}
	if o.csvPath != "" {
		cfg.Export.CSVPath = o.csvPath
	}
	if o.metricsFile != "" {
		cfg.Telemetry.MetricsFile = o.metricsFile
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Used until the configured logger exists
	bootstrap := slog.New(slog.NewJSONHandler(stderr, nil))

	opts, err := parseFlags(args, stderr)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return nil
		}
		return apperrors.NewConfigError("invalid command line", err)
	}
	if opts.version {
		_, err := fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		bootstrap.Error("Failed to load configuration", slog.String("error", err.Error()))
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		bootstrap.Error("Invalid command line", slog.String("error", err.Error()))
		return err
	}

	paths, err := config.GetPaths()
	if err != nil {
		bootstrap.Error("Failed to initialize paths", slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to initialize paths", err)
	}
	if cfg.Logging.Output != "console" {
		cfg.Logging.FilePath = paths.Resolve(cfg.Logging.FilePath)
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		bootstrap.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)

	ctx = infrastructure.EnsureTraceID(ctx)
	paths.LogPathResolution(logger.Logger)

	return generate(ctx, cfg, paths, logger.Logger, stdout, stderr)
}

// generate runs ingestion and reporting with telemetry around it.
func generate(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger, stdout, stderr io.Writer) error {
	scale, err := report.ParseScale(cfg.Input.ResultScale)
	if err != nil {
		return apperrors.NewConfigError("invalid result scale", err)
	}

	providers, err := infrastructure.InitializeOTel(ctx, infrastructure.NewOTelConfig(cfg.Telemetry, stderr), logger)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to initialize telemetry")
		return apperrors.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.NewRunMetrics(providers.Meter)
	if err != nil {
		return apperrors.NewConfigError("failed to create run metrics", err)
	}

	ctx, span := providers.Tracer.Start(ctx, "pollreport.run")
	defer span.End()

	inputPath := paths.Resolve(cfg.Input.File)
	logger.InfoContext(ctx, "Starting poll report",
		slog.String("input_file", inputPath),
		slog.String("result_scale", scale.String()))

	start := time.Now()
	ds, err := polling.Load(ctx, inputPath,
		polling.WithLogger(logger),
		polling.WithTracer(providers.Tracer))
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to load poll data",
			slog.String("input_file", inputPath))
		return err
	}
	metrics.RecordIngest(ctx, inputPath, ds.Stats(), time.Since(start))

	summary := report.Build(ctx, ds, cfg.Candidates)
	metrics.RecordSummary(ctx, cfg.Candidates, summary.LikelyVoter, summary.HistoryChange)

	if err := summary.WriteText(stdout, scale); err != nil {
		return apperrors.NewExportError("failed to write report", err)
	}

	if err := export(ctx, cfg, paths, summary, scale); err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Export failed")
		return err
	}

	if cfg.Telemetry.MetricsFile != "" {
		metricsPath := paths.Resolve(cfg.Telemetry.MetricsFile)
		if err := paths.EnsureDirectories(metricsPath); err != nil {
			return apperrors.NewExportError("failed to create metrics directory", err)
		}
		if err := providers.WriteMetricsFile(metricsPath); err != nil {
			infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to write metrics file")
			return apperrors.NewExportError("failed to write metrics file", err).WithContext("path", metricsPath)
		}
	}

	logger.InfoContext(ctx, "Poll report complete",
		slog.Int("records", summary.Records),
		slog.Bool("has_leader", summary.HasLeader),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func export(ctx context.Context, cfg *config.Config, paths *config.Paths, summary report.Summary, scale report.Scale) error {
	if cfg.Export.XLSXPath != "" {
		path := paths.Resolve(cfg.Export.XLSXPath)
		if err := report.SaveXLSX(summary, path, scale); err != nil {
			return err
		}
		infrastructure.SetSpanAttributes(ctx, attribute.String("report.xlsx", path))
	}
	if cfg.Export.CSVPath != "" {
		path := paths.Resolve(cfg.Export.CSVPath)
		if err := report.SaveCSV(summary, path, scale); err != nil {
			return err
		}
		infrastructure.SetSpanAttributes(ctx, attribute.String("report.csv", path))
	}
	return nil
}
