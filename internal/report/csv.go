package report

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "pollcli/internal/errors"
)

// SaveCSV writes the summary table to a CSV file at path, replacing any
// existing file. The file starts with a UTF-8 BOM so Excel detects the encoding.
func SaveCSV(s Summary, path string, scale Scale) error {
	rows := s.Table(scale)

	slog.Info("Writing CSV report",
		slog.String("component", "report"),
		slog.String("file_path", path),
		slog.Int("record_count", len(rows)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return csvError(path, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return csvError(path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return csvError(path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(TableHeaders); err != nil {
		return csvError(path, err)
	}
	for _, row := range rows {
		value := ""
		if row.HasValue {
			value = formatFloat(row.Value)
		}
		if err := writer.Write([]string{row.Metric, row.Candidate, value}); err != nil {
			return csvError(path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return csvError(path, err)
	}

	slog.Debug("CSV report written",
		slog.String("component", "report"),
		slog.Int("records", len(rows)))
	return file.Close()
}

func csvError(path string, err error) error {
	return apperrors.NewExportError("failed to write CSV report", err).WithContext("path", path)
}
