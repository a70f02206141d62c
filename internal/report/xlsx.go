package report

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	apperrors "pollcli/internal/errors"
)

// Sheet names of the exported workbook.
const (
	SummarySheet = "Summary"
	IngestSheet  = "Ingest"
)

// SaveXLSX writes the summary to an XLSX workbook at path. Figures go on the
// Summary sheet with two decimals, ingestion counters on the Ingest sheet.
func SaveXLSX(s Summary, path string, scale Scale) error {
	slog.Info("Writing XLSX report",
		slog.String("component", "report"),
		slog.String("file_path", path))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return xlsxError(path, err)
	}
	if err := writeSummarySheet(f, s, scale); err != nil {
		return xlsxError(path, err)
	}

	if _, err := f.NewSheet(IngestSheet); err != nil {
		return xlsxError(path, err)
	}
	for i, kv := range s.ingestRows() {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(IngestSheet, cell, &[]interface{}{kv[0], kv[1]}); err != nil {
			return xlsxError(path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return xlsxError(path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return xlsxError(path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s Summary, scale Scale) error {
	header := make([]interface{}, len(TableHeaders))
	for i, h := range TableHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "C1", bold); err != nil {
		return err
	}

	for i, row := range s.Table(scale) {
		r := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(SummarySheet, cell, &[]interface{}{row.Metric, row.Candidate}); err != nil {
			return err
		}
		if !row.HasValue {
			continue
		}
		valueCell, _ := excelize.CoordinatesToCellName(3, r)
		if err := f.SetCellFloat(SummarySheet, valueCell, row.Value, 2, 64); err != nil {
			return err
		}
	}

	return f.SetColWidth(SummarySheet, "A", "A", 24)
}

func xlsxError(path string, err error) error {
	return apperrors.NewExportError("failed to write XLSX report", err).WithContext("path", path)
}
