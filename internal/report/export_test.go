package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "pollcli/internal/errors"
	"pollcli/internal/polling"
)

func TestSaveXLSX(t *testing.T) {
	summary := Build(context.Background(), loadFixture(t), names)
	path := filepath.Join(t.TempDir(), "out", "summary.xlsx")

	require.NoError(t, SaveXLSX(summary, path, ScalePercent))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, IngestSheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Metric", "Candidate", "Value"},
		{"highest_average", "Harris", "49.88"},
		{"likely_voter_average", "Harris", "49.34"},
		{"likely_voter_average", "Trump", "46.04"},
		{"history_change", "Harris", "1.53"},
		{"history_change", "Trump", "2.07"},
	}, rows)

	ingest, err := f.GetRows(IngestSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Source", fixturePath},
		{"Rows", "65"},
		{"Accepted", "64"},
		{"Skipped (short)", "1"},
		{"Unknown sample", "1"},
	}, ingest)
}

func TestSaveXLSX_EmptyDataset(t *testing.T) {
	summary := Build(context.Background(), polling.NewDataset(nil), names)
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, SaveXLSX(summary, path, ScalePercent))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	candidate, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, NoDataLabel, candidate)

	value, err := f.GetCellValue(SummarySheet, "C2")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestSaveXLSX_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	summary := Build(context.Background(), polling.NewDataset(nil), names)
	err := SaveXLSX(summary, filepath.Join(blocker, "summary.xlsx"), ScalePercent)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeExport))
}

func TestSaveCSV(t *testing.T) {
	summary := Build(context.Background(), loadFixture(t), names)
	path := filepath.Join(t.TempDir(), "summary.csv")

	require.NoError(t, SaveCSV(summary, path, ScalePercent))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(content[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Metric", "Candidate", "Value"},
		{"highest_average", "Harris", "49.88"},
		{"likely_voter_average", "Harris", "49.34"},
		{"likely_voter_average", "Trump", "46.04"},
		{"history_change", "Harris", "1.53"},
		{"history_change", "Trump", "2.07"},
	}, records)
}

func TestSaveCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("stale,"), 100), 0644))

	summary := Build(context.Background(), polling.NewDataset(nil), names)
	require.NoError(t, SaveCSV(summary, path, ScalePercent))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
	assert.Contains(t, string(content), "highest_average,None,\n")
}

func TestSaveCSV_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	summary := Build(context.Background(), polling.NewDataset(nil), names)
	err := SaveCSV(summary, filepath.Join(blocker, "summary.csv"), ScalePercent)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeExport))
}
