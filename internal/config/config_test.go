package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pollcli/internal/errors"
)

var envVars = []string{
	"POLL_INPUT_FILE", "POLL_INPUT_RESULT_SCALE",
	"POLL_CANDIDATES_A", "POLL_CANDIDATES_B",
	"POLL_LOGGING_LEVEL", "POLL_LOGGING_FORMAT", "POLL_LOGGING_OUTPUT", "POLL_LOGGING_FILE_PATH",
	"POLL_TELEMETRY_SERVICE_NAME", "POLL_TELEMETRY_TRACE_EXPORTER", "POLL_TELEMETRY_METRICS_FILE",
	"POLL_EXPORT_XLSX_PATH", "POLL_EXPORT_CSV_PATH",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range envVars {
		if val, ok := os.LookupEnv(envVar); ok {
			t.Cleanup(func() { os.Setenv(envVar, val) })
			os.Unsetenv(envVar)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pollreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		wantErrType apperrors.ErrorType
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "default configuration with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "polling_data.csv", cfg.Input.File)
				assert.Equal(t, ScalePercent, cfg.Input.ResultScale)
				assert.Equal(t, "Harris", cfg.Candidates.A)
				assert.Equal(t, "Trump", cfg.Candidates.B)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.Empty(t, cfg.Telemetry.MetricsFile)
				assert.Empty(t, cfg.Export.XLSXPath)
			},
		},
		{
			name: "custom environment variables",
			env: map[string]string{
				"POLL_INPUT_FILE":               "data/polls.csv",
				"POLL_INPUT_RESULT_SCALE":       "FRACTION",
				"POLL_CANDIDATES_A":             "Biden",
				"POLL_LOGGING_LEVEL":            "debug",
				"POLL_TELEMETRY_TRACE_EXPORTER": "stdout",
				"POLL_TELEMETRY_METRICS_FILE":   "run.prom",
				"POLL_EXPORT_XLSX_PATH":         "summary.xlsx",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "data/polls.csv", cfg.Input.File)
				assert.Equal(t, ScaleFraction, cfg.Input.ResultScale)
				assert.Equal(t, "Biden", cfg.Candidates.A)
				assert.Equal(t, "Trump", cfg.Candidates.B)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
				assert.Equal(t, "run.prom", cfg.Telemetry.MetricsFile)
				assert.Equal(t, "summary.xlsx", cfg.Export.XLSXPath)
			},
		},
		{
			name: "config file values",
			fileContent: `
input:
  file: archive/2024.csv
candidates:
  a: Obama
  b: Romney
logging:
  level: warn
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "archive/2024.csv", cfg.Input.File)
				assert.Equal(t, "Obama", cfg.Candidates.A)
				assert.Equal(t, "Romney", cfg.Candidates.B)
				assert.Equal(t, "warn", cfg.Logging.Level)
				// untouched keys keep their defaults
				assert.Equal(t, ScalePercent, cfg.Input.ResultScale)
				assert.Equal(t, "console", cfg.Logging.Output)
			},
		},
		{
			name: "config file with environment override",
			env: map[string]string{
				"POLL_LOGGING_LEVEL": "error",
			},
			fileContent: `
input:
  file: from-file.csv
logging:
  level: debug
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-file.csv", cfg.Input.File)
				assert.Equal(t, "error", cfg.Logging.Level)
			},
		},
		{
			name:        "invalid result scale",
			env:         map[string]string{"POLL_INPUT_RESULT_SCALE": "ratio"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "invalid trace exporter",
			env:         map[string]string{"POLL_TELEMETRY_TRACE_EXPORTER": "otlp"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "empty candidate name",
			env:         map[string]string{"POLL_CANDIDATES_B": ""},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "file output without file path",
			env:         map[string]string{"POLL_LOGGING_OUTPUT": "file", "POLL_LOGGING_FILE_PATH": ""},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "xlsx export with wrong extension",
			env:         map[string]string{"POLL_EXPORT_XLSX_PATH": "summary.csv"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "csv export with wrong extension",
			env:         map[string]string{"POLL_EXPORT_CSV_PATH": "summary.xlsx"},
			wantErr:     true,
			wantErrType: apperrors.ErrTypeValidation,
		},
		{
			name:        "invalid YAML syntax",
			fileContent: "input: [unclosed",
			wantErr:     true,
			wantErrType: apperrors.ErrTypeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.fileContent != "" {
				path = writeConfigFile(t, tt.fileContent)
			}

			cfg, err := Load(path)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.wantErrType), "got %v", err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestValidate_ReportsFields(t *testing.T) {
	cfg := Default()
	cfg.Input.ResultScale = "basis-points"
	cfg.Candidates.A = ""

	err := cfg.Validate()
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	fields, ok := appErr.Context["fields"].([]string)
	require.True(t, ok)
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "Config.Candidates.A is required")
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
