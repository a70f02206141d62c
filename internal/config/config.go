package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "pollcli/internal/errors"
	"pollcli/pkg/contracts/domain"
)

// EnvPrefix namespaces every environment variable, e.g. POLL_INPUT_FILE.
const EnvPrefix = "POLL"

// Result scales understood by the report renderer.
const (
	ScalePercent  = "percent"
	ScaleFraction = "fraction"
)

// Config represents the complete application configuration
type Config struct {
	Input      InputConfig           `yaml:"input" envconfig:"INPUT"`
	Candidates domain.CandidateNames `yaml:"candidates" envconfig:"CANDIDATES"`
	Logging    LoggingConfig         `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig       `yaml:"telemetry" envconfig:"TELEMETRY"`
	Export     ExportConfig          `yaml:"export" envconfig:"EXPORT"`
}

// InputConfig describes the poll data file
type InputConfig struct {
	File string `yaml:"file" envconfig:"FILE" validate:"required"`
	// ResultScale tells the renderer whether results are stored as 0-100
	// percentages or 0-1 fractions.
	ResultScale string `yaml:"result_scale" envconfig:"RESULT_SCALE" validate:"oneof=percent fraction"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains local tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	// MetricsFile receives a Prometheus text exposition of the run metrics.
	// Empty disables the file.
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// ExportConfig contains optional report exports
type ExportConfig struct {
	XLSXPath string `yaml:"xlsx_path" envconfig:"XLSX_PATH" validate:"omitempty,endswith=.xlsx"`
	CSVPath  string `yaml:"csv_path" envconfig:"CSV_PATH" validate:"omitempty,endswith=.csv"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			File:        "polling_data.csv",
			ResultScale: ScalePercent,
		},
		Candidates: domain.CandidateNames{
			A: "Harris",
			B: "Trump",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/pollreport.log",
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "pollreport",
			TraceExporter: "none",
		},
	}
}

// Load builds the configuration from defaults, the YAML file and the
// environment, in increasing order of precedence. An empty path searches the
// usual locations; a missing file is not an error unless it was named explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", configFile)
		}
	}

	// Only variables that are actually set override; there are no default tags.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) normalize() {
	c.Input.ResultScale = strings.ToLower(strings.TrimSpace(c.Input.ResultScale))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Telemetry.TraceExporter = strings.ToLower(strings.TrimSpace(c.Telemetry.TraceExporter))
}

var validate = validator.New()

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("config validation failed", err)
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, formatFieldError(fe))
	}

	return apperrors.NewValidationError("config validation failed", err).
		WithContext("fields", fields)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Namespace(), fe.Param(), fe.Value())
	case "endswith":
		return fmt.Sprintf("%s must end with %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"pollreport.yaml",
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
