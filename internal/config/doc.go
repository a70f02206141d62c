// Package config provides configuration management for the poll report tool.
// It loads configuration from several sources, validates it, and resolves the
// paths the tool reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern POLL_<SECTION>_<FIELD>:
//
//	POLL_INPUT_FILE=polling_data.csv
//	POLL_INPUT_RESULT_SCALE=percent
//	POLL_CANDIDATES_A=Harris
//	POLL_CANDIDATES_B=Trump
//	POLL_LOGGING_LEVEL=debug
//	POLL_TELEMETRY_METRICS_FILE=reports/run.prom
//
// # Configuration File
//
// When no file is named explicitly, Load looks for pollreport.yaml,
// config.yaml and configs/config.yaml in the working directory:
//
//	input:
//	  file: polling_data.csv
//	  result_scale: percent
//	candidates:
//	  a: Harris
//	  b: Trump
//	logging:
//	  level: info
//	  output: console
//	telemetry:
//	  trace_exporter: none
//	export:
//	  xlsx_path: reports/summary.xlsx
//	  csv_path: reports/summary.csv
//
// # Validation
//
// Struct tags are checked with go-playground/validator. Failures come back as
// VALIDATION application errors listing every offending field.
package config
