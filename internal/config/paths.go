package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the directories the report tool reads from and writes to.
// Relative input and output paths resolve against BaseDir, which is the
// working directory of the analyst running the report.
type Paths struct {
	BaseDir       string
	ExecutableDir string
	ReportsDir    string
	LogsDir       string
}

// GetPaths returns paths rooted at the current working directory
func GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		exeDir = filepath.Dir(exe)
	}

	paths := NewPaths(wd)
	paths.ExecutableDir = exeDir
	return paths, nil
}

// NewPaths returns paths rooted at baseDir
func NewPaths(baseDir string) *Paths {
	return &Paths{
		BaseDir:    baseDir,
		ReportsDir: filepath.Join(baseDir, "reports"),
		LogsDir:    filepath.Join(baseDir, "logs"),
	}
}

// Resolve makes p absolute relative to BaseDir. Absolute paths and the empty
// string are returned unchanged.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates the directories for the given output files.
// Empty entries are skipped.
func (p *Paths) EnsureDirectories(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		dir := filepath.Dir(p.Resolve(f))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("executable", p.ExecutableDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		))
}
