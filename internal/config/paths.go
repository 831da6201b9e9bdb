package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the pipeline.
type Paths struct {
	BaseDir    string
	DataDir    string
	CleanDir   string
	MetricsDir string
	FiguresDir string
	LogsDir    string

	// Well-known input files. The CSV is the primary input; the XLSX roster
	// is used only when the CSV is absent.
	PatientsCSV  string
	PatientsXLSX string

	// Well-known output files
	CleanCSV string
}

// GetPaths returns the pipeline paths rooted at baseDir. An empty baseDir
// means the current working directory, which is where analysts run the tool.
func GetPaths(baseDir string) (*Paths, error) {
	if baseDir == "" {
		baseDir = "."
	}
	baseDir = filepath.Clean(baseDir)

	// Directory structure:
	// .
	//   ├── data/
	//   │   └── patients.csv      (input dataset)
	//   ├── outputs/
	//   │   ├── clean/            (cleaned dataset)
	//   │   ├── metrics/          (summary CSV tables)
	//   │   └── figures/          (chart PNGs)
	//   └── logs/

	dataDir := filepath.Join(baseDir, "data")
	cleanDir := filepath.Join(baseDir, "outputs", "clean")
	metricsDir := filepath.Join(baseDir, "outputs", "metrics")
	figuresDir := filepath.Join(baseDir, "outputs", "figures")

	paths := &Paths{
		BaseDir:    baseDir,
		DataDir:    dataDir,
		CleanDir:   cleanDir,
		MetricsDir: metricsDir,
		FiguresDir: figuresDir,
		LogsDir:    filepath.Join(baseDir, "logs"),

		PatientsCSV:  filepath.Join(dataDir, "patients.csv"),
		PatientsXLSX: filepath.Join(dataDir, "patients.xlsx"),

		CleanCSV: filepath.Join(cleanDir, "patients_clean.csv"),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.CleanDir,
		p.MetricsDir,
		p.FiguresDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetMetricsPath returns the full path for a metrics CSV file
func (p *Paths) GetMetricsPath(filename string) string {
	return filepath.Join(p.MetricsDir, filename)
}

// GetFigurePath returns the full path for a chart PNG file
func (p *Paths) GetFigurePath(filename string) string {
	return filepath.Join(p.FiguresDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// InputFile returns the patient roster path to load: the CSV when it exists,
// otherwise the XLSX fallback. Returns the CSV path when neither exists so
// the loader reports a sensible missing-file error.
func (p *Paths) InputFile() string {
	if _, err := os.Stat(p.PatientsCSV); err == nil {
		return p.PatientsCSV
	}
	if _, err := os.Stat(p.PatientsXLSX); err == nil {
		return p.PatientsXLSX
	}
	return p.PatientsCSV
}
