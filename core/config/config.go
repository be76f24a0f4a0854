// Package config holds the run settings of the worldstats pipeline and the
// optional per-source override file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/leofalp/worldstats/internal/utils"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Environment variables read by FromEnv.
const (
	EnvOutputDir       = "WORLDSTATS_OUTPUT_DIR"
	EnvUserAgent       = "WORLDSTATS_USER_AGENT"
	EnvTimeout         = "WORLDSTATS_TIMEOUT"
	EnvConcurrency     = "WORLDSTATS_CONCURRENCY"
	EnvPopulationLimit = "WORLDSTATS_POPULATION_LIMIT"
	EnvSnapshots       = "WORLDSTATS_SNAPSHOTS"
	EnvSourcesFile     = "WORLDSTATS_SOURCES_FILE"
)

// Config is the full set of run settings.
type Config struct {
	// OutputDir receives the CSV files and the snapshots directory.
	OutputDir string
	// UserAgent replaces the fetcher's browser User-Agent when set.
	UserAgent string
	// Timeout bounds each page request.
	Timeout time.Duration
	// Concurrency is the number of sources fetched at once; 1 is sequential.
	Concurrency int
	// PopulationLimit caps the population rows; 0 means the default of 50.
	PopulationLimit int
	// Snapshots saves each located table as Markdown.
	Snapshots bool
	// SourcesFile is an optional YAML or JSON override file.
	SourcesFile string
}

// Default returns the reference settings: sequential fetching into ./data.
func Default() Config {
	return Config{
		OutputDir:   "data",
		Timeout:     30 * time.Second,
		Concurrency: 1,
	}
}

// FromEnv returns Default with every WORLDSTATS_* variable that is set
// applied on top. Malformed values are reported together.
func FromEnv() (Config, error) {
	c := Default()
	var errs []error

	setString(&c.OutputDir, EnvOutputDir)
	setString(&c.UserAgent, EnvUserAgent)
	setString(&c.SourcesFile, EnvSourcesFile)
	errs = append(errs,
		setParsed(&c.Timeout, EnvTimeout),
		setParsed(&c.Concurrency, EnvConcurrency),
		setParsed(&c.PopulationLimit, EnvPopulationLimit),
		setParsed(&c.Snapshots, EnvSnapshots),
	)
	if err := errors.Join(errs...); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return c, nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setParsed[T any](dst *T, key string) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := utils.ParseStringAs[T](raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v
	return nil
}

// Validate checks that the settings can drive a run.
func (c Config) Validate() error {
	var errs []error
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory is empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.PopulationLimit < 0 {
		errs = append(errs, fmt.Errorf("population limit must not be negative, got %d", c.PopulationLimit))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SnapshotDir is where Markdown snapshots are written.
func (c Config) SnapshotDir() string {
	return filepath.Join(c.OutputDir, "snapshots")
}
