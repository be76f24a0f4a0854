package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"github.com/leofalp/worldstats/core/merge"
	"github.com/leofalp/worldstats/internal/utils"
)

// ErrUnsupportedFormat is returned for override files that are neither YAML
// nor JSON.
var ErrUnsupportedFormat = errors.New("config: unsupported override file format")

// SourceOverride changes where and how one source is read. Unset fields keep
// the built-in value.
type SourceOverride struct {
	URL string `yaml:"url" json:"url"`
	// Selector is a CSS selector for the source table, e.g.
	// "table.wikitable:nth-of-type(2)". It replaces the built-in selector.
	Selector   string `yaml:"selector" json:"selector"`
	HeaderRows *int   `yaml:"header_rows" json:"header_rows"`
	Limit      *int   `yaml:"limit" json:"limit"`
}

// Overrides maps a source name to its override.
type Overrides map[string]SourceOverride

type overrideFile struct {
	Sources Overrides `yaml:"sources" json:"sources"`
}

// LoadOverrides reads an override file. The format follows the extension:
// .yaml and .yml are YAML, .json is JSON read leniently, so trailing commas,
// comments and single quotes are accepted. The file has one top-level key,
// "sources", mapping source names to overrides:
//
//	sources:
//	  gdp:
//	    url: file:///srv/pages/gdp.html
//	    selector: table#gdp
//	    header_rows: 2
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}

	var file overrideFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse overrides %s: %w", path, err)
		}
	case ".json":
		file, err = utils.ParseStringAs[overrideFile](string(data))
		if err != nil {
			return nil, fmt.Errorf("parse overrides %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := file.Sources.Validate(); err != nil {
		return nil, fmt.Errorf("overrides %s: %w", path, err)
	}
	return file.Sources, nil
}

// Validate rejects unknown source names, invalid CSS selectors and negative
// counts.
func (o Overrides) Validate() error {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		ov := o[name]
		if !slices.Contains(merge.SourceColumns, name) {
			errs = append(errs, fmt.Errorf("unknown source %q (known: %s)", name, strings.Join(merge.SourceColumns, ", ")))
		}
		if ov.Selector != "" {
			if _, err := cascadia.Compile(ov.Selector); err != nil {
				errs = append(errs, fmt.Errorf("%s: selector %q: %w", name, ov.Selector, err))
			}
		}
		if ov.HeaderRows != nil && *ov.HeaderRows < 0 {
			errs = append(errs, fmt.Errorf("%s: header_rows must not be negative", name))
		}
		if ov.Limit != nil && *ov.Limit < 0 {
			errs = append(errs, fmt.Errorf("%s: limit must not be negative", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
