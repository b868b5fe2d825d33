// Package describe reads type descriptions from YAML or TOML files.
package describe

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cottand/rebind/internal/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "describe")

type Format int

const (
	YAML Format = iota
	TOML
)

// FormatOf picks the format of path from its extension, defaulting to YAML
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// LoadFile reads and parses the description file at path
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read description file %s", path)
	}
	f, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	logger.Debug("loaded description file", "path", path, "types", len(f.Types))
	return f, nil
}

// Parse decodes data in the given format
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case TOML:
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML")
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML")
		}
	}
	return &f, nil
}
