// Package config provides the YAML declaration loader for cascade.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when a directory is given.
const DefaultFilename = "cascade.yaml"

// SupportedVersion is the only configuration schema version understood by the loader.
const SupportedVersion = "1"

var (
	// ErrUnsupportedVersion is returned when the configuration declares an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported config version")

	// ErrDuplicateType is returned when two declared types share a name.
	ErrDuplicateType = zerr.New("duplicate type")

	// ErrMissingName is returned when a type or property is declared without a name.
	ErrMissingName = zerr.New("missing name")
)

var _ ports.SpecLoader = (*Loader)(nil)

// Loader implements ports.SpecLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the declarations at path. If path is a directory, DefaultFilename inside it is read.
func (l *Loader) Load(path string) ([]domain.TypeSpec, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFilename)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, "config file not found"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Cascadefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return l.toSpecs(&file, path)
}

func (l *Loader) toSpecs(file *Cascadefile, path string) ([]domain.TypeSpec, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(ErrUnsupportedVersion, "invalid config"), "version", file.Version)
	}

	specs := make([]domain.TypeSpec, 0, len(file.Types))
	seen := make(map[string]bool, len(file.Types))

	for i, dto := range file.Types {
		if dto.Name == "" {
			return nil, zerr.With(zerr.Wrap(ErrMissingName, "type declared without a name"), "index", i)
		}
		if seen[dto.Name] {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateType, "invalid config"), "type", dto.Name)
		}
		seen[dto.Name] = true

		if len(dto.Properties) == 0 && l.Logger != nil {
			l.Logger.Warn("type " + dto.Name + " in " + path + " declares no properties")
		}

		b := domain.Describe(dto.Name)
		for _, p := range dto.Properties {
			if p.Name == "" {
				err := zerr.With(zerr.Wrap(ErrMissingName, "property declared without a name"), "type", dto.Name)
				return nil, err
			}
			b.Property(p.Name, markers(p)...)
		}
		specs = append(specs, b.Spec())
	}

	return specs, nil
}

func markers(p PropertyDTO) []domain.Marker {
	var res []domain.Marker
	if len(p.Notifies) > 0 {
		res = append(res, domain.Notifies(p.Notifies...))
	}
	if len(p.NotifiedBy) > 0 {
		res = append(res, domain.NotifiedBy(p.NotifiedBy...))
	}
	return res
}
