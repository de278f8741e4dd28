// Package config reads and writes drivetrain configuration files. Files
// are YAML and hold one or more named configurations; they are explicit
// user I/O, not persistence — the session itself stays in memory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/velotools/gearrange-cli/internal/drivetrain"
)

// DrivetrainConfig is the file representation of one configuration.
type DrivetrainConfig struct {
	Name            string   `yaml:"name"`
	Chainring       []int    `yaml:"chainring"`
	Cassette        []int    `yaml:"cassette"`
	WheelDiameterMM float64  `yaml:"wheel_diameter_mm"`
	TyreOffsetMM    *float64 `yaml:"tyre_offset_mm,omitempty"`
	CadenceRPM      []int    `yaml:"cadence_rpm"`
}

// File is the top-level document structure.
type File struct {
	Configurations []DrivetrainConfig `yaml:"configurations"`
}

// Build validates the configuration and constructs the typed parts.
// A missing tyre offset falls back to the drivetrain default.
func (c DrivetrainConfig) Build() (*drivetrain.Drivetrain, drivetrain.Cadence, error) {
	offset := drivetrain.DefaultTyreOffset
	if c.TyreOffsetMM != nil {
		offset = *c.TyreOffsetMM
	}

	d, err := drivetrain.FromNumbers(c.Chainring, c.Cassette, c.WheelDiameterMM, offset)
	if err != nil {
		return nil, drivetrain.Cadence{}, fmt.Errorf("configuration %q: %w", c.Name, err)
	}

	cadence, err := drivetrain.NewCadence(c.CadenceRPM...)
	if err != nil {
		return nil, drivetrain.Cadence{}, fmt.Errorf("configuration %q: %w", c.Name, err)
	}

	return d, cadence, nil
}

// Read loads a configuration file. Only .yaml/.yml files are accepted.
func Read(path string) ([]DrivetrainConfig, error) {
	if err := checkExtension(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Configurations) == 0 {
		return nil, fmt.Errorf("%s contains no configurations", path)
	}
	return file.Configurations, nil
}

// Write saves configurations to a YAML file, creating or truncating it.
func Write(path string, configs []DrivetrainConfig) error {
	if err := checkExtension(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(File{Configurations: configs})
	if err != nil {
		return fmt.Errorf("encode configurations: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func checkExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("unsupported configuration file extension %q (expected .yaml or .yml)", filepath.Ext(path))
	}
}
