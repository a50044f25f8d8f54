// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when no config path is given.
var ErrNoConfig = errors.New("config: path required")

// Load reads, validates and normalizes a YAML config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrNoConfig
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)

	return &cfg, nil
}
