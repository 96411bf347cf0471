package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := cfg.OverlayYAML(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := cfg.OverlayTOML(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OverlayYAML decodes YAML onto c. Keys absent from data keep their current
// values and map entries are added to the existing maps.
func (c *Config) OverlayYAML(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	c.initMaps()
	return nil
}

// OverlayTOML decodes TOML onto c with the same rules as OverlayYAML.
func (c *Config) OverlayTOML(data []byte) error {
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}
	c.initMaps()
	return nil
}

func (c *Config) initMaps() {
	if c.Scanners == nil {
		c.Scanners = make(map[string]ScannerConfig)
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Flavor:          c.Flavor,
		Ignore:          slices.Clone(c.Ignore),
		Extensions:      maps.Clone(c.Extensions),
		DetectLanguage:  c.DetectLanguage,
		MinSeverity:     c.MinSeverity,
		Format:          c.Format,
		Jobs:            c.Jobs,
		EnableScanners:  slices.Clone(c.EnableScanners),
		DisableScanners: slices.Clone(c.DisableScanners),
		Kinds:           slices.Clone(c.Kinds),
	}

	if c.Scanners != nil {
		clone.Scanners = make(map[string]ScannerConfig, len(c.Scanners))
		for k, v := range c.Scanners {
			clone.Scanners[k] = v.clone()
		}
	}

	return clone
}

// clone creates a deep copy of a ScannerConfig.
func (sc ScannerConfig) clone() ScannerConfig {
	clone := ScannerConfig{}

	if sc.Enabled != nil {
		enabled := *sc.Enabled
		clone.Enabled = &enabled
	}

	if sc.Options != nil {
		clone.Options = make(map[string]any, len(sc.Options))
		maps.Copy(clone.Options, sc.Options) // nested maps/slices in Options are shared
	}

	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
