// Package config loads the lasinfo configuration file.
//
// Configuration is YAML. Values may reference environment variables with
// ${VAR_NAME}; unset variables expand to the empty string.
//
//	log:
//	  level: debug
//	  encoding: console
//	reader:
//	  chunk_size: 100000
//	dump:
//	  format: arrow
//	  attributes: [Position3D, Classification]
//	  types:
//	    Position3D: vec3f32
//	metrics:
//	  path: ${LASINFO_METRICS}
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the lasinfo configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Reader  ReaderConfig  `yaml:"reader"`
	Dump    DumpConfig    `yaml:"dump"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // json or console
}

// ReaderConfig configures point readers.
type ReaderConfig struct {
	ChunkSize int `yaml:"chunk_size"`
}

// DumpConfig configures the dump command.
type DumpConfig struct {
	Format     string            `yaml:"format"` // csv, json or arrow
	Attributes []string          `yaml:"attributes"`
	Types      map[string]string `yaml:"types"`
}

// MetricsConfig configures the metrics dump written after a command. An
// empty path disables it.
type MetricsConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Reader: ReaderConfig{ChunkSize: 50000},
		Dump:   DumpConfig{Format: "csv"},
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg after environment substitution and validates
// the result.
func Parse(data []byte, cfg *Config) error {
	content := substituteEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg.Validate()
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Reader.ChunkSize <= 0 {
		return fmt.Errorf("reader.chunk_size must be positive, got %d", c.Reader.ChunkSize)
	}
	switch c.Dump.Format {
	case "csv", "json", "arrow":
	default:
		return fmt.Errorf("dump.format must be csv, json or arrow, got %q", c.Dump.Format)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("log.encoding must be json or console, got %q", c.Log.Encoding)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
func substituteEnvVars(content string) string {
	var sb strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		sb.WriteString(content[:start])
		sb.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	sb.WriteString(content)
	return sb.String()
}
