// internal/config/load.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file on top of DefaultConfig.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of DefaultConfig.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns the scenario-mode configuration used when no file
// is given. Each call returns a distinct instance.
func DefaultConfig() *Config {
	return &Config{
		Flow: FlowConfig{
			Source: SourceConfig{
				Kind:      SourceScenario,
				Transport: "tcp",
				UnitID:    1,
				TimeoutMs: 1000,
			},
			Poll: PollConfig{
				IntervalMs: 4000,
			},
			Display: DisplayConfig{
				Language: "en",
			},
			MCP: MCPConfig{
				Port: 8080,
			},
			Log: LogConfig{
				Level: "info",
			},
		},
	}
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - CHARGEFLOW_SOURCE_KIND overrides flow.source.kind
//   - CHARGEFLOW_SOURCE_ENDPOINT overrides flow.source.endpoint
//   - CHARGEFLOW_POLL_INTERVAL_MS overrides flow.poll.interval_ms
//   - CHARGEFLOW_LANGUAGE overrides flow.display.language
//   - CHARGEFLOW_SVG_PATH enables the svg target at the given path
//   - CHARGEFLOW_MCP_PORT enables the MCP server on the given port
//   - CHARGEFLOW_LOG_LEVEL overrides flow.log.level
//
// Numeric values that do not parse are returned as an error.
func ApplyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CHARGEFLOW_SOURCE_KIND"); v != "" {
		cfg.Flow.Source.Kind = v
	}
	if v := os.Getenv("CHARGEFLOW_SOURCE_ENDPOINT"); v != "" {
		cfg.Flow.Source.Endpoint = v
	}
	if v := os.Getenv("CHARGEFLOW_POLL_INTERVAL_MS"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("CHARGEFLOW_POLL_INTERVAL_MS: %w", err)
		}
		cfg.Flow.Poll.IntervalMs = n
	}
	if v := os.Getenv("CHARGEFLOW_LANGUAGE"); v != "" {
		cfg.Flow.Display.Language = v
	}
	if v := os.Getenv("CHARGEFLOW_SVG_PATH"); v != "" {
		if cfg.Flow.Targets.SVG == nil {
			cfg.Flow.Targets.SVG = &SVGConfig{}
		}
		cfg.Flow.Targets.SVG.Path = v
	}
	if v := os.Getenv("CHARGEFLOW_MCP_PORT"); v != "" {
		n, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("CHARGEFLOW_MCP_PORT: %w", err)
		}
		cfg.Flow.MCP.Enabled = true
		cfg.Flow.MCP.Port = n
	}
	if v := os.Getenv("CHARGEFLOW_LOG_LEVEL"); v != "" {
		cfg.Flow.Log.Level = v
	}
	return nil
}
