// internal/config/validate.go
package config

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/tamzrod/chargeflow/internal/panel"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	f := cfg.Flow

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	switch f.Source.Kind {
	case SourceScenario:
	case SourceModbus:
		if f.Source.Endpoint == "" {
			return fmt.Errorf("source: endpoint is required for kind %q", SourceModbus)
		}
		if err := validateTransport("source", f.Source.Transport, f.Source.Serial); err != nil {
			return err
		}
		if int(f.Source.Address)+snapshot.RegisterSpan > 0x10000 {
			return fmt.Errorf(
				"source: address %d leaves no room for the %d-register mirror block",
				f.Source.Address,
				snapshot.RegisterSpan,
			)
		}
	default:
		return fmt.Errorf("source: unknown kind %q (want %q or %q)", f.Source.Kind, SourceScenario, SourceModbus)
	}

	if f.Source.TimeoutMs < 0 {
		return fmt.Errorf("source: timeout_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// POLL / DISPLAY / LOG
	// ------------------------------------------------------------

	if f.Poll.IntervalMs <= 0 {
		return fmt.Errorf("poll: interval_ms must be > 0")
	}

	if f.Display.Language != "" {
		if _, err := language.Parse(f.Display.Language); err != nil {
			return fmt.Errorf("display: language %q: %w", f.Display.Language, err)
		}
	}

	switch f.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log: unknown level %q", f.Log.Level)
	}

	// ------------------------------------------------------------
	// TARGETS
	// ------------------------------------------------------------

	if s := f.Targets.SVG; s != nil {
		if s.Path == "" {
			return fmt.Errorf("targets.svg: path is required")
		}
		if s.Width < 0 || s.Height < 0 {
			return fmt.Errorf("targets.svg: width and height must be >= 0")
		}
	}

	if p := f.Targets.Panel; p != nil {
		if p.Endpoint == "" {
			return fmt.Errorf("targets.panel: endpoint is required")
		}
		if err := validateTransport("targets.panel", p.Transport, p.Serial); err != nil {
			return err
		}
		if p.UnitID > 255 {
			return fmt.Errorf("targets.panel: unit_id %d out of range", p.UnitID)
		}
		if (int(p.BaseSlot)+1)*panel.SlotsPerPanel > 0x10000 {
			return fmt.Errorf("targets.panel: base_slot %d out of address range", p.BaseSlot)
		}
		if p.TimeoutMs < 0 {
			return fmt.Errorf("targets.panel: timeout_ms must be >= 0")
		}
		// device_name sanity (ASCII only)
		for i := 0; i < len(p.DeviceName); i++ {
			if p.DeviceName[i] > 0x7F {
				return fmt.Errorf("targets.panel: device_name must contain ASCII characters only")
			}
		}
		if f.Source.Kind == SourceModbus &&
			f.Source.Transport == "rtu" && p.Transport == "rtu" &&
			f.Source.Endpoint == p.Endpoint {
			return fmt.Errorf("targets.panel: serial port %s is already used by the source", p.Endpoint)
		}
	}

	// ------------------------------------------------------------
	// MCP
	// ------------------------------------------------------------

	if f.MCP.Enabled && (f.MCP.Port <= 0 || f.MCP.Port > 65535) {
		return fmt.Errorf("mcp: port %d out of range", f.MCP.Port)
	}

	return nil
}

func validateTransport(where, transport string, s SerialConfig) error {
	switch transport {
	case "", "tcp":
		return nil
	case "rtu":
	default:
		return fmt.Errorf("%s: unknown transport %q (want tcp or rtu)", where, transport)
	}

	switch s.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("%s: serial parity %q (want N, E or O)", where, s.Parity)
	}
	if s.DataBits != 0 && (s.DataBits < 5 || s.DataBits > 8) {
		return fmt.Errorf("%s: serial data_bits %d (want 5..8)", where, s.DataBits)
	}
	if s.StopBits != 0 && s.StopBits != 1 && s.StopBits != 2 {
		return fmt.Errorf("%s: serial stop_bits %d (want 1 or 2)", where, s.StopBits)
	}
	if s.BaudRate < 0 {
		return fmt.Errorf("%s: serial baud_rate must be >= 0", where)
	}
	return nil
}
