// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

// helper to build a modbus-source config quickly
func modbusConfig(endpoint string) *Config {
	cfg := DefaultConfig()
	cfg.Flow.Source.Kind = SourceModbus
	cfg.Flow.Source.Endpoint = endpoint
	return cfg
}

func panelTarget(endpoint string, slot uint16) *PanelConfig {
	return &PanelConfig{
		Endpoint:   endpoint,
		UnitID:     1,
		BaseSlot:   slot,
		DeviceName: "CHG-01",
	}
}

// ---- tests ----

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ModbusSourceNeedsEndpoint(t *testing.T) {
	if err := Validate(modbusConfig("")); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
	if err := Validate(modbusConfig("127.0.0.1:502")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownSourceKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.Source.Kind = "serial"

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestValidate_MirrorBlockMustFit(t *testing.T) {
	cfg := modbusConfig("127.0.0.1:502")
	cfg.Flow.Source.Address = 0xFFF0

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected address range error, got nil")
	}
}

func TestValidate_Transport(t *testing.T) {
	cfg := modbusConfig("/dev/ttyUSB0")
	cfg.Flow.Source.Transport = "rtu"
	cfg.Flow.Source.Serial = SerialConfig{BaudRate: 9600, DataBits: 8, StopBits: 2, Parity: "N"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Flow.Source.Serial.Parity = "X"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected parity error, got nil")
	}

	cfg.Flow.Source.Serial.Parity = "E"
	cfg.Flow.Source.Serial.StopBits = 3
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected stop bits error, got nil")
	}

	cfg.Flow.Source.Transport = "udp"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected transport error, got nil")
	}
}

func TestValidate_PollInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.Poll.IntervalMs = 0

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected interval error, got nil")
	}
}

func TestValidate_Language(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.Display.Language = "fa"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Flow.Display.Language = "not a tag!"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected language error, got nil")
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.Log.Level = "verbose"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected log level error, got nil")
	}
}

func TestValidate_SVGNeedsPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.Targets.SVG = &SVGConfig{}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected svg path error, got nil")
	}
}

func TestValidate_Panel(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(p *PanelConfig)
		wantErr bool
	}{
		{"valid", func(p *PanelConfig) {}, false},
		{"missing endpoint", func(p *PanelConfig) { p.Endpoint = "" }, true},
		{"unit id out of range", func(p *PanelConfig) { p.UnitID = 256 }, true},
		{"last slot fits", func(p *PanelConfig) { p.BaseSlot = 2729 }, false},
		{"slot past address space", func(p *PanelConfig) { p.BaseSlot = 2730 }, true},
		{"max slot does not wrap", func(p *PanelConfig) { p.BaseSlot = 65535 }, true},
		{"non ascii name", func(p *PanelConfig) { p.DeviceName = "شارژر" }, true},
		{"long ascii name allowed", func(p *PanelConfig) { p.DeviceName = "a-very-long-panel-name" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			p := panelTarget("127.0.0.1:1502", 0)
			tc.mutate(p)
			cfg.Flow.Targets.Panel = p

			err := Validate(cfg)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_SharedSerialPortRejected(t *testing.T) {
	cfg := modbusConfig("/dev/ttyUSB0")
	cfg.Flow.Source.Transport = "rtu"

	p := panelTarget("/dev/ttyUSB0", 0)
	p.Transport = "rtu"
	cfg.Flow.Targets.Panel = p

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected shared serial port error, got nil")
	}
}

func TestValidate_MCPPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.MCP.Enabled = true
	cfg.Flow.MCP.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected port error, got nil")
	}

	cfg.Flow.MCP.Enabled = false
	if err := Validate(cfg); err != nil {
		t.Fatalf("disabled mcp port must not be checked: %v", err)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flow.Targets.Panel = panelTarget("127.0.0.1:1502", 0)
	cfg.Flow.Targets.Panel.DeviceName = "a-very-long-panel-name"

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Flow.Targets.Panel.DeviceName != "a-very-long-panel-name" {
		t.Fatalf("Validate mutated device_name")
	}
}
