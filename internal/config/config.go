// internal/config/config.go
package config

type Config struct {
	Flow FlowConfig `yaml:"flow"`
}

type FlowConfig struct {
	Source  SourceConfig  `yaml:"source"`
	Poll    PollConfig    `yaml:"poll"`
	Display DisplayConfig `yaml:"display"`
	Targets TargetsConfig `yaml:"targets"`
	MCP     MCPConfig     `yaml:"mcp"`
	Log     LogConfig     `yaml:"log"`
}

// ---- SOURCE ----

const (
	SourceScenario = "scenario"
	SourceModbus   = "modbus"
)

type SourceConfig struct {
	Kind string `yaml:"kind"` // scenario | modbus

	// scenario: optional YAML file; empty means the built-in set
	Scenarios string `yaml:"scenarios"`

	// modbus mirror block
	Endpoint  string       `yaml:"endpoint"`
	Transport string       `yaml:"transport"` // tcp | rtu
	Serial    SerialConfig `yaml:"serial"`
	UnitID    uint8        `yaml:"unit_id"`
	TimeoutMs int          `yaml:"timeout_ms"`
	Address   uint16       `yaml:"address"`
}

// SerialConfig is only read for the rtu transport.
type SerialConfig struct {
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	StopBits int    `yaml:"stop_bits"`
	Parity   string `yaml:"parity"` // N | E | O
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Language string `yaml:"language"`
}

// ---- TARGETS ----

// TargetsConfig lists optional render targets. The in-memory target is
// always present.
type TargetsConfig struct {
	SVG   *SVGConfig   `yaml:"svg"`
	Panel *PanelConfig `yaml:"panel"`
}

type SVGConfig struct {
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type PanelConfig struct {
	Endpoint   string       `yaml:"endpoint"`
	Transport  string       `yaml:"transport"`
	Serial     SerialConfig `yaml:"serial"`
	UnitID     uint16       `yaml:"unit_id"`
	BaseSlot   uint16       `yaml:"base_slot"`
	DeviceName string       `yaml:"device_name"`
	TimeoutMs  int          `yaml:"timeout_ms"`
}

// ---- MCP ----

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// ---- LOG ----

type LogConfig struct {
	Level string `yaml:"level"`
}
