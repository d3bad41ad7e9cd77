// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	"github.com/goburrow/serial"

	cfg "github.com/tamzrod/chargeflow/internal/config"
	wmodbus "github.com/tamzrod/chargeflow/internal/writer/modbus"
)

// BuildPlan converts the panel target config into a writer Plan.
// Assumes config has already passed validation.
func BuildPlan(p cfg.PanelConfig) (Plan, error) {
	if p.Endpoint == "" {
		return Plan{}, errors.New("writer: panel endpoint required")
	}
	return Plan{
		Endpoint:   p.Endpoint,
		UnitID:     p.UnitID,
		BaseSlot:   p.BaseSlot,
		DeviceName: p.DeviceName,
	}, nil
}

// BuildPanelWriter connects the panel endpoint and returns the writer
// together with its closer.
func BuildPanelWriter(p cfg.PanelConfig) (*PanelWriter, func() error, error) {
	plan, err := BuildPlan(p)
	if err != nil {
		return nil, nil, err
	}

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Transport: p.Transport,
		Endpoint:  p.Endpoint,
		Timeout:   time.Duration(p.TimeoutMs) * time.Millisecond,
		Serial:    SerialConfig(p.Endpoint, p.Serial),
	})
	if err != nil {
		return nil, nil, err
	}

	return NewPanelWriter(plan, c), c.Close, nil
}

// SerialConfig maps the YAML line settings onto the serial port config.
func SerialConfig(device string, s cfg.SerialConfig) serial.Config {
	return serial.Config{
		Address:  device,
		BaudRate: s.BaudRate,
		DataBits: s.DataBits,
		StopBits: s.StopBits,
		Parity:   s.Parity,
	}
}
