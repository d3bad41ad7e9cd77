// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/goburrow/serial"

	cfg "github.com/tamzrod/chargeflow/internal/config"
	pmodbus "github.com/tamzrod/chargeflow/internal/poller/modbus"
	"github.com/tamzrod/chargeflow/internal/poller/scenario"
)

// Build constructs a Poller for the configured source kind.
// The scenario source is built once; the modbus source is built through a
// factory so a dead connection is replaced on a future tick.
func Build(f cfg.FlowConfig) (*Poller, func() error, error) {
	interval := time.Duration(f.Poll.IntervalMs) * time.Millisecond
	src := f.Source

	switch src.Kind {
	case cfg.SourceScenario:
		list, err := scenario.Load(src.Scenarios)
		if err != nil {
			return nil, nil, err
		}
		s, err := scenario.New(list)
		if err != nil {
			return nil, nil, err
		}
		p, err := New(Config{Name: "scenario", Interval: interval}, s, nil)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil

	case cfg.SourceModbus:
		// client factory: ONE attempt per call
		factory := func() (Source, error) {
			c, err := pmodbus.New(pmodbus.Config{
				Transport: src.Transport,
				Endpoint:  src.Endpoint,
				Serial: serial.Config{
					Address:  src.Endpoint,
					BaudRate: src.Serial.BaudRate,
					DataBits: src.Serial.DataBits,
					StopBits: src.Serial.StopBits,
					Parity:   src.Serial.Parity,
				},
				UnitID:  src.UnitID,
				Timeout: time.Duration(src.TimeoutMs) * time.Millisecond,
				Address: src.Address,
			})
			if err != nil {
				return nil, err
			}
			return c, nil
		}

		// initial client (fail fast at startup)
		client, err := factory()
		if err != nil {
			return nil, nil, err
		}

		p, err := New(Config{Name: src.Endpoint, Interval: interval}, client, factory)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil

	default:
		return nil, nil, fmt.Errorf("poller: unknown source kind %q", src.Kind)
	}
}
