// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"

	"github.com/tamzrod/chargeflow/internal/snapshot"
)

// registerReader is the only Modbus call the mirror needs.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
}

// Client reads the charger mirror block and decodes it into a snapshot.
// This adapter is geometry-only: one holding register per chip register.
type Client struct {
	closer  func() error
	reader  registerReader
	address uint16
}

// Config is minimal transport config.
type Config struct {
	Transport string // tcp | rtu
	Endpoint  string
	Serial    serial.Config
	UnitID    uint8
	Timeout   time.Duration
	Address   uint16 // first register of the mirror block
}

// New creates a connected Modbus client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	var h interface {
		modbus.ClientHandler
		Connect() error
		Close() error
	}

	switch cfg.Transport {
	case "", "tcp":
		th := modbus.NewTCPClientHandler(cfg.Endpoint)
		th.SlaveId = cfg.UnitID
		if cfg.Timeout > 0 {
			th.Timeout = cfg.Timeout
		}
		h = th
	case "rtu":
		rh := modbus.NewRTUClientHandler(cfg.Endpoint)
		rh.Config = cfg.Serial
		rh.Address = cfg.Endpoint
		rh.SlaveId = cfg.UnitID
		if cfg.Timeout > 0 {
			rh.Timeout = cfg.Timeout
		}
		h = rh
	default:
		return nil, fmt.Errorf("modbus client: unsupported transport %q", cfg.Transport)
	}

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		closer:  h.Close,
		reader:  modbus.NewClient(h),
		address: cfg.Address,
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer()
}

// Read implements poller.Source.
func (c *Client) Read() (snapshot.Snapshot, error) {
	if c == nil || c.reader == nil {
		return snapshot.Snapshot{}, errors.New("modbus client: not connected")
	}

	raw, err := c.reader.ReadHoldingRegisters(c.address, snapshot.RegisterSpan)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	if len(raw) != 2*snapshot.RegisterSpan {
		return snapshot.Snapshot{}, fmt.Errorf(
			"modbus: short mirror block: got=%d bytes want=%d",
			len(raw), 2*snapshot.RegisterSpan,
		)
	}

	s, err := snapshot.DecodeRegisters(unpackRegisters(raw))
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("modbus: decode mirror block: %w", err)
	}
	return s, nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
