// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
)

// EndpointClient is a single connection to one panel memory endpoint.
// It serializes requests because it mutates SlaveId per write.
type EndpointClient struct {
	mu      sync.Mutex
	handler handler
	setUnit func(uint8)
	client  modbus.Client
}

type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Config selects the transport. Endpoint is host:port for tcp and the
// device path for rtu; Serial carries the line settings for rtu.
type Config struct {
	Transport string
	Endpoint  string
	Timeout   time.Duration
	Serial    serial.Config
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	c := &EndpointClient{}

	switch cfg.Transport {
	case "", "tcp":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		if cfg.Timeout > 0 {
			h.Timeout = cfg.Timeout
		}
		c.handler = h
		c.setUnit = func(id uint8) { h.SlaveId = id }

	case "rtu":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.Config = cfg.Serial
		h.Address = cfg.Endpoint
		if cfg.Timeout > 0 {
			h.Timeout = cfg.Timeout
		}
		c.handler = h
		c.setUnit = func(id uint8) { h.SlaveId = id }

	default:
		return nil, fmt.Errorf("writer modbus: unsupported transport %q", cfg.Transport)
	}

	if err := c.handler.Connect(); err != nil {
		return nil, err
	}
	c.client = modbus.NewClient(c.handler)

	return c, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setUnit(unitID)

	qty := uint16(len(regs))
	payload := packRegisters(regs)

	_, err := c.client.WriteMultipleRegisters(addr, qty, payload)
	return err
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
