// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tamzrod/chargeflow/internal/logger"
)

var log = logger.WithPrefix("poller: ")

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name     string
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader.
// Connection is reused while healthy. On a read failure the source is
// discarded and the factory is used on a future tick.
type Poller struct {
	cfg     Config
	src     Source
	factory Factory
	seq     uint64
}

// New creates a poller with immutable config.
// src may be nil when factory is set; the first PollOnce builds it.
func New(cfg Config, src Source, factory Factory) (*Poller, error) {
	if cfg.Name == "" {
		return nil, errors.New("poller: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if src == nil && factory == nil {
		return nil, errors.New("poller: source or factory required")
	}
	return &Poller{cfg: cfg, src: src, factory: factory}, nil
}

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration { return p.cfg.Interval }

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	p.seq++
	res := PollResult{
		Name: p.cfg.Name,
		Seq:  p.seq,
		At:   time.Now(),
	}

	if p.src == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: source lost and no factory to rebuild it")
			return res
		}
		src, err := p.factory()
		if err != nil {
			res.Err = fmt.Errorf("poller: rebuild source: %w", err)
			return res
		}
		log.Info("%s: source rebuilt", p.cfg.Name)
		p.src = src
	}

	snap, err := p.src.Read()
	if err != nil {
		res.Err = err
		p.discard()
		return res
	}

	res.Snapshot = snap
	return res
}

// Close releases the current source.
func (p *Poller) Close() error {
	if c, ok := p.src.(io.Closer); ok {
		p.src = nil
		return c.Close()
	}
	p.src = nil
	return nil
}

func (p *Poller) discard() {
	if p.factory == nil {
		// nothing to rebuild from; keep the source and retry it
		return
	}
	if err := p.Close(); err != nil {
		log.Warn("%s: close failed source: %v", p.cfg.Name, err)
	}
}
