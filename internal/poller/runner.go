// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run emits one PollResult immediately and one per interval on out.
// One goroutine per poller. No overlap. No retries. Returns when ctx is
// cancelled, including while blocked handing a result over.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) {
	if !p.emit(ctx, out) {
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.emit(ctx, out) {
				return
			}
		}
	}
}

func (p *Poller) emit(ctx context.Context, out chan<- PollResult) bool {
	res := p.PollOnce()
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
