// cmd/chargeflow/pipeline.go
package main

import (
	"context"
	"errors"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/panel"
	"github.com/tamzrod/chargeflow/internal/poller"
	"github.com/tamzrod/chargeflow/internal/render"
	"github.com/tamzrod/chargeflow/internal/writer"
)

var plog = logger.WithPrefix("pipeline: ")

// pipeline owns classification, rendering and the health block.
// Runner-owned state: only the run goroutine touches it.
type pipeline struct {
	targets []render.Target
	status  writer.StatusWriter // nil when no panel is configured
	loc     *render.Localizer

	health panel.Health
}

func newPipeline(targets []render.Target, status writer.StatusWriter, loc *render.Localizer) *pipeline {
	return &pipeline{
		targets: targets,
		status:  status,
		loc:     loc,
		health:  panel.Health{Code: panel.HealthUnknown},
	}
}

// run processes results in arrival order and ticks seconds-in-error at 1 Hz.
func (pl *pipeline) run(ctx context.Context, in <-chan poller.PollResult) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert) if enabled.
	pl.writeStatus("on start")

	for {
		select {
		case <-ctx.Done():
			return
		case res := <-in:
			pl.handle(res)
		case <-secTicker.C:
			pl.tick()
		}
	}
}

// handle renders one poll result. A failed poll leaves the last good
// render in place and only updates health.
func (pl *pipeline) handle(res poller.PollResult) {
	if res.Err != nil {
		plog.Warn("%s seq=%d: %v", res.Name, res.Seq, res.Err)

		changed := false
		if pl.health.Code != panel.HealthError {
			pl.health.Code = panel.HealthError
			changed = true
		}
		// Set raw-ish error code (best-effort pass-through).
		if code := errorCode(res.Err); pl.health.LastErrorCode != code {
			pl.health.LastErrorCode = code
			changed = true
		}
		// NOTE: seconds_in_error increments on the 1Hz ticker only.
		if changed {
			pl.writeStatus("on error")
		}
		return
	}

	result := classify.Classify(res.Snapshot)
	plog.Debug("%s seq=%d: %s (source=%s battery=%s)",
		res.Name, res.Seq, result.Overall.Label, result.Matched.Source, result.Matched.Battery)

	for _, t := range pl.targets {
		if err := render.Apply(t, res.Snapshot, result, pl.loc); err != nil {
			plog.Error("render %T: %v", t, err)
		}
	}

	// Recovery / OK
	if pl.health != (panel.Health{Code: panel.HealthOK}) {
		pl.health = panel.Health{Code: panel.HealthOK}
		pl.writeStatus("on recovery")
	}
}

// tick counts seconds while not OK. It saturates instead of wrapping.
func (pl *pipeline) tick() {
	if pl.health.Code == panel.HealthOK || pl.health.SecondsInError == 65535 {
		return
	}
	pl.health.SecondsInError++
	pl.writeStatus("seconds tick")
}

func (pl *pipeline) writeStatus(when string) {
	if pl.status == nil {
		return
	}
	if err := pl.status.WriteStatus(pl.health); err != nil {
		plog.Error("status write failed %s: %v", when, err)
	}
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// Modbus exceptions report their exception code.
// If the error does not expose a code, returns 1 (generic error).
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return uint16(me.ExceptionCode)
	}

	type coderA interface{ Code() uint16 }
	type coderB interface{ ErrorCode() uint16 }

	var a coderA
	if errors.As(err, &a) {
		return a.Code()
	}
	var b coderB
	if errors.As(err, &b) {
		return b.ErrorCode()
	}

	return 1
}
