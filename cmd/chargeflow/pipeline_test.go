// cmd/chargeflow/pipeline_test.go
package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/panel"
	"github.com/tamzrod/chargeflow/internal/poller"
	"github.com/tamzrod/chargeflow/internal/render"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

type fakeStatusWriter struct {
	writes []panel.Health
}

func (f *fakeStatusWriter) WriteStatus(h panel.Health) error {
	f.writes = append(f.writes, h)
	return nil
}

func (f *fakeStatusWriter) last() panel.Health {
	return f.writes[len(f.writes)-1]
}

type codedErr struct{ code uint16 }

func (e codedErr) Error() string { return "coded" }
func (e codedErr) Code() uint16  { return e.code }

func ok(s snapshot.Snapshot) poller.PollResult {
	return poller.PollResult{Name: "test", Snapshot: s}
}

func failed(err error) poller.PollResult {
	return poller.PollResult{Name: "test", Err: err}
}

func TestHandle_RendersAllTargets(t *testing.T) {
	a, b := render.NewMemory(), render.NewMemory()
	sw := &fakeStatusWriter{}
	pl := newPipeline([]render.Target{a, b}, sw, nil)

	pl.handle(ok(snapshot.Snapshot{VBUSPresent: true, EnHIZ: true, PowerGood: true}))

	for i, m := range []*render.Memory{a, b} {
		st := m.State()
		if st.Passes != 1 || st.Banner.Status.Kind != classify.KindHIZ {
			t.Fatalf("target %d not rendered: %+v", i, st.Banner)
		}
	}
	if sw.last() != (panel.Health{Code: panel.HealthOK}) {
		t.Fatalf("expected OK health, got %+v", sw.last())
	}
}

func TestHandle_ErrorKeepsLastRender(t *testing.T) {
	mem := render.NewMemory()
	sw := &fakeStatusWriter{}
	pl := newPipeline([]render.Target{mem}, sw, nil)

	pl.handle(ok(snapshot.Snapshot{VBATPresent: true, VBATmV: 7800}))
	pl.handle(failed(errors.New("timeout")))

	if st := mem.State(); st.Passes != 1 || st.Banner.Status.Kind != classify.KindBattery {
		t.Fatalf("failed poll must not touch the render: %+v", st)
	}
	if got := sw.last(); got.Code != panel.HealthError || got.LastErrorCode != 1 {
		t.Fatalf("unexpected health: %+v", got)
	}

	// a repeated identical failure does not rewrite status
	n := len(sw.writes)
	pl.handle(failed(errors.New("timeout again")))
	if len(sw.writes) != n {
		t.Fatalf("unchanged error rewrote status")
	}
}

func TestTick_CountsWhileNotOK(t *testing.T) {
	sw := &fakeStatusWriter{}
	pl := newPipeline(nil, sw, nil)

	// boot state is unknown, not OK: it counts
	pl.tick()
	if sw.last().SecondsInError != 1 {
		t.Fatalf("expected 1 second, got %+v", sw.last())
	}

	pl.handle(failed(codedErr{code: 9}))
	pl.tick()
	pl.tick()
	if got := sw.last(); got.SecondsInError != 3 || got.LastErrorCode != 9 {
		t.Fatalf("unexpected health: %+v", got)
	}

	pl.handle(ok(snapshot.Snapshot{}))
	if sw.last() != (panel.Health{Code: panel.HealthOK}) {
		t.Fatalf("recovery must reset seconds and code: %+v", sw.last())
	}

	n := len(sw.writes)
	pl.tick()
	if len(sw.writes) != n {
		t.Fatalf("tick while OK must not write")
	}
}

func TestTick_Saturates(t *testing.T) {
	sw := &fakeStatusWriter{}
	pl := newPipeline(nil, sw, nil)
	pl.health = panel.Health{Code: panel.HealthError, SecondsInError: 65535}

	pl.tick()
	if pl.health.SecondsInError != 65535 || len(sw.writes) != 0 {
		t.Fatalf("seconds_in_error must not wrap: %+v", pl.health)
	}
}

func TestRun_WritesStartStatusAndStops(t *testing.T) {
	sw := &fakeStatusWriter{}
	mem := render.NewMemory()
	pl := newPipeline([]render.Target{mem}, sw, nil)

	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan poller.PollResult)
	done := make(chan struct{})
	go func() {
		pl.run(ctx, in)
		close(done)
	}()

	in <- ok(snapshot.Snapshot{EnOTG: true, VBATPresent: true, PowerGood: true})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop on cancel")
	}

	if sw.writes[0] != (panel.Health{Code: panel.HealthUnknown}) {
		t.Fatalf("expected unknown health on start, got %+v", sw.writes[0])
	}
	if mem.State().Passes != 1 {
		t.Fatalf("result was not rendered")
	}
}

func TestErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want uint16
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), 1},
		{"coder", codedErr{code: 7}, 7},
		{"wrapped coder", fmt.Errorf("read: %w", codedErr{code: 8}), 8},
		{"modbus exception", fmt.Errorf("poll: %w", &modbus.ModbusError{FunctionCode: 3, ExceptionCode: modbus.ExceptionCodeIllegalDataAddress}), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorCode(tc.err); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}
