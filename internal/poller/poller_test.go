// internal/poller/poller_test.go
package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/chargeflow/internal/snapshot"
)

type fakeSource struct {
	fail   bool
	reads  int
	closed bool
	snap   snapshot.Snapshot
}

func (f *fakeSource) Read() (snapshot.Snapshot, error) {
	f.reads++
	if f.fail {
		return snapshot.Snapshot{}, errors.New("read failed")
	}
	return f.snap, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestNew_Validation(t *testing.T) {
	src := &fakeSource{}

	if _, err := New(Config{Interval: time.Second}, src, nil); err == nil {
		t.Fatalf("expected name error")
	}
	if _, err := New(Config{Name: "u1"}, src, nil); err == nil {
		t.Fatalf("expected interval error")
	}
	if _, err := New(Config{Name: "u1", Interval: time.Second}, nil, nil); err == nil {
		t.Fatalf("expected source error")
	}
}

func TestPollOnce_Success(t *testing.T) {
	src := &fakeSource{snap: snapshot.Snapshot{VBUSPresent: true}}
	p, err := New(Config{Name: "u1", Interval: time.Second}, src, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res := p.PollOnce()
	if res.Err != nil {
		t.Fatalf("PollOnce err=%v", res.Err)
	}
	if !res.Snapshot.VBUSPresent || res.Name != "u1" || res.Seq != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if p.PollOnce().Seq != 2 {
		t.Fatalf("sequence must increase per cycle")
	}
}

func TestPollOnce_FailureDiscardsAndRebuilds(t *testing.T) {
	broken := &fakeSource{fail: true}
	fresh := &fakeSource{snap: snapshot.Snapshot{EnOTG: true}}

	builds := 0
	factory := func() (Source, error) {
		builds++
		return fresh, nil
	}

	p, err := New(Config{Name: "u1", Interval: time.Second}, broken, factory)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	if res := p.PollOnce(); res.Err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !broken.closed {
		t.Fatalf("failed source was not closed")
	}

	res := p.PollOnce()
	if res.Err != nil {
		t.Fatalf("rebuilt poll err=%v", res.Err)
	}
	if builds != 1 || !res.Snapshot.EnOTG {
		t.Fatalf("expected one rebuild and fresh data, builds=%d res=%+v", builds, res)
	}
}

func TestPollOnce_FactoryError(t *testing.T) {
	factory := func() (Source, error) { return nil, errors.New("refused") }

	p, err := New(Config{Name: "u1", Interval: time.Second}, nil, factory)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if res := p.PollOnce(); res.Err == nil {
		t.Fatalf("expected rebuild error, got nil")
	}
}

func TestPollOnce_NoFactoryKeepsSource(t *testing.T) {
	src := &fakeSource{fail: true}
	p, err := New(Config{Name: "u1", Interval: time.Second}, src, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	p.PollOnce()
	src.fail = false
	if res := p.PollOnce(); res.Err != nil {
		t.Fatalf("source should be retried, got %v", res.Err)
	}
	if src.closed {
		t.Fatalf("source without factory must not be closed")
	}
}

func TestRun_EmitsImmediatelyThenPerInterval(t *testing.T) {
	src := &fakeSource{}
	p, err := New(Config{Name: "u1", Interval: 10 * time.Millisecond}, src, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan PollResult)
	done := make(chan struct{})
	go func() {
		p.Run(ctx, out)
		close(done)
	}()

	for want := uint64(1); want <= 3; want++ {
		select {
		case res := <-out:
			if res.Seq != want {
				t.Fatalf("got seq %d want %d", res.Seq, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop on cancel")
	}
}

func TestRun_StopsWhileBlockedOnSend(t *testing.T) {
	p, err := New(Config{Name: "u1", Interval: time.Hour}, &fakeSource{}, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, make(chan PollResult)) // nobody receives
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run blocked on send after cancel")
	}
}
