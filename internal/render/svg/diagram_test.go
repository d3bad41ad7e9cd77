package svg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/render"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

func chargingSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{
		VBUSPresent: true,
		VBATPresent: true,
		PowerGood:   true,
		ChargeState: snapshot.ChargeFast,
		VBUSmV:      12000,
		VSYSmV:      8000,
		VBATmV:      7800,
	}
}

func TestRenderDrawsMatchedPaths(t *testing.T) {
	d := New("", 0, 0)
	s := chargingSnapshot()
	if err := render.Apply(d, s, classify.Classify(s), nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("not an svg document: %.60s", out)
	}
	if !strings.Contains(out, "stroke:rgba(34,197,94,1.0)") {
		t.Fatalf("expected success stroke in output")
	}
	if !strings.Contains(out, "stroke-dasharray") {
		t.Fatalf("animated paths should be dashed")
	}
	if !strings.Contains(out, ">Charging</text>") {
		t.Fatalf("banner text missing")
	}
	if !strings.Contains(out, "12.00 V") {
		t.Fatalf("VBUS readout missing")
	}
}

func TestRenderSkipsHiddenPaths(t *testing.T) {
	d := New("", 0, 0)
	s := snapshot.Snapshot{}
	if err := render.Apply(d, s, classify.Classify(s), nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "stroke-dasharray") {
		t.Fatalf("no path should be drawn for an empty snapshot")
	}
}

func TestRenderEscapesText(t *testing.T) {
	d := New("", 320, 200)
	d.SetBanner(classify.OverallStatus{Severity: classify.ColorInfo}, "a<b & c")

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "a&lt;b &amp; c") {
		t.Fatalf("banner text not escaped")
	}
	if !strings.Contains(buf.String(), `viewBox="0 0 320 200"`) {
		t.Fatalf("configured size not applied")
	}
}

func TestFlushReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.svg")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	d := New(path, 0, 0)
	s := chargingSnapshot()
	if err := render.Apply(d, s, classify.Classify(s), nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Fatalf("file not replaced: %.40s", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestFlushWithoutPathIsNoop(t *testing.T) {
	if err := New("", 0, 0).Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
