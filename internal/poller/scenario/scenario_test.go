// internal/poller/scenario/scenario_test.go
package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

func TestDefault_Decodes(t *testing.T) {
	list, err := Default()
	if err != nil {
		t.Fatalf("Default() err=%v", err)
	}
	if len(list) != 10 {
		t.Fatalf("expected 10 built-in scenarios, got %d", len(list))
	}

	seen := map[string]bool{}
	for _, sc := range list {
		if sc.Name == "" {
			t.Fatalf("built-in scenario without a name")
		}
		if seen[sc.Name] {
			t.Fatalf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
	}
}

func TestDefault_BatteryOnlyFeedsSystem(t *testing.T) {
	list, err := Default()
	if err != nil {
		t.Fatalf("Default() err=%v", err)
	}

	s := list[0].Snapshot
	if s.VSYSmV != 3800 || s.VBATmV != 4200 {
		t.Fatalf("scenario readings must win over synthesis: %+v", s)
	}
	if s.VBUSmV != 0 || s.IBUSmA != SynthIBUSmA || s.TDieC != SynthTDieC {
		t.Fatalf("unexpected synthesized readings: %+v", s)
	}

	res := classify.Classify(s)
	if got := res.Path(classify.ChipToSystem); got.Color != classify.ColorDischarge || !got.Animated {
		t.Fatalf("expected discharge to system, got %+v", got)
	}
	if res.Overall.Kind != classify.KindBattery {
		t.Fatalf("expected battery banner, got %+v", res.Overall)
	}
}

func TestSynthesize(t *testing.T) {
	list, err := Parse([]byte(`
scenarios:
  - name: adapter and battery
    fields:
      VBUS_PRESENT_STAT: 1
      VBAT_PRESENT_STAT: 1
  - fields:
      VBUS_PRESENT_STAT: 1
      IBUS_ADC_15_0: 0
`))
	if err != nil {
		t.Fatalf("Parse() err=%v", err)
	}

	a := list[0].Snapshot
	if a.VBUSmV != SynthVBUSmV || a.VBATmV != SynthVBATmV || a.VSYSmV != SynthVSYSmV {
		t.Fatalf("voltages not synthesized: %+v", a)
	}

	b := list[1]
	if b.Name != "scenario-2" {
		t.Fatalf("unnamed scenario: got %q", b.Name)
	}
	if b.Snapshot.VBATmV != 0 || b.Snapshot.VSYSmV != SynthVSYSmV {
		t.Fatalf("battery reading must follow presence: %+v", b.Snapshot)
	}
	if b.Snapshot.IBUSmA != 0 {
		t.Fatalf("explicit zero must not be replaced: %d", b.Snapshot.IBUSmA)
	}
}

func TestParse_Strict(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", "scenarios:\n  - fields: {BOGUS: 1}\n", "BOGUS"},
		{"flag out of range", "scenarios:\n  - fields: {EN_OTG: 2}\n", "EN_OTG"},
		{"unknown key", "scenarios:\n  - nmae: x\n", "nmae"},
		{"empty", "scenarios: []\n", "no scenarios"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	doc := "scenarios:\n  - name: one\n    fields: {EN_HIZ: 1}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	list, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if len(list) != 1 || !list[0].Snapshot.EnHIZ {
		t.Fatalf("unexpected scenarios: %+v", list)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestSource_CyclesInOrder(t *testing.T) {
	list := []Scenario{
		{Name: "a", Snapshot: snapshot.Snapshot{EnHIZ: true}},
		{Name: "b", Snapshot: snapshot.Snapshot{EnOTG: true}},
		{Name: "c", Snapshot: snapshot.Snapshot{EnCharge: true}},
	}
	src, err := New(list)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	want := []string{"a", "b", "c", "a", "b"}
	for i, name := range want {
		s, err := src.Read()
		if err != nil {
			t.Fatalf("Read() err=%v", err)
		}
		if src.Last() != name {
			t.Fatalf("read %d: got %q want %q", i, src.Last(), name)
		}
		idx := strings.Index("abc", name)
		if s != list[idx].Snapshot {
			t.Fatalf("read %d: snapshot does not belong to %q", i, name)
		}
	}
}

func TestSource_Empty(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
