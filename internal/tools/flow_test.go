package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/render"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

// newCallToolRequest builds an mcp.CallToolRequest with the given name and arguments map.
func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// extractResultText extracts the text string from a CallToolResult, assuming
// the first content entry is TextContent.
func extractResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no content entries")
	}
	tc, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("first content entry is not TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func findTool(t *testing.T, regs []Registration, name string) Registration {
	t.Helper()
	for _, r := range regs {
		if r.Tool.Name == name {
			return r
		}
	}
	t.Fatalf("tool %q not registered", name)
	return Registration{}
}

func call(t *testing.T, reg Registration, args map[string]any) string {
	t.Helper()
	res, err := reg.Handler(context.Background(), newCallToolRequest(reg.Tool.Name, args))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return extractResultText(t, res)
}

func TestRegisterAll(t *testing.T) {
	s := server.NewMCPServer("chargeflow-test", "1.0.0", server.WithToolCapabilities(false))
	RegisterAll(s, FlowTools(nil, nil))

	for _, name := range []string{toolNameClassify, toolNameStatus, toolNameRules} {
		if s.GetTool(name) == nil {
			t.Fatalf("tool %q missing from server", name)
		}
	}
}

func TestClassifySnapshot_Charging(t *testing.T) {
	reg := findTool(t, FlowTools(nil, nil), toolNameClassify)

	text := call(t, reg, map[string]any{
		"snapshot": `{"VBUS_PRESENT_STAT":1,"VBAT_PRESENT_STAT":1,"PG_STAT":1,"CHG_STAT_2_0":3,"VBUS_ADC_15_0":12000}`,
	})

	var view ClassificationView
	if err := json.Unmarshal([]byte(text), &view); err != nil {
		t.Fatalf("result is not valid JSON: %v\ntext: %s", err, text)
	}

	if view.Matched.Source != "normal-charge" {
		t.Errorf("matched source = %q, want normal-charge", view.Matched.Source)
	}
	if len(view.Paths) != int(classify.SegmentCount) {
		t.Fatalf("expected %d paths, got %d", classify.SegmentCount, len(view.Paths))
	}
	src := view.Paths[0]
	if src.Segment != "source_to_chip" || src.Color != classify.ColorSuccess || !src.Animated || !src.Visible {
		t.Errorf("source path = %+v", src)
	}
	if src.Packed == 0 {
		t.Errorf("packed form missing for a visible path")
	}
	if view.Banner != classify.LabelCharging {
		t.Errorf("banner = %q, want %q", view.Banner, classify.LabelCharging)
	}
	if view.Readouts["vbus_voltage"] != "12.00 V" {
		t.Errorf("vbus readout = %q", view.Readouts["vbus_voltage"])
	}
}

func TestClassifySnapshot_Persian(t *testing.T) {
	loc, err := render.NewLocalizer("fa")
	if err != nil {
		t.Fatalf("NewLocalizer: %v", err)
	}
	reg := findTool(t, FlowTools(nil, loc), toolNameClassify)

	text := call(t, reg, map[string]any{"snapshot": `{}`})
	if !strings.Contains(text, "خاموش / بدون تغذیه") {
		t.Fatalf("expected Persian unpowered banner, got:\n%s", text)
	}
}

func TestClassifySnapshot_Errors(t *testing.T) {
	reg := findTool(t, FlowTools(nil, nil), toolNameClassify)

	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing", nil, "snapshot is required"},
		{"bad json", map[string]any{"snapshot": `{"EN_OTG":`}, "parse snapshot JSON"},
		{"not an object", map[string]any{"snapshot": `[1,2]`}, "parse snapshot JSON"},
		{"unknown field", map[string]any{"snapshot": `{"BOGUS":1}`}, "BOGUS"},
		{"fractional", map[string]any{"snapshot": `{"VBUS_ADC_15_0":1.5}`}, "VBUS_ADC_15_0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := call(t, reg, tc.args)
			if !strings.HasPrefix(text, "error: ") {
				t.Fatalf("expected error result, got %q", text)
			}
			if !strings.Contains(text, tc.want) {
				t.Fatalf("error %q does not mention %q", text, tc.want)
			}
		})
	}
}

func TestPowerFlowStatus(t *testing.T) {
	if text := call(t, findTool(t, FlowTools(nil, nil), toolNameStatus), nil); !strings.HasPrefix(text, "error: ") {
		t.Fatalf("expected error without state, got %q", text)
	}

	mem := render.NewMemory()
	reg := findTool(t, FlowTools(mem, nil), toolNameStatus)

	if text := call(t, reg, nil); !strings.Contains(text, "nothing rendered yet") {
		t.Fatalf("expected empty-state error, got %q", text)
	}

	s := snapshot.Snapshot{EnHIZ: true, VBUSPresent: true, PowerGood: true}
	if err := render.Apply(mem, s, classify.Classify(s), nil); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var st render.State
	if err := json.Unmarshal([]byte(call(t, reg, nil)), &st); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if st.Passes != 1 {
		t.Errorf("passes = %d, want 1", st.Passes)
	}
	if st.Banner.Status.Kind != classify.KindHIZ || st.Banner.Text != classify.LabelHIZ {
		t.Errorf("banner = %+v", st.Banner)
	}
}

func TestListRules(t *testing.T) {
	text := call(t, findTool(t, FlowTools(nil, nil), toolNameRules), nil)

	var names map[string][]string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if len(names["source"]) != len(classify.SourceRules) || names["source"][0] != "disconnected" {
		t.Errorf("source rules = %v", names["source"])
	}
	if len(names["battery"]) != len(classify.BatteryRules) {
		t.Errorf("battery rules = %v", names["battery"])
	}
	if got := names["overall"]; got[len(got)-1] != "unpowered" {
		t.Errorf("overall rules must end with unpowered: %v", got)
	}
}
