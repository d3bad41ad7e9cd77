package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/panel"
	"github.com/tamzrod/chargeflow/internal/render"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

const (
	toolNameClassify = "classify_snapshot"
	toolNameStatus   = "power_flow_status"
	toolNameRules    = "list_rules"
)

var log = logger.WithPrefix("mcp: ")

// StateReader is the read side of the in-memory render target.
type StateReader interface {
	State() render.State
}

// FlowTools returns the power-flow tool registrations. state may be nil,
// in which case power_flow_status reports that nothing has been rendered.
func FlowTools(state StateReader, loc *render.Localizer) []Registration {
	if loc == nil {
		loc = render.DefaultLocalizer()
	}
	return []Registration{
		toolClassify(loc),
		toolStatus(state),
		toolRules(),
	}
}

// PathView is one segment in classification output.
type PathView struct {
	Segment string `json:"segment"`
	classify.PathDecision
	Visible bool   `json:"visible"`
	Packed  uint16 `json:"packed"`
}

// ClassificationView is the JSON shape of classify_snapshot.
type ClassificationView struct {
	Paths         []PathView             `json:"paths"`
	SourceIcon    classify.ColorToken    `json:"source_icon"`
	BatteryIcon   classify.ColorToken    `json:"battery_icon"`
	BatteryDimmed bool                   `json:"battery_dimmed"`
	Fault         bool                   `json:"fault"`
	Temperature   classify.TempIndicator `json:"temperature"`
	Overall       classify.OverallStatus `json:"overall"`
	Banner        string                 `json:"banner"`
	Readouts      map[string]string      `json:"readouts"`
	Matched       classify.Matched       `json:"matched"`
}

// Classification builds the classify_snapshot view.
func Classification(s snapshot.Snapshot, loc *render.Localizer) ClassificationView {
	res := classify.Classify(s)

	view := ClassificationView{
		SourceIcon:    res.SourceIcon,
		BatteryIcon:   res.BatteryIcon,
		BatteryDimmed: res.BatteryDimmed,
		Fault:         res.Fault,
		Temperature:   res.Temp,
		Overall:       res.Overall,
		Banner:        loc.Text(res.Overall.Label),
		Readouts:      make(map[string]string),
		Matched:       res.Matched,
	}
	for _, seg := range classify.Segments() {
		d := res.Path(seg)
		view.Paths = append(view.Paths, PathView{
			Segment:      seg.String(),
			PathDecision: d,
			Visible:      d.Visible(),
			Packed:       panel.PackPath(d),
		})
	}
	for field, text := range render.Readouts(s, loc) {
		view.Readouts[field.String()] = text
	}
	return view
}

func toolClassify(loc *render.Localizer) Registration {
	tool := mcp.NewTool(toolNameClassify,
		mcp.WithDescription("Classify one charger status snapshot into power-flow path decisions, icon colors, indicators and the overall banner. Missing fields default to 0."),
		mcp.WithString("snapshot",
			mcp.Required(),
			mcp.Description(`JSON object of register fields, e.g. {"VBUS_PRESENT_STAT":1,"CHG_STAT_2_0":3}.`),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := req.GetString("snapshot", "")
		if raw == "" {
			return ErrorResult("snapshot is required"), nil
		}

		var fields map[string]any
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return ErrorResult(fmt.Sprintf("parse snapshot JSON: %v", err)), nil
		}

		s, err := snapshot.FromFields(fields)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}

		view := Classification(s, loc)
		log.Debug("%s: source=%s battery=%s", toolNameClassify, view.Matched.Source, view.Matched.Battery)
		return JSONResult(view), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolStatus(state StateReader) Registration {
	tool := mcp.NewTool(toolNameStatus,
		mcp.WithDescription("Get the power-flow diagram state from the last completed render pass: paths, icons, indicators, readouts and banner."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if state == nil {
			return ErrorResult("no render state available"), nil
		}
		st := state.State()
		if st.Passes == 0 {
			return ErrorResult("nothing rendered yet"), nil
		}
		return JSONResult(st), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolRules() Registration {
	tool := mcp.NewTool(toolNameRules,
		mcp.WithDescription("List the classification rule names per rule list, in evaluation order (first match wins)."),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return JSONResult(classify.RuleNames()), nil
	}

	return Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
