// internal/render/render.go
package render

import "github.com/tamzrod/chargeflow/internal/classify"

// Icon identifies a component outline.
type Icon int

const (
	IconSource Icon = iota
	IconBattery
)

func (i Icon) String() string {
	switch i {
	case IconSource:
		return "source"
	case IconBattery:
		return "battery"
	default:
		return "unknown"
	}
}

// Icons lists every icon.
var Icons = []Icon{IconSource, IconBattery}

// Indicator identifies a warning marker.
type Indicator int

const (
	IndicatorFault Indicator = iota
	IndicatorTemp
)

func (i Indicator) String() string {
	switch i {
	case IndicatorFault:
		return "fault"
	case IndicatorTemp:
		return "temperature"
	default:
		return "unknown"
	}
}

// Indicators lists every indicator.
var Indicators = []Indicator{IndicatorFault, IndicatorTemp}

// TextField identifies a text readout.
type TextField int

const (
	TextVBUS TextField = iota
	TextVSYS
	TextVBAT
	TextIBAT
	TextTDie
	TextIBUS
	TextChargeState
	TextAdapter
	TextSysRegulation
)

var textNames = []string{
	TextVBUS:          "vbus_voltage",
	TextVSYS:          "sys_voltage",
	TextVBAT:          "battery_voltage",
	TextIBAT:          "battery_current",
	TextTDie:          "chip_temperature",
	TextIBUS:          "input_current",
	TextChargeState:   "charge_state",
	TextAdapter:       "adapter",
	TextSysRegulation: "sys_regulation",
}

func (f TextField) String() string {
	if f < 0 || int(f) >= len(textNames) {
		return "unknown"
	}
	return textNames[f]
}

// Target is a rendering surface. Implementations only record state;
// nothing is visible until Flush when the target also implements Flusher.
type Target interface {
	SetPath(seg classify.Segment, d classify.PathDecision)
	SetIcon(icon Icon, color classify.ColorToken, dimmed bool)
	SetText(field TextField, text string)
	SetIndicator(ind Indicator, visible bool, color classify.ColorToken)
	SetBanner(status classify.OverallStatus, label string)
}

// Flusher is implemented by targets that commit a pass at once.
type Flusher interface {
	Flush() error
}
