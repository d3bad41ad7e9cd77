// internal/classify/overall.go
package classify

import "github.com/tamzrod/chargeflow/internal/snapshot"

// SystemPresenceThreshold is the raw ADC level below which a rail is
// treated as unpowered.
const SystemPresenceThreshold = 100

// Banner labels. These are message keys for the localizer.
const (
	LabelFault     = "System fault"
	LabelOTG       = "Power bank (OTG) active"
	LabelCharging  = "Charging"
	LabelComplete  = "Charge complete"
	LabelHIZ       = "Input disabled (HIZ)"
	LabelAdapter   = "Adapter connected"
	LabelBattery   = "Running on battery"
	LabelUnpowered = "Off / no power"
)

// OverallRules is the banner priority list. The last rule always matches.
var OverallRules = []OverallRule{
	{
		Name: "fault",
		When: func(s snapshot.Snapshot) bool {
			return s.TShut || s.VBUSOVP || s.VSYSOVP || s.VBATOVP || s.IBUSOCP
		},
		Status: OverallStatus{Kind: KindFault, Label: LabelFault, Severity: ColorError},
	},
	{
		Name:   "otg",
		When:   otg,
		Status: OverallStatus{Kind: KindOTG, Label: LabelOTG, Severity: ColorInfo},
	},
	{
		Name:   "charging",
		When:   func(s snapshot.Snapshot) bool { return s.ChargeState.Charging() },
		Status: OverallStatus{Kind: KindCharging, Label: LabelCharging, Severity: ColorSuccess},
	},
	{
		Name:   "complete",
		When:   func(s snapshot.Snapshot) bool { return s.ChargeState.Done() },
		Status: OverallStatus{Kind: KindComplete, Label: LabelComplete, Severity: ColorInfo},
	},
	{
		Name:   "hiz",
		When:   func(s snapshot.Snapshot) bool { return s.EnHIZ },
		Status: OverallStatus{Kind: KindHIZ, Label: LabelHIZ, Severity: ColorIdle},
	},
	{
		Name:   "adapter",
		When:   func(s snapshot.Snapshot) bool { return s.VBUSPresent },
		Status: OverallStatus{Kind: KindAdapter, Label: LabelAdapter, Severity: ColorIdle},
	},
	{
		Name:   "battery",
		When:   func(s snapshot.Snapshot) bool { return s.VBATPresent },
		Status: OverallStatus{Kind: KindBattery, Label: LabelBattery, Severity: ColorInfo},
	},
	{
		Name:   "unpowered",
		When:   func(snapshot.Snapshot) bool { return true },
		Status: OverallStatus{Kind: KindUnpowered, Label: LabelUnpowered, Severity: ColorIdle},
	},
}

// systemPath is a two-way comparator, not a rule list.
func systemPath(s snapshot.Snapshot) (string, PathDecision) {
	vbat, vsys := s.VBATmV, s.VSYSmV

	if vbat < SystemPresenceThreshold && vsys < SystemPresenceThreshold {
		return "system-unpowered", Hidden
	}
	if vbat > vsys {
		return "system-from-battery", PathDecision{Color: ColorDischarge, Animated: true}
	}
	return "system-from-adapter", PathDecision{Color: ColorSuccess, Animated: true}
}

func faultIndicator(s snapshot.Snapshot) bool {
	return s.VBUSOVP || s.VSYSOVP || s.VBATOVP || s.TShut
}

// tempIndicator: cold/cool wins over hot/warm when both are reported.
func tempIndicator(s snapshot.Snapshot) TempIndicator {
	switch {
	case s.TSCold || s.TSCool:
		return TempIndicator{Visible: true, Color: ColorInfo}
	case s.TSHot || s.TSWarm:
		return TempIndicator{Visible: true, Color: ColorWarning}
	default:
		return TempIndicator{Color: ColorNone}
	}
}
