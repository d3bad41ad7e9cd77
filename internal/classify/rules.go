// internal/classify/rules.go
package classify

import "github.com/tamzrod/chargeflow/internal/snapshot"

// SourceRules decide the source→chip segment. Order is significant.
var SourceRules = []Rule{
	{
		Name: "disconnected",
		When: func(s snapshot.Snapshot) bool {
			return !sourcePresent(s) && !otg(s)
		},
		Decision: Hidden,
	},
	{
		Name: "fault-forward",
		When: func(s snapshot.Snapshot) bool {
			return inputFault(s) && sourcePresent(s) && !otg(s)
		},
		Decision: PathDecision{Color: ColorError, Animated: true},
	},
	{
		Name: "fault-reverse",
		When: func(s snapshot.Snapshot) bool {
			return (s.TSCold || s.TSHot || s.OTGOVP || s.OTGUVP || s.VBATOTGLow || inputFault(s)) &&
				otg(s) && s.ChargeState.Idle()
		},
		Decision: PathDecision{Color: ColorError, Animated: true, Reversed: true},
	},
	{
		Name: "shared-block",
		When: func(s snapshot.Snapshot) bool {
			return driversNormal(s) && seriesNormal(s) && (s.VBUSPresent || otg(s)) &&
				(s.VSYSOVP || s.VBATOVP || !s.PowerGood || s.TShut || s.EnHIZ || s.VSYSShort)
		},
		Decision: PathDecision{Color: ColorIdle, Static: true},
	},
	{
		Name: "reverse-supplement",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && otgFaultFree(s) && otg(s) && reverseBlocking(s) && s.ChargeState.Idle()
		},
		Decision: PathDecision{Color: ColorSecondary, Animated: true, Reversed: true},
	},
	{
		Name: "dpm-forward",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && s.VBUSPresent && !otg(s) && driversNormal(s) && regulating(s)
		},
		Decision: PathDecision{Color: ColorWarning, Animated: true},
	},
	{
		Name: "dpm-reverse",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && otgFaultFree(s) && otg(s) && driversNormal(s) &&
				s.ChargeState.Idle() && regulating(s) && otgNominal(s)
		},
		Decision: PathDecision{Color: ColorWarning, Animated: true, Reversed: true},
	},
	{
		Name: "charge-inactive",
		When: func(s snapshot.Snapshot) bool {
			stalled := s.ChargeState.Idle() || s.ChargeState.Done() || timers(s) ||
				s.TSHot || s.TSCold || watchdogStop(s)
			return healthy(s) && s.VBUSPresent && !otg(s) && driversNormal(s) &&
				stalled && seriesNormal(s) && !regulating(s)
		},
		Decision: PathDecision{Color: ColorSupplement, Animated: true},
	},
	{
		Name: "normal-charge",
		When: func(s snapshot.Snapshot) bool {
			return activeCharge(s) && !regulating(s)
		},
		Decision: PathDecision{Color: ColorSuccess, Animated: true},
	},
	{
		Name: "otg-nominal",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && otgFaultFree(s) && otg(s) && driversNormal(s) &&
				s.ChargeState.Idle() && !regulating(s) && otgNominal(s)
		},
		Decision: PathDecision{Color: ColorInfo, Animated: true, Reversed: true},
	},
}

// BatteryRules decide the battery↔chip pair. A matched rule draws on
// exactly one of the two segments; the other stays hidden.
var BatteryRules = []BatteryRule{
	{
		Name: "battery-disconnected",
		When: func(s snapshot.Snapshot) bool {
			return !s.VBATPresent || !seriesNormal(s) || chargeComplete(s)
		},
		Segment:  BatteryToChip,
		Decision: Hidden,
	},
	{
		Name: "current-limit-block",
		When: func(s snapshot.Snapshot) bool {
			return s.IBATOCP && s.SFETPresent && s.EnBatOCP
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorIdle, Static: true},
	},
	{
		Name: "battery-fault",
		When: func(s snapshot.Snapshot) bool {
			return (s.TSCold || s.TSHot || s.VBATOVP || s.IBATOCP) &&
				s.VBATPresent && s.ChargeState.Idle() && seriesNormal(s)
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorError, Animated: true},
	},
	{
		Name: "reverse-block-disconnect",
		When: func(s snapshot.Snapshot) bool {
			inputLost := !s.VBUSPresent || s.VBUSOVP || s.VSYSOVP || s.IBUSOCP ||
				!s.PowerGood || s.TShut || s.OTGOVP || s.OTGUVP || s.EnHIZ ||
				s.VBATOTGLow || s.VACOVP || s.VSYSShort
			return inputLost && s.ChargeState.Idle() && seriesNormal(s) &&
				batteryClean(s) && !regulating(s) &&
				(!otg(s) || driversNormal(s)) && s.VBATPresent
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorSupplement, Animated: true},
	},
	{
		Name: "otg-reverse-blocked",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && otg(s) && s.VBATPresent && batteryClean(s) && boostClean(s) &&
				reverseBlocking(s) && s.ChargeState.Idle() && seriesNormal(s)
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorSecondary, Animated: true},
	},
	{
		Name: "dpm-charge",
		When: func(s snapshot.Snapshot) bool {
			return activeCharge(s) && regulating(s) && s.VSYSmV > s.VBATmV
		},
		Segment:  ChipToBattery,
		Decision: PathDecision{Color: ColorWarning, Animated: true},
	},
	{
		Name: "dpm-discharge",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && s.VBATPresent &&
				(otgDischarge(s) || supplementDischarge(s)) &&
				!s.TSHot && !s.VBATOTGLow && !s.VBATOVP && !s.IBATOCP &&
				driversNormal(s) && seriesNormal(s)
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorWarning, Animated: true},
	},
	{
		Name: "otg-discharge",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && otg(s) && s.VBATPresent && s.VBUSPresent &&
				batteryClean(s) && boostClean(s) && otgNominal(s) && driversNormal(s) &&
				!regulating(s) && s.ChargeState.Idle() && seriesNormal(s)
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorInfo, Animated: true},
	},
	{
		Name: "charge-disabled",
		When: func(s snapshot.Snapshot) bool {
			return healthy(s) && !otg(s) && s.VBATPresent && s.VBUSPresent &&
				batteryClean(s) && boostClean(s) && s.VBUSStatus != snapshot.VBUSNoInput &&
				driversNormal(s) && s.ChargeState.Idle() && !s.EnCharge &&
				!regulating(s) && seriesNormal(s)
		},
		Segment:  BatteryToChip,
		Decision: PathDecision{Color: ColorBlocked, Static: true},
	},
	{
		Name: "normal-charge",
		When: func(s snapshot.Snapshot) bool {
			return activeCharge(s) && !regulating(s)
		},
		Segment:  ChipToBattery,
		Decision: PathDecision{Color: ColorSuccess, Animated: true},
	},
}

// otgDischarge: boost running under a regulation limit.
func otgDischarge(s snapshot.Snapshot) bool {
	return otg(s) && !s.TSCold && boostClean(s) && regulating(s) && s.ChargeState.Idle()
}

// supplementDischarge: adapter limited, battery tops up the system.
func supplementDischarge(s snapshot.Snapshot) bool {
	return s.VBUSPresent && !otg(s) && !s.TSCold && regulating(s) && s.VSYSmV <= s.VBATmV
}
