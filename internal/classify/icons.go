// internal/classify/icons.go
package classify

import "github.com/tamzrod/chargeflow/internal/snapshot"

// SourceIconRules color the adapter outline.
var SourceIconRules = []IconRule{
	{
		Name: "source-absent",
		When: func(s snapshot.Snapshot) bool {
			return !s.VBUSPresent && !otg(s) &&
				((!s.ACRB1 && !s.ACRB2) || (!s.EnACDRV1 && !s.EnACDRV2))
		},
		Color: ColorIdle,
	},
	{
		Name: "source-fault",
		When: func(s snapshot.Snapshot) bool {
			if inputFault(s) && sourcePresent(s) {
				return true
			}
			return otg(s) && seriesNormal(s) &&
				(s.VBATOVP || s.IBATOCP || s.TSHot || s.TSCold ||
					s.OTGOVP || s.OTGUVP || s.TShut || s.VBATOTGLow)
		},
		Color: ColorError,
	},
	{
		Name:  "source-nominal",
		When:  func(snapshot.Snapshot) bool { return true },
		Color: ColorInfo,
	},
}

// BatteryIconRules color the battery outline; absent dims it.
var BatteryIconRules = []IconRule{
	{
		Name: "battery-absent",
		When: func(s snapshot.Snapshot) bool {
			return !s.VBATPresent || !seriesNormal(s)
		},
		Color:  ColorIdle,
		Dimmed: true,
	},
	{
		Name: "battery-fault",
		When: func(s snapshot.Snapshot) bool {
			fault := s.TSCold || s.TSHot || s.VBATOVP || s.IBATOCP || s.TShut ||
				(otg(s) && (s.OTGOVP || s.OTGUVP || s.VBATOTGLow)) ||
				timers(s)
			return fault && s.VBATPresent && seriesNormal(s)
		},
		Color: ColorError,
	},
	{
		Name:  "charge-complete",
		When:  chargeComplete,
		Color: ColorSuccess,
	},
	{
		Name:  "battery-nominal",
		When:  func(snapshot.Snapshot) bool { return true },
		Color: ColorSuccess,
	},
}
