// internal/panel/visual.go
package panel

import "github.com/tamzrod/chargeflow/internal/classify"

// FromResult converts a classification straight into its wire form.
func FromResult(res classify.Result) Visual {
	var v Visual
	for i, seg := range classify.Segments() {
		v.Paths[i] = PackPath(res.Path(seg))
	}
	v.SourceIcon = res.SourceIcon.Code()
	v.BatteryIcon = res.BatteryIcon.Code()
	v.BatteryDimmed = boolReg(res.BatteryDimmed)
	if res.Fault {
		v.Indicators |= IndicatorFaultBit
	}
	if res.Temp.Visible {
		v.Indicators |= IndicatorTempBit
		v.TempColor = res.Temp.Color.Code()
	}
	v.OverallKind = uint16(res.Overall.Kind)
	v.OverallSeverity = res.Overall.Severity.Code()
	return v
}
