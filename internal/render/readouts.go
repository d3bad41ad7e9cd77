// internal/render/readouts.go
package render

import (
	"fmt"

	"github.com/tamzrod/chargeflow/internal/snapshot"
)

var chargeStateNames = []string{
	"Not charging",
	"Trickle",
	"Pre-charge",
	"Fast charge (CC)",
	"Taper (CV)",
	"Reserved",
	"Top-off",
	"Charge done",
}

var adapterNames = []string{
	"No input",
	"SDP",
	"CDP",
	"DCP",
	"HVDCP",
	"Unknown adapter",
	"Non-standard",
	"OTG",
	"Not qualified",
}

// ChargeStateName returns the message key for CHG_STAT.
func ChargeStateName(c snapshot.ChargeState) string {
	if int(c) < len(chargeStateNames) {
		return chargeStateNames[c]
	}
	return "Unknown"
}

// AdapterName returns the message key for VBUS_STAT.
func AdapterName(v snapshot.VBUSStatus) string {
	if int(v) < len(adapterNames) {
		return adapterNames[v]
	}
	return "Reserved"
}

func volts(mv int32) string {
	return fmt.Sprintf("%.2f V", float64(mv)/1000)
}

// Readouts formats every text field for one snapshot.
func Readouts(s snapshot.Snapshot, loc *Localizer) map[TextField]string {
	tdie := "--"
	if s.TDieC != 0 {
		tdie = fmt.Sprintf("%d", s.TDieC)
	}
	ibus := "--"
	if s.IBUSmA != 0 {
		ibus = fmt.Sprintf("%d", s.IBUSmA)
	}
	sysReg := "Normal"
	if s.VSYSReg {
		sysReg = "VSYSMIN regulation"
	}

	return map[TextField]string{
		TextVBUS:          volts(s.VBUSmV),
		TextVSYS:          volts(s.VSYSmV),
		TextVBAT:          volts(s.VBATmV),
		TextIBAT:          fmt.Sprintf("%.2f A", float64(s.IBATmA)/1000),
		TextTDie:          tdie + " °C",
		TextIBUS:          ibus + " mA",
		TextChargeState:   loc.Text(ChargeStateName(s.ChargeState)),
		TextAdapter:       loc.Text(AdapterName(s.VBUSStatus)),
		TextSysRegulation: loc.Text(sysReg),
	}
}
