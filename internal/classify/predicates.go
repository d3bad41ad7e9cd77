// internal/classify/predicates.go
package classify

import "github.com/tamzrod/chargeflow/internal/snapshot"

// Shared field predicates. Every rule list is composed from these.

func otg(s snapshot.Snapshot) bool { return s.EnOTG }

func sourcePresent(s snapshot.Snapshot) bool {
	return s.VBUSPresent || s.AC1Present || s.AC2Present
}

// inputFault covers the source rail protections.
func inputFault(s snapshot.Snapshot) bool {
	return s.VBUSOVP || s.IBUSOCP || s.VACOVP
}

// driversNormal: reverse-blocking switches open, or an ACDRV driver enabled.
func driversNormal(s snapshot.Snapshot) bool {
	return (!s.ACRB1 && !s.ACRB2) || s.EnACDRV1 || s.EnACDRV2
}

// reverseBlocking: a blocking switch engaged with both drivers disabled.
func reverseBlocking(s snapshot.Snapshot) bool {
	return !driversNormal(s)
}

func regulating(s snapshot.Snapshot) bool {
	return s.VINDPM || s.IINDPM || s.IBATReg || s.TReg
}

func seriesNormal(s snapshot.Snapshot) bool { return s.SDRVCtrl == 0 }

func anyFault(s snapshot.Snapshot) bool {
	return s.VBUSOVP || s.VSYSOVP || s.VBATOVP || s.IBUSOCP ||
		!s.PowerGood || s.TShut || s.OTGOVP || s.OTGUVP ||
		(otg(s) && (s.TSCold || s.TSHot)) ||
		s.EnHIZ || !seriesNormal(s) || s.VACOVP || s.VSYSShort
}

func healthy(s snapshot.Snapshot) bool { return !anyFault(s) }

// otgFaultFree: nothing that would stop the boost converter.
func otgFaultFree(s snapshot.Snapshot) bool {
	return !s.TSCold && !s.TSHot && !s.OTGOVP && !s.OTGUVP && !s.VBATOTGLow
}

// batteryClean: no battery-side protection or thermal limit.
func batteryClean(s snapshot.Snapshot) bool {
	return !s.VBATOTGLow && !s.TSCold && !s.TSHot && !s.VBATOVP && !s.IBATOCP
}

// boostClean: no OTG output or die protection.
func boostClean(s snapshot.Snapshot) bool {
	return !s.TShut && !s.OTGOVP && !s.OTGUVP
}

func timers(s snapshot.Snapshot) bool {
	return s.ChgTimer || s.TrickleTimer || s.PrechgTimer
}

func watchdogStop(s snapshot.Snapshot) bool {
	return s.StopWDChg && s.Watchdog
}

// jeitaOK: warm/cool zones have a non-zero JEITA setting.
func jeitaOK(s snapshot.Snapshot) bool {
	return (!s.TSWarm || (s.JEITAVSet != 0 && s.JEITAISetH != 0)) &&
		(!s.TSCool || s.JEITAISetC != 0)
}

func otgNominal(s snapshot.Snapshot) bool {
	return s.VBUSStatus == snapshot.VBUSOTG
}

// activeCharge is a clean adapter-fed charge cycle with every limiter
// except the regulation loops checked.
func activeCharge(s snapshot.Snapshot) bool {
	return healthy(s) && s.VBUSPresent && s.VBATPresent && !otg(s) &&
		driversNormal(s) && s.ChargeState.Charging() && !timers(s) &&
		batteryClean(s) && !watchdogStop(s) && seriesNormal(s) && jeitaOK(s)
}

// chargeComplete is termination with a clean adapter and battery.
func chargeComplete(s snapshot.Snapshot) bool {
	return healthy(s) && s.VBUSPresent && s.VBATPresent && s.ChargeState.Done() &&
		!otg(s) && batteryClean(s) && boostClean(s) && !regulating(s) &&
		driversNormal(s) && jeitaOK(s)
}
