// internal/render/apply.go
package render

import (
	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

// Reset puts every path, icon and indicator back to the neutral baseline.
func Reset(t Target) {
	for _, seg := range classify.Segments() {
		t.SetPath(seg, classify.Hidden)
	}
	for _, icon := range Icons {
		t.SetIcon(icon, classify.ColorNone, false)
	}
	for _, ind := range Indicators {
		t.SetIndicator(ind, false, classify.ColorNone)
	}
}

// Apply runs one render pass: neutral reset, matched decisions,
// readouts, banner, then Flush if the target supports it.
func Apply(t Target, s snapshot.Snapshot, res classify.Result, loc *Localizer) error {
	if loc == nil {
		loc = DefaultLocalizer()
	}

	Reset(t)

	for _, seg := range classify.Segments() {
		if d := res.Path(seg); d.Visible() {
			t.SetPath(seg, d)
		}
	}

	t.SetIcon(IconSource, res.SourceIcon, false)
	t.SetIcon(IconBattery, res.BatteryIcon, res.BatteryDimmed)

	if res.Fault {
		t.SetIndicator(IndicatorFault, true, classify.ColorError)
	}
	if res.Temp.Visible {
		t.SetIndicator(IndicatorTemp, true, res.Temp.Color)
	}

	for field, text := range Readouts(s, loc) {
		t.SetText(field, text)
	}

	t.SetBanner(res.Overall, loc.Text(res.Overall.Label))

	if f, ok := t.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
