// internal/classify/classify.go
package classify

import (
	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

var log = logger.WithPrefix("classify: ")

type matcher interface {
	Rule | BatteryRule | IconRule | OverallRule
}

func predicateOf[R matcher](r R) Predicate {
	switch v := any(r).(type) {
	case Rule:
		return v.When
	case BatteryRule:
		return v.When
	case IconRule:
		return v.When
	case OverallRule:
		return v.When
	}
	return nil
}

// FirstMatch returns the index of the first rule whose predicate holds,
// or -1.
func FirstMatch[R matcher](rules []R, s snapshot.Snapshot) int {
	for i, r := range rules {
		if p := predicateOf(r); p != nil && p(s) {
			return i
		}
	}
	return -1
}

// Classify maps one snapshot to its complete visual state.
func Classify(s snapshot.Snapshot) Result {
	var res Result
	for i := range res.Paths {
		res.Paths[i] = Hidden
	}

	if i := FirstMatch(SourceRules, s); i >= 0 {
		r := SourceRules[i]
		res.Paths[SourceToChip] = r.Decision
		res.Matched.Source = r.Name
		log.Debug("source path: %s", r.Name)
	}

	if i := FirstMatch(BatteryRules, s); i >= 0 {
		r := BatteryRules[i]
		if r.Decision.Visible() {
			res.Paths[r.Segment] = r.Decision
		}
		res.Matched.Battery = r.Name
		log.Debug("battery path: %s", r.Name)
	} else {
		log.Debug("battery path: no rule matched")
	}

	name, sys := systemPath(s)
	res.Paths[ChipToSystem] = sys
	res.Matched.System = name

	res.SourceIcon = ColorInfo
	if i := FirstMatch(SourceIconRules, s); i >= 0 {
		r := SourceIconRules[i]
		res.SourceIcon = r.Color
		res.Matched.SourceIcon = r.Name
	}

	res.BatteryIcon = ColorSuccess
	if i := FirstMatch(BatteryIconRules, s); i >= 0 {
		r := BatteryIconRules[i]
		res.BatteryIcon = r.Color
		res.BatteryDimmed = r.Dimmed
		res.Matched.BatteryIcon = r.Name
	}

	res.Fault = faultIndicator(s)
	res.Temp = tempIndicator(s)

	i := FirstMatch(OverallRules, s)
	res.Overall = OverallRules[i].Status
	res.Matched.Overall = OverallRules[i].Name

	return res
}

// RuleNames lists rule names per list, in evaluation order.
func RuleNames() map[string][]string {
	names := func(n int, at func(int) string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = at(i)
		}
		return out
	}
	return map[string][]string{
		"source":       names(len(SourceRules), func(i int) string { return SourceRules[i].Name }),
		"battery":      names(len(BatteryRules), func(i int) string { return BatteryRules[i].Name }),
		"source_icon":  names(len(SourceIconRules), func(i int) string { return SourceIconRules[i].Name }),
		"battery_icon": names(len(BatteryIconRules), func(i int) string { return BatteryIconRules[i].Name }),
		"overall":      names(len(OverallRules), func(i int) string { return OverallRules[i].Name }),
	}
}
