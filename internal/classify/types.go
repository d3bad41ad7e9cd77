// internal/classify/types.go
package classify

import "github.com/tamzrod/chargeflow/internal/snapshot"

// Segment identifies one drawn power path.
type Segment int

const (
	SourceToChip Segment = iota
	ChipToSystem
	ChipToBattery
	BatteryToChip

	SegmentCount
)

var segmentNames = [SegmentCount]string{
	SourceToChip:  "source_to_chip",
	ChipToSystem:  "chip_to_system",
	ChipToBattery: "chip_to_battery",
	BatteryToChip: "battery_to_chip",
}

func (s Segment) String() string {
	if s < 0 || s >= SegmentCount {
		return "unknown"
	}
	return segmentNames[s]
}

// Segments lists every segment in drawing order.
func Segments() []Segment {
	return []Segment{SourceToChip, ChipToSystem, ChipToBattery, BatteryToChip}
}

// ColorToken is a symbolic color resolved by the presentation layer.
type ColorToken string

const (
	ColorNone       ColorToken = "none"
	ColorSuccess    ColorToken = "success"
	ColorWarning    ColorToken = "warning"
	ColorError      ColorToken = "error"
	ColorInfo       ColorToken = "info"
	ColorIdle       ColorToken = "idle"
	ColorSecondary  ColorToken = "secondary"
	ColorSupplement ColorToken = "supplement"
	ColorDischarge  ColorToken = "discharge"
	ColorBlocked    ColorToken = "blocked"
)

// Colors lists every token; the index is the token's wire code.
var Colors = []ColorToken{
	ColorNone,
	ColorSuccess,
	ColorWarning,
	ColorError,
	ColorInfo,
	ColorIdle,
	ColorSecondary,
	ColorSupplement,
	ColorDischarge,
	ColorBlocked,
}

// Code returns the numeric wire code of the token (0 for unknown).
func (c ColorToken) Code() uint16 {
	for i, t := range Colors {
		if t == c {
			return uint16(i)
		}
	}
	return 0
}

// PathDecision is the rendering of one segment.
type PathDecision struct {
	Color    ColorToken `json:"color"`
	Animated bool       `json:"animated"`
	Reversed bool       `json:"reversed"`
	Static   bool       `json:"static"`
}

// Hidden is the "no path drawn" decision.
var Hidden = PathDecision{Color: ColorNone}

// Visible reports whether the path is drawn at all.
func (d PathDecision) Visible() bool {
	return d.Color != "" && d.Color != ColorNone
}

// Predicate is a pure test over one snapshot.
type Predicate func(snapshot.Snapshot) bool

// Rule is one entry of an ordered path rule list.
type Rule struct {
	Name     string
	When     Predicate
	Decision PathDecision
}

// BatteryRule also names the segment the decision is drawn on.
type BatteryRule struct {
	Name     string
	When     Predicate
	Segment  Segment
	Decision PathDecision
}

// IconRule colors a component outline.
type IconRule struct {
	Name   string
	When   Predicate
	Color  ColorToken
	Dimmed bool
}

// OverallKind enumerates banner states in priority order.
type OverallKind int

const (
	KindUnpowered OverallKind = iota
	KindFault
	KindOTG
	KindCharging
	KindComplete
	KindHIZ
	KindAdapter
	KindBattery
)

// OverallStatus summarizes the whole system for the banner.
// Label is a message key (English text) localized by the render layer.
type OverallStatus struct {
	Kind     OverallKind `json:"kind"`
	Label    string      `json:"label"`
	Severity ColorToken  `json:"severity"`
}

// OverallRule is one entry of the banner priority list.
type OverallRule struct {
	Name   string
	When   Predicate
	Status OverallStatus
}

// TempIndicator is the battery temperature marker.
type TempIndicator struct {
	Visible bool       `json:"visible"`
	Color   ColorToken `json:"color"`
}

// Matched records which rule decided each list; empty means none matched.
type Matched struct {
	Source      string `json:"source"`
	Battery     string `json:"battery"`
	System      string `json:"system"`
	SourceIcon  string `json:"source_icon"`
	BatteryIcon string `json:"battery_icon"`
	Overall     string `json:"overall"`
}

// Result is the complete visual classification of one snapshot.
type Result struct {
	Paths [SegmentCount]PathDecision

	SourceIcon    ColorToken
	BatteryIcon   ColorToken
	BatteryDimmed bool

	Fault bool
	Temp  TempIndicator

	Overall OverallStatus
	Matched Matched
}

// Path returns the decision for one segment.
func (r Result) Path(s Segment) PathDecision {
	if s < 0 || s >= SegmentCount {
		return Hidden
	}
	return r.Paths[s]
}
