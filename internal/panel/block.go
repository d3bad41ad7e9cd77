// internal/panel/block.go
package panel

import (
	"strings"

	"github.com/tamzrod/chargeflow/internal/classify"
)

// Health is the acquisition part of the block.
// It contains no logic and no memory of the past beyond current state.
type Health struct {
	Code           uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// Visual is the classified part of the block, already in wire form.
type Visual struct {
	Paths           [SlotPathSlots]uint16
	SourceIcon      uint16
	BatteryIcon     uint16
	BatteryDimmed   uint16
	Indicators      uint16
	TempColor       uint16
	OverallKind     uint16
	OverallSeverity uint16
}

// Block is everything the writer is allowed to deliver for one panel slot.
type Block struct {
	Health Health
	Visual Visual
	Name   [SlotDeviceNameSlots]uint16
}

// Encode converts a Block into a full panel register block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(b Block) []uint16 {
	regs := make([]uint16, SlotsPerPanel)

	regs[SlotHealthCode] = b.Health.Code
	regs[SlotLastErrorCode] = b.Health.LastErrorCode
	regs[SlotSecondsInError] = b.Health.SecondsInError

	copy(regs[SlotPathStart:SlotPathStart+SlotPathSlots], b.Visual.Paths[:])
	regs[SlotSourceIcon] = b.Visual.SourceIcon
	regs[SlotBatteryIcon] = b.Visual.BatteryIcon
	regs[SlotBatteryDimmed] = b.Visual.BatteryDimmed
	regs[SlotIndicators] = b.Visual.Indicators
	regs[SlotTempColor] = b.Visual.TempColor
	regs[SlotOverallKind] = b.Visual.OverallKind
	regs[SlotOverallSeverity] = b.Visual.OverallSeverity

	copy(regs[SlotDeviceNameStart:SlotDeviceNameEnd+1], b.Name[:])

	return regs
}

// PackPath folds a path decision into one register.
func PackPath(d classify.PathDecision) uint16 {
	if !d.Visible() {
		return 0
	}
	v := d.Color.Code()&PathColorMask | PathVisible
	if d.Animated {
		v |= PathAnimated
	}
	if d.Reversed {
		v |= PathReversed
	}
	if d.Static {
		v |= PathStatic
	}
	return v
}

// UnpackPath is the inverse of PackPath.
func UnpackPath(v uint16) classify.PathDecision {
	if v&PathVisible == 0 {
		return classify.Hidden
	}
	code := int(v & PathColorMask)
	if code >= len(classify.Colors) {
		return classify.Hidden
	}
	return classify.PathDecision{
		Color:    classify.Colors[code],
		Animated: v&PathAnimated != 0,
		Reversed: v&PathReversed != 0,
		Static:   v&PathStatic != 0,
	}
}

func boolReg(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// EncodeDeviceName packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func EncodeDeviceName(name string) [SlotDeviceNameSlots]uint16 {
	var out [SlotDeviceNameSlots]uint16

	b := []byte(name)
	if len(b) > DeviceNameMaxChars {
		b = b[:DeviceNameMaxChars]
	}

	// sanitize to printable ASCII
	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < DeviceNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}

// DecodeDeviceName reads the name back, dropping trailing NULs.
func DecodeDeviceName(regs []uint16) string {
	var sb strings.Builder
	for _, r := range regs {
		sb.WriteByte(byte(r >> 8))
		sb.WriteByte(byte(r))
	}
	return strings.TrimRight(sb.String(), "\x00")
}
