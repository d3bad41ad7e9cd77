// internal/panel/constants.go
package panel

// Panel block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerPanel is the fixed number of registers owned by one panel slot.
const SlotsPerPanel = 24

// ---- ACQUISITION HEALTH ----

// SlotHealthCode holds the acquisition health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last raw error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds the duration (in seconds) acquisition has been in error.
const SlotSecondsInError = 2

// ---- VISUAL STATE ----

// SlotPathStart is the first packed path slot, one per segment in drawing order.
const SlotPathStart = 3

// SlotPathSlots is the number of packed path slots.
const SlotPathSlots = 4

const (
	SlotSourceIcon      = 7
	SlotBatteryIcon     = 8
	SlotBatteryDimmed   = 9
	SlotIndicators      = 10
	SlotTempColor       = 11
	SlotOverallKind     = 12
	SlotOverallSeverity = 13
)

// Slots 14–15 are reserved and always written as zero.
const SlotReservedStart = 14
const SlotReservedEnd = 15

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the block.
const SlotDeviceNameStart = 16

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- PACKED PATH BITS ----

const (
	PathColorMask uint16 = 0x000F
	PathVisible   uint16 = 1 << 8
	PathAnimated  uint16 = 1 << 9
	PathReversed  uint16 = 1 << 10
	PathStatic    uint16 = 1 << 11
)

// ---- INDICATOR BITS ----

const (
	IndicatorFaultBit uint16 = 1 << 0
	IndicatorTempBit  uint16 = 1 << 1
)

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents healthy acquisition.
const HealthOK uint16 = 1

// HealthError represents an acquisition error state.
const HealthError uint16 = 2

// HealthStale represents a stale data state.
const HealthStale uint16 = 3

// HealthDisabled represents a disabled source.
const HealthDisabled uint16 = 4
