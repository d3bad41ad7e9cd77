// internal/snapshot/snapshot.go
package snapshot

// Snapshot is one complete reading of the charger status fields.
// It is a value type: a new snapshot replaces the previous one.
// Every field defaults to zero (flag clear, enum 0, reading 0).
type Snapshot struct {
	// ---- presence ----
	VBUSPresent bool // VBUS_PRESENT_STAT
	AC1Present  bool // AC1_PRESENT_STAT
	AC2Present  bool // AC2_PRESENT_STAT
	VBATPresent bool // VBAT_PRESENT_STAT
	PowerGood   bool // PG_STAT
	SFETPresent bool // SFET_PRESENT

	// ---- enums ----
	ChargeState ChargeState // CHG_STAT_2_0
	VBUSStatus  VBUSStatus  // VBUS_STAT_3_0
	SDRVCtrl    uint8       // SDRV_CTRL, 0 = normal series FET mode
	JEITAVSet   uint8       // JEITA_VSET_2
	JEITAISetH  uint8       // JEITA_ISETH_1
	JEITAISetC  uint8       // JEITA_ISETC_1

	// ---- enables ----
	EnOTG     bool // EN_OTG
	EnHIZ     bool // EN_HIZ
	EnCharge  bool // EN_CHG
	EnACDRV1  bool // EN_ACDRV1
	EnACDRV2  bool // EN_ACDRV2
	EnBatOCP  bool // EN_BATOCP
	StopWDChg bool // STOP_WD_CHG

	// ---- reverse-blocking switches ----
	ACRB1 bool // ACRB1_STAT
	ACRB2 bool // ACRB2_STAT

	// ---- regulation loops ----
	VINDPM  bool // VINDPM_STAT
	IINDPM  bool // IINDPM_STAT
	IBATReg bool // IBAT_REG_STAT
	TReg    bool // TREG_STAT
	VSYSReg bool // VSYS_STAT

	// ---- faults ----
	VBUSOVP    bool // VBUS_OVP_STAT
	VACOVP     bool // VAC_OVP_STAT
	IBUSOCP    bool // IBUS_OCP_STAT
	VSYSOVP    bool // VSYS_OVP_STAT
	VBATOVP    bool // VBAT_OVP_STAT
	IBATOCP    bool // IBAT_OCP_STAT
	OTGOVP     bool // OTG_OVP_STAT
	OTGUVP     bool // OTG_UVP_STAT
	VBATOTGLow bool // VBATOTG_LOW_STAT
	TShut      bool // TSHUT_STAT
	VSYSShort  bool // VSYS_SHORT_STAT

	// ---- timers / watchdog ----
	ChgTimer     bool // CHG_TMR_STAT
	TrickleTimer bool // TRICHG_TMR_STAT
	PrechgTimer  bool // PRECHG_TMR_STAT
	Watchdog     bool // WD_STAT

	// ---- thermistor ----
	TSCold bool // TS_COLD_STAT
	TSCool bool // TS_COOL_STAT
	TSWarm bool // TS_WARM_STAT
	TSHot  bool // TS_HOT_STAT

	// ---- ADC readings (raw units) ----
	VBUSmV int32 // VBUS_ADC_15_0
	VSYSmV int32 // VSYS_ADC_15_0
	VBATmV int32 // VBAT_ADC_15_0
	IBUSmA int32 // IBUS_ADC_15_0
	IBATmA int32 // IBAT_ADC_15_0
	TDieC  int32 // TDIE_ADC_15_0
}

// ChargeState is the CHG_STAT_2_0 charge cycle state.
type ChargeState uint8

const (
	ChargeNotCharging ChargeState = 0
	ChargeTrickle     ChargeState = 1
	ChargePrecharge   ChargeState = 2
	ChargeFast        ChargeState = 3
	ChargeTaper       ChargeState = 4
	ChargeReserved    ChargeState = 5
	ChargeTopOff      ChargeState = 6
	ChargeDone        ChargeState = 7
)

// Idle reports no charge cycle running.
func (c ChargeState) Idle() bool { return c == ChargeNotCharging }

// Done reports charge termination.
func (c ChargeState) Done() bool { return c == ChargeDone }

// Charging reports any active cycle state (1..6).
func (c ChargeState) Charging() bool { return !c.Idle() && !c.Done() }

// VBUSStatus is the VBUS_STAT_3_0 adapter / input type.
type VBUSStatus uint8

const (
	VBUSNoInput      VBUSStatus = 0
	VBUSSDP          VBUSStatus = 1
	VBUSCDP          VBUSStatus = 2
	VBUSDCP          VBUSStatus = 3
	VBUSHVDCP        VBUSStatus = 4
	VBUSUnknown      VBUSStatus = 5
	VBUSNonStandard  VBUSStatus = 6
	VBUSOTG          VBUSStatus = 7
	VBUSNotQualified VBUSStatus = 8
)
