// internal/snapshot/registers.go
package snapshot

import "fmt"

// Mirror register layout: one holding register per charger register,
// addressed by the charger register number. Bit fields sit in the low
// byte; ADC values occupy a single 16-bit register each.
const (
	RegChargerControl0 = 0x0F
	RegChargerControl1 = 0x10
	RegChargerControl2 = 0x11
	RegChargerControl3 = 0x12
	RegChargerControl4 = 0x13
	RegChargerControl5 = 0x14
	RegNTCControl0     = 0x17
	RegStatus0         = 0x1B
	RegStatus1         = 0x1C
	RegStatus2         = 0x1D
	RegStatus3         = 0x1E
	RegStatus4         = 0x1F
	RegFault0          = 0x20
	RegFault1          = 0x21

	RegIBUSADC = 0x31
	RegIBATADC = 0x33
	RegVBUSADC = 0x35
	RegVBATADC = 0x3B
	RegVSYSADC = 0x3D
	RegTDIEADC = 0x41

	// RegisterSpan is the number of registers DecodeRegisters needs,
	// starting at address 0.
	RegisterSpan = RegTDIEADC + 1
)

type bitField struct {
	name  string
	reg   int
	shift uint
	width uint
	// signed readings are two's complement 16-bit
	signed bool
}

var registerMap = []bitField{
	{name: "EN_CHG", reg: RegChargerControl0, shift: 5, width: 1},
	{name: "EN_HIZ", reg: RegChargerControl0, shift: 2, width: 1},
	{name: "STOP_WD_CHG", reg: RegChargerControl1, shift: 6, width: 1},
	{name: "SDRV_CTRL", reg: RegChargerControl2, shift: 1, width: 2},
	{name: "EN_OTG", reg: RegChargerControl3, shift: 6, width: 1},
	{name: "EN_ACDRV2", reg: RegChargerControl4, shift: 7, width: 1},
	{name: "EN_ACDRV1", reg: RegChargerControl4, shift: 6, width: 1},
	{name: "SFET_PRESENT", reg: RegChargerControl5, shift: 7, width: 1},
	{name: "EN_BATOCP", reg: RegChargerControl5, shift: 0, width: 1},

	{name: "JEITA_VSET_2", reg: RegNTCControl0, shift: 5, width: 3},
	{name: "JEITA_ISETH_1", reg: RegNTCControl0, shift: 3, width: 2},
	{name: "JEITA_ISETC_1", reg: RegNTCControl0, shift: 1, width: 2},

	{name: "IINDPM_STAT", reg: RegStatus0, shift: 7, width: 1},
	{name: "VINDPM_STAT", reg: RegStatus0, shift: 6, width: 1},
	{name: "WD_STAT", reg: RegStatus0, shift: 5, width: 1},
	{name: "PG_STAT", reg: RegStatus0, shift: 3, width: 1},
	{name: "AC2_PRESENT_STAT", reg: RegStatus0, shift: 2, width: 1},
	{name: "AC1_PRESENT_STAT", reg: RegStatus0, shift: 1, width: 1},
	{name: "VBUS_PRESENT_STAT", reg: RegStatus0, shift: 0, width: 1},

	{name: "CHG_STAT_2_0", reg: RegStatus1, shift: 5, width: 3},
	{name: "VBUS_STAT_3_0", reg: RegStatus1, shift: 1, width: 4},

	{name: "IBAT_REG_STAT", reg: RegStatus2, shift: 3, width: 1},
	{name: "TREG_STAT", reg: RegStatus2, shift: 2, width: 1},
	{name: "VBAT_PRESENT_STAT", reg: RegStatus2, shift: 0, width: 1},

	{name: "ACRB2_STAT", reg: RegStatus3, shift: 7, width: 1},
	{name: "ACRB1_STAT", reg: RegStatus3, shift: 6, width: 1},
	{name: "VSYS_STAT", reg: RegStatus3, shift: 4, width: 1},
	{name: "CHG_TMR_STAT", reg: RegStatus3, shift: 3, width: 1},
	{name: "TRICHG_TMR_STAT", reg: RegStatus3, shift: 2, width: 1},
	{name: "PRECHG_TMR_STAT", reg: RegStatus3, shift: 1, width: 1},

	{name: "VBATOTG_LOW_STAT", reg: RegStatus4, shift: 4, width: 1},
	{name: "TS_COLD_STAT", reg: RegStatus4, shift: 3, width: 1},
	{name: "TS_COOL_STAT", reg: RegStatus4, shift: 2, width: 1},
	{name: "TS_WARM_STAT", reg: RegStatus4, shift: 1, width: 1},
	{name: "TS_HOT_STAT", reg: RegStatus4, shift: 0, width: 1},

	{name: "VBUS_OVP_STAT", reg: RegFault0, shift: 7, width: 1},
	{name: "VBAT_OVP_STAT", reg: RegFault0, shift: 6, width: 1},
	{name: "IBUS_OCP_STAT", reg: RegFault0, shift: 5, width: 1},
	{name: "IBAT_OCP_STAT", reg: RegFault0, shift: 4, width: 1},
	{name: "VAC_OVP_STAT", reg: RegFault0, shift: 0, width: 1},

	{name: "VSYS_SHORT_STAT", reg: RegFault1, shift: 7, width: 1},
	{name: "VSYS_OVP_STAT", reg: RegFault1, shift: 6, width: 1},
	{name: "OTG_OVP_STAT", reg: RegFault1, shift: 5, width: 1},
	{name: "OTG_UVP_STAT", reg: RegFault1, shift: 4, width: 1},
	{name: "TSHUT_STAT", reg: RegFault1, shift: 2, width: 1},

	{name: "IBUS_ADC_15_0", reg: RegIBUSADC, width: 16, signed: true},
	{name: "IBAT_ADC_15_0", reg: RegIBATADC, width: 16, signed: true},
	{name: "VBUS_ADC_15_0", reg: RegVBUSADC, width: 16},
	{name: "VBAT_ADC_15_0", reg: RegVBATADC, width: 16},
	{name: "VSYS_ADC_15_0", reg: RegVSYSADC, width: 16},
	{name: "TDIE_ADC_15_0", reg: RegTDIEADC, width: 16, signed: true},
}

func (b bitField) mask() uint16 {
	return uint16(1<<b.width - 1)
}

// DecodeRegisters builds a snapshot from a mirror register block read
// from address 0.
func DecodeRegisters(regs []uint16) (Snapshot, error) {
	if len(regs) < RegisterSpan {
		return Snapshot{}, fmt.Errorf("register block too short: got %d, need %d", len(regs), RegisterSpan)
	}

	var s Snapshot
	for _, b := range registerMap {
		raw := (regs[b.reg] >> b.shift) & b.mask()

		var v int64
		if b.signed {
			v = int64(int16(raw))
		} else {
			v = int64(raw)
		}
		if err := fieldsByName[b.name].assign(&s, v); err != nil {
			return Snapshot{}, fmt.Errorf("register 0x%02X: %w", b.reg, err)
		}
	}
	return s, nil
}

// EncodeRegisters is the inverse of DecodeRegisters.
// Registers not in the layout are zero.
func EncodeRegisters(s Snapshot) []uint16 {
	regs := make([]uint16, RegisterSpan)
	for _, b := range registerMap {
		v := uint16(fieldsByName[b.name].value(&s)) & b.mask()
		regs[b.reg] |= v << b.shift
	}
	return regs
}
