// internal/snapshot/fields.go
package snapshot

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cast"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
)

type fieldKind int

const (
	kindFlag fieldKind = iota
	kindEnum
	kindReading
)

// field binds one wire name to its slot in Snapshot.
type field struct {
	name string
	kind fieldKind
	max  int64

	flag    func(*Snapshot) *bool
	enum    func(*Snapshot) *uint8
	reading func(*Snapshot) *int32
}

func flag(name string, p func(*Snapshot) *bool) field {
	return field{name: name, kind: kindFlag, max: 1, flag: p}
}

func enum(name string, max int64, p func(*Snapshot) *uint8) field {
	return field{name: name, kind: kindEnum, max: max, enum: p}
}

func reading(name string, p func(*Snapshot) *int32) field {
	return field{name: name, kind: kindReading, reading: p}
}

var fields = []field{
	flag("VBUS_PRESENT_STAT", func(s *Snapshot) *bool { return &s.VBUSPresent }),
	flag("AC1_PRESENT_STAT", func(s *Snapshot) *bool { return &s.AC1Present }),
	flag("AC2_PRESENT_STAT", func(s *Snapshot) *bool { return &s.AC2Present }),
	flag("VBAT_PRESENT_STAT", func(s *Snapshot) *bool { return &s.VBATPresent }),
	flag("PG_STAT", func(s *Snapshot) *bool { return &s.PowerGood }),
	flag("SFET_PRESENT", func(s *Snapshot) *bool { return &s.SFETPresent }),

	enum("CHG_STAT_2_0", 7, func(s *Snapshot) *uint8 { return (*uint8)(&s.ChargeState) }),
	enum("VBUS_STAT_3_0", 15, func(s *Snapshot) *uint8 { return (*uint8)(&s.VBUSStatus) }),
	enum("SDRV_CTRL", 3, func(s *Snapshot) *uint8 { return &s.SDRVCtrl }),
	enum("JEITA_VSET_2", 7, func(s *Snapshot) *uint8 { return &s.JEITAVSet }),
	enum("JEITA_ISETH_1", 3, func(s *Snapshot) *uint8 { return &s.JEITAISetH }),
	enum("JEITA_ISETC_1", 3, func(s *Snapshot) *uint8 { return &s.JEITAISetC }),

	flag("EN_OTG", func(s *Snapshot) *bool { return &s.EnOTG }),
	flag("EN_HIZ", func(s *Snapshot) *bool { return &s.EnHIZ }),
	flag("EN_CHG", func(s *Snapshot) *bool { return &s.EnCharge }),
	flag("EN_ACDRV1", func(s *Snapshot) *bool { return &s.EnACDRV1 }),
	flag("EN_ACDRV2", func(s *Snapshot) *bool { return &s.EnACDRV2 }),
	flag("EN_BATOCP", func(s *Snapshot) *bool { return &s.EnBatOCP }),
	flag("STOP_WD_CHG", func(s *Snapshot) *bool { return &s.StopWDChg }),

	flag("ACRB1_STAT", func(s *Snapshot) *bool { return &s.ACRB1 }),
	flag("ACRB2_STAT", func(s *Snapshot) *bool { return &s.ACRB2 }),

	flag("VINDPM_STAT", func(s *Snapshot) *bool { return &s.VINDPM }),
	flag("IINDPM_STAT", func(s *Snapshot) *bool { return &s.IINDPM }),
	flag("IBAT_REG_STAT", func(s *Snapshot) *bool { return &s.IBATReg }),
	flag("TREG_STAT", func(s *Snapshot) *bool { return &s.TReg }),
	flag("VSYS_STAT", func(s *Snapshot) *bool { return &s.VSYSReg }),

	flag("VBUS_OVP_STAT", func(s *Snapshot) *bool { return &s.VBUSOVP }),
	flag("VAC_OVP_STAT", func(s *Snapshot) *bool { return &s.VACOVP }),
	flag("IBUS_OCP_STAT", func(s *Snapshot) *bool { return &s.IBUSOCP }),
	flag("VSYS_OVP_STAT", func(s *Snapshot) *bool { return &s.VSYSOVP }),
	flag("VBAT_OVP_STAT", func(s *Snapshot) *bool { return &s.VBATOVP }),
	flag("IBAT_OCP_STAT", func(s *Snapshot) *bool { return &s.IBATOCP }),
	flag("OTG_OVP_STAT", func(s *Snapshot) *bool { return &s.OTGOVP }),
	flag("OTG_UVP_STAT", func(s *Snapshot) *bool { return &s.OTGUVP }),
	flag("VBATOTG_LOW_STAT", func(s *Snapshot) *bool { return &s.VBATOTGLow }),
	flag("TSHUT_STAT", func(s *Snapshot) *bool { return &s.TShut }),
	flag("VSYS_SHORT_STAT", func(s *Snapshot) *bool { return &s.VSYSShort }),

	flag("CHG_TMR_STAT", func(s *Snapshot) *bool { return &s.ChgTimer }),
	flag("TRICHG_TMR_STAT", func(s *Snapshot) *bool { return &s.TrickleTimer }),
	flag("PRECHG_TMR_STAT", func(s *Snapshot) *bool { return &s.PrechgTimer }),
	flag("WD_STAT", func(s *Snapshot) *bool { return &s.Watchdog }),

	flag("TS_COLD_STAT", func(s *Snapshot) *bool { return &s.TSCold }),
	flag("TS_COOL_STAT", func(s *Snapshot) *bool { return &s.TSCool }),
	flag("TS_WARM_STAT", func(s *Snapshot) *bool { return &s.TSWarm }),
	flag("TS_HOT_STAT", func(s *Snapshot) *bool { return &s.TSHot }),

	reading("VBUS_ADC_15_0", func(s *Snapshot) *int32 { return &s.VBUSmV }),
	reading("VSYS_ADC_15_0", func(s *Snapshot) *int32 { return &s.VSYSmV }),
	reading("VBAT_ADC_15_0", func(s *Snapshot) *int32 { return &s.VBATmV }),
	reading("IBUS_ADC_15_0", func(s *Snapshot) *int32 { return &s.IBUSmA }),
	reading("IBAT_ADC_15_0", func(s *Snapshot) *int32 { return &s.IBATmA }),
	reading("TDIE_ADC_15_0", func(s *Snapshot) *int32 { return &s.TDieC }),
}

var fieldsByName = func() map[string]*field {
	m := make(map[string]*field, len(fields))
	for i := range fields {
		m[fields[i].name] = &fields[i]
	}
	return m
}()

// Names returns every known field name in declaration order.
func Names() []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

// FromFields decodes a flat name/value map. Missing names stay zero.
// Unknown names and malformed values are rejected.
func FromFields(m map[string]any) (Snapshot, error) {
	var s Snapshot

	// sorted so the first reported error is stable
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.Set(name, m[name]); err != nil {
			return Snapshot{}, err
		}
	}
	return s, nil
}

// Set assigns one field by wire name.
func (s *Snapshot) Set(name string, raw any) error {
	f, ok := fieldsByName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	v, err := coerce(raw)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", name, ErrInvalidValue, err)
	}
	return f.assign(s, v)
}

func (f *field) assign(s *Snapshot, v int64) error {
	switch f.kind {
	case kindFlag, kindEnum:
		if v < 0 || v > f.max {
			return fmt.Errorf("%s: %w: %d out of range 0..%d", f.name, ErrInvalidValue, v, f.max)
		}
		if f.kind == kindFlag {
			*f.flag(s) = v == 1
		} else {
			*f.enum(s) = uint8(v)
		}
	case kindReading:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fmt.Errorf("%s: %w: %d overflows", f.name, ErrInvalidValue, v)
		}
		*f.reading(s) = int32(v)
	}
	return nil
}

func (f *field) value(s *Snapshot) int64 {
	switch f.kind {
	case kindFlag:
		if *f.flag(s) {
			return 1
		}
		return 0
	case kindEnum:
		return int64(*f.enum(s))
	default:
		return int64(*f.reading(s))
	}
}

func coerce(raw any) (int64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, errors.New("null")
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
	}
	return cast.ToInt64E(raw)
}

// Value returns one field by wire name in its wire form.
func (s Snapshot) Value(name string) (int64, bool) {
	f, ok := fieldsByName[name]
	if !ok {
		return 0, false
	}
	return f.value(&s), true
}

// Fields returns the snapshot in wire form, every known name present.
func (s Snapshot) Fields() map[string]int64 {
	out := make(map[string]int64, len(fields))
	for i := range fields {
		out[fields[i].name] = fields[i].value(&s)
	}
	return out
}
