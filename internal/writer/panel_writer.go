// internal/writer/panel_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/panel"
	"github.com/tamzrod/chargeflow/internal/render"
)

var log = logger.WithPrefix("panel writer: ")

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// Plan is the fully-built destination of one panel block.
type Plan struct {
	Endpoint   string
	UnitID     uint16
	BaseSlot   uint16
	DeviceName string
}

// StatusWriter is the delivery-only contract for acquisition health.
type StatusWriter interface {
	WriteStatus(h panel.Health) error
}

// PanelWriter renders the visual state into a panel register block.
// It records Set* calls and delivers them on Flush; WriteStatus delivers
// health immediately. Not safe for concurrent use: the owning goroutine
// calls render.Apply and WriteStatus.
type PanelWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	pending  panel.Block
	last     []uint16
}

var (
	_ render.Target  = (*PanelWriter)(nil)
	_ render.Flusher = (*PanelWriter)(nil)
	_ StatusWriter   = (*PanelWriter)(nil)
)

// NewPanelWriter builds a writer that re-asserts the full block on first write.
func NewPanelWriter(plan Plan, cli endpointClient) *PanelWriter {
	return &PanelWriter{
		plan:     plan,
		cli:      cli,
		needFull: true,
		pending: panel.Block{
			Health: panel.Health{Code: panel.HealthUnknown},
			Name:   panel.EncodeDeviceName(plan.DeviceName),
		},
	}
}

func (w *PanelWriter) SetPath(seg classify.Segment, d classify.PathDecision) {
	if seg < 0 || int(seg) >= panel.SlotPathSlots {
		return
	}
	w.pending.Visual.Paths[seg] = panel.PackPath(d)
}

func (w *PanelWriter) SetIcon(icon render.Icon, color classify.ColorToken, dimmed bool) {
	switch icon {
	case render.IconSource:
		w.pending.Visual.SourceIcon = color.Code()
	case render.IconBattery:
		w.pending.Visual.BatteryIcon = color.Code()
		w.pending.Visual.BatteryDimmed = 0
		if dimmed {
			w.pending.Visual.BatteryDimmed = 1
		}
	}
}

// SetText is a no-op: the panel carries no free text.
func (w *PanelWriter) SetText(render.TextField, string) {}

func (w *PanelWriter) SetIndicator(ind render.Indicator, visible bool, color classify.ColorToken) {
	var bit uint16
	switch ind {
	case render.IndicatorFault:
		bit = panel.IndicatorFaultBit
	case render.IndicatorTemp:
		bit = panel.IndicatorTempBit
		w.pending.Visual.TempColor = 0
		if visible {
			w.pending.Visual.TempColor = color.Code()
		}
	default:
		return
	}
	if visible {
		w.pending.Visual.Indicators |= bit
	} else {
		w.pending.Visual.Indicators &^= bit
	}
}

func (w *PanelWriter) SetBanner(status classify.OverallStatus, _ string) {
	w.pending.Visual.OverallKind = uint16(status.Kind)
	w.pending.Visual.OverallSeverity = status.Severity.Code()
}

// Flush delivers the recorded visual state.
func (w *PanelWriter) Flush() error {
	return w.deliver()
}

// WriteStatus delivers an acquisition health snapshot.
func (w *PanelWriter) WriteStatus(h panel.Health) error {
	w.pending.Health = h
	return w.deliver()
}

// deliver writes the full block when needed, otherwise only the
// changed runs. On any write failure the next call re-asserts the full block.
func (w *PanelWriter) deliver() error {
	if w.cli == nil {
		return fmt.Errorf("panel writer: missing client for endpoint %s", w.plan.Endpoint)
	}
	if w.plan.UnitID > 255 {
		return fmt.Errorf("panel writer: unit id %d out of range", w.plan.UnitID)
	}

	base, err := w.baseAddr()
	if err != nil {
		return err
	}
	unitID := uint8(w.plan.UnitID)
	regs := panel.Encode(w.pending)

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if w.needFull || len(w.last) != len(regs) {
		if err := w.cli.WriteRegisters(unitID, base, regs); err != nil {
			w.needFull = true
			return fmt.Errorf("panel writer: full block write failed: %w", err)
		}
		w.needFull = false
		w.last = regs
		return nil
	}

	var errs []string

	for _, r := range changedRuns(w.last, regs) {
		if err := w.cli.WriteRegisters(unitID, base+uint16(r.start), regs[r.start:r.end]); err != nil {
			errs = append(errs, fmt.Sprintf("slots %d-%d write failed: %v", r.start, r.end-1, err))
			continue
		}
		copy(w.last[r.start:r.end], regs[r.start:r.end])
		log.Debug("ep=%s unit=%d slots %d-%d updated", w.plan.Endpoint, unitID, r.start, r.end-1)
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next success.
		w.needFull = true
		return errors.New("panel writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (w *PanelWriter) baseAddr() (uint16, error) {
	// Each panel owns a fixed SlotsPerPanel block.
	addr := uint32(w.plan.BaseSlot) * panel.SlotsPerPanel
	if addr+panel.SlotsPerPanel > 0x10000 {
		return 0, fmt.Errorf("panel writer: base slot %d out of address range", w.plan.BaseSlot)
	}
	return uint16(addr), nil
}

type run struct{ start, end int }

// changedRuns returns the contiguous ranges where next differs from prev.
func changedRuns(prev, next []uint16) []run {
	var out []run
	start := -1
	for i := range next {
		if prev[i] != next[i] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, run{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, run{start, len(next)})
	}
	return out
}
