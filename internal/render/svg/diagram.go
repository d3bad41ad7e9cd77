// internal/render/svg/diagram.go
package svg

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tamzrod/chargeflow/internal/classify"
	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/render"
)

var log = logger.WithPrefix("svg: ")

const (
	DefaultWidth  = 640
	DefaultHeight = 400
)

type point struct{ x, y int }

type box struct{ x, y, w, h int }

func (b box) center() point { return point{b.x + b.w/2, b.y + b.h/2} }

// fixed geometry on a 640x400 canvas, scaled to the configured size
var (
	sourceBox  = box{30, 150, 110, 70}
	chipBox    = box{265, 150, 110, 70}
	systemBox  = box{500, 60, 110, 60}
	batteryBox = box{500, 270, 110, 60}

	segmentLines = [classify.SegmentCount][2]point{
		classify.SourceToChip:  {{140, 185}, {265, 185}},
		classify.ChipToSystem:  {{375, 165}, {500, 90}},
		classify.ChipToBattery: {{375, 195}, {500, 285}},
		classify.BatteryToChip: {{500, 315}, {375, 210}},
	}
)

type iconState struct {
	color  classify.ColorToken
	dimmed bool
}

type indicatorState struct {
	visible bool
	color   classify.ColorToken
}

// Diagram is a render.Target that draws the power-flow diagram as SVG.
type Diagram struct {
	path          string
	width, height int

	mu         sync.Mutex
	paths      [classify.SegmentCount]classify.PathDecision
	icons      map[render.Icon]iconState
	texts      map[render.TextField]string
	indicators map[render.Indicator]indicatorState
	banner     classify.OverallStatus
	label      string
}

// New returns a diagram target writing to path on Flush.
// An empty path makes Flush a no-op; Render still works.
func New(path string, width, height int) *Diagram {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	d := &Diagram{
		path:       path,
		width:      width,
		height:     height,
		icons:      make(map[render.Icon]iconState),
		texts:      make(map[render.TextField]string),
		indicators: make(map[render.Indicator]indicatorState),
	}
	for i := range d.paths {
		d.paths[i] = classify.Hidden
	}
	return d
}

func (d *Diagram) SetPath(seg classify.Segment, dec classify.PathDecision) {
	if seg < 0 || seg >= classify.SegmentCount {
		return
	}
	d.mu.Lock()
	d.paths[seg] = dec
	d.mu.Unlock()
}

func (d *Diagram) SetIcon(icon render.Icon, color classify.ColorToken, dimmed bool) {
	d.mu.Lock()
	d.icons[icon] = iconState{color: color, dimmed: dimmed}
	d.mu.Unlock()
}

func (d *Diagram) SetText(field render.TextField, text string) {
	d.mu.Lock()
	d.texts[field] = text
	d.mu.Unlock()
}

func (d *Diagram) SetIndicator(ind render.Indicator, visible bool, color classify.ColorToken) {
	d.mu.Lock()
	d.indicators[ind] = indicatorState{visible: visible, color: color}
	d.mu.Unlock()
}

func (d *Diagram) SetBanner(status classify.OverallStatus, label string) {
	d.mu.Lock()
	d.banner = status
	d.label = label
	d.mu.Unlock()
}

// Flush renders and atomically replaces the target file.
func (d *Diagram) Flush() error {
	if d.path == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".chargeflow-*.svg")
	if err != nil {
		return fmt.Errorf("svg: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("svg: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("svg: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("svg: replace %s: %w", d.path, err)
	}

	log.Debug("wrote %s (%d bytes)", d.path, buf.Len())
	return nil
}

// Render draws the current state to w.
func (d *Diagram) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, err := chart.SVG(d.width, d.height)
	if err != nil {
		return fmt.Errorf("svg: renderer: %w", err)
	}
	if f, err := chart.GetDefaultFont(); err == nil {
		r.SetFont(f)
	}

	c := canvas{r: r, sx: float64(d.width) / DefaultWidth, sy: float64(d.height) / DefaultHeight}

	d.drawBanner(c)
	d.drawComponents(c)
	for _, seg := range classify.Segments() {
		d.drawPath(c, seg)
	}
	d.drawIndicators(c)
	d.drawReadouts(c)

	return r.Save(w)
}

func paint(t classify.ColorToken) (drawing.Color, bool) {
	hex, ok := render.Palette[t]
	if !ok {
		return drawing.ColorTransparent, false
	}
	return drawing.ColorFromHex(hex), true
}

func (d *Diagram) drawBanner(c canvas) {
	col, ok := paint(d.banner.Severity)
	if !ok {
		col, _ = paint(classify.ColorIdle)
	}

	c.r.ResetStyle()
	c.r.SetFillColor(col.WithAlpha(48))
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(1)
	c.rect(box{20, 10, 600, 36})
	c.r.FillStroke()

	c.r.ResetStyle()
	c.r.SetFontColor(drawing.ColorBlack)
	c.r.SetFontSize(13)
	c.text(d.label, point{36, 34})
}

func (d *Diagram) drawComponents(c canvas) {
	outline := func(b box, name string, st iconState, hasIcon bool) {
		stroke := drawing.ColorFromHex("6b7280")
		if hasIcon {
			if col, ok := paint(st.color); ok {
				stroke = col
			}
		}
		if st.dimmed {
			stroke = stroke.WithAlpha(77)
		}

		c.r.ResetStyle()
		c.r.SetFillColor(drawing.ColorWhite)
		c.r.SetStrokeColor(stroke)
		c.r.SetStrokeWidth(3)
		c.rect(b)
		c.r.FillStroke()

		c.r.ResetStyle()
		c.r.SetFontColor(drawing.ColorBlack)
		c.r.SetFontSize(11)
		c.text(name, point{b.x + 8, b.y + 18})
	}

	src, okSrc := d.icons[render.IconSource]
	bat, okBat := d.icons[render.IconBattery]

	outline(sourceBox, "VBUS", src, okSrc)
	outline(chipBox, "CHARGER", iconState{}, false)
	outline(systemBox, "SYS", iconState{}, false)
	outline(batteryBox, "BAT", bat, okBat)
}

func (d *Diagram) drawPath(c canvas, seg classify.Segment) {
	dec := d.paths[seg]
	col, ok := paint(dec.Color)
	if !ok {
		return
	}
	if dec.Static {
		col = col.WithAlpha(128)
	}

	from, to := segmentLines[seg][0], segmentLines[seg][1]

	c.r.ResetStyle()
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(4)
	if dec.Animated {
		c.r.SetStrokeDashArray([]float64{10, 6})
	}
	c.line(from, to)
	c.r.Stroke()

	if !dec.Animated {
		return
	}

	// arrowhead on the end power flows toward
	tip, tail := to, from
	if dec.Reversed {
		tip, tail = from, to
	}
	c.r.ResetStyle()
	c.r.SetFillColor(col)
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(1)
	c.arrow(tail, tip)
	c.r.FillStroke()
}

func (d *Diagram) drawIndicators(c canvas) {
	if st := d.indicators[render.IndicatorFault]; st.visible {
		col, _ := paint(st.color)
		c.r.ResetStyle()
		c.r.SetFillColor(col)
		c.r.SetStrokeColor(col)
		c.circle(point{chipBox.x + chipBox.w - 10, chipBox.y + 12}, 7)

		c.r.ResetStyle()
		c.r.SetFontColor(drawing.ColorWhite)
		c.r.SetFontSize(10)
		c.text("!", point{chipBox.x + chipBox.w - 12, chipBox.y + 16})
	}

	if st := d.indicators[render.IndicatorTemp]; st.visible {
		col, _ := paint(st.color)
		c.r.ResetStyle()
		c.r.SetFillColor(col)
		c.r.SetStrokeColor(col)
		c.circle(point{batteryBox.x + batteryBox.w - 10, batteryBox.y + 12}, 6)
	}
}

func (d *Diagram) drawReadouts(c canvas) {
	c.r.ResetStyle()
	c.r.SetFontColor(drawing.ColorFromHex("374151"))
	c.r.SetFontSize(10)

	at := func(field render.TextField, p point) {
		if s, ok := d.texts[field]; ok {
			c.text(s, p)
		}
	}

	at(render.TextVBUS, point{sourceBox.x + 8, sourceBox.y + 40})
	at(render.TextAdapter, point{sourceBox.x + 8, sourceBox.y + 58})
	at(render.TextIBUS, point{sourceBox.x + 8, sourceBox.y + sourceBox.h + 16})

	at(render.TextTDie, point{chipBox.x + 8, chipBox.y + 40})
	at(render.TextChargeState, point{chipBox.x + 8, chipBox.y + 58})

	at(render.TextVSYS, point{systemBox.x + 8, systemBox.y + 40})
	at(render.TextSysRegulation, point{systemBox.x + 8, systemBox.y + systemBox.h + 16})

	at(render.TextVBAT, point{batteryBox.x + 8, batteryBox.y + 36})
	at(render.TextIBAT, point{batteryBox.x + 8, batteryBox.y + 52})
}

// canvas scales fixed geometry onto the renderer.
type canvas struct {
	r      chart.Renderer
	sx, sy float64
}

func (c canvas) pt(p point) (int, int) {
	return int(math.Round(float64(p.x) * c.sx)), int(math.Round(float64(p.y) * c.sy))
}

func (c canvas) rect(b box) {
	c.r.MoveTo(c.pt(point{b.x, b.y}))
	c.r.LineTo(c.pt(point{b.x + b.w, b.y}))
	c.r.LineTo(c.pt(point{b.x + b.w, b.y + b.h}))
	c.r.LineTo(c.pt(point{b.x, b.y + b.h}))
	c.r.Close()
}

func (c canvas) line(from, to point) {
	c.r.MoveTo(c.pt(from))
	c.r.LineTo(c.pt(to))
}

func (c canvas) arrow(tail, tip point) {
	const size = 10.0

	dx, dy := float64(tip.x-tail.x), float64(tip.y-tail.y)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ux, uy := dx/n, dy/n

	base := point{int(float64(tip.x) - ux*size), int(float64(tip.y) - uy*size)}
	left := point{int(float64(base.x) - uy*size/2), int(float64(base.y) + ux*size/2)}
	right := point{int(float64(base.x) + uy*size/2), int(float64(base.y) - ux*size/2)}

	c.r.MoveTo(c.pt(tip))
	c.r.LineTo(c.pt(left))
	c.r.LineTo(c.pt(right))
	c.r.Close()
}

func (c canvas) circle(p point, radius float64) {
	x, y := c.pt(p)
	c.r.Circle(radius*math.Min(c.sx, c.sy), x, y)
}

func (c canvas) text(s string, p point) {
	x, y := c.pt(p)
	c.r.Text(html.EscapeString(s), x, y)
}
