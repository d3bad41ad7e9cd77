// internal/render/memory.go
package render

import (
	"sync"
	"time"

	"github.com/tamzrod/chargeflow/internal/classify"
)

type IconState struct {
	Color  classify.ColorToken `json:"color"`
	Dimmed bool                `json:"dimmed"`
}

type IndicatorState struct {
	Visible bool                `json:"visible"`
	Color   classify.ColorToken `json:"color"`
}

type BannerState struct {
	Status classify.OverallStatus `json:"status"`
	Text   string                 `json:"text"`
}

// State is one committed render pass.
type State struct {
	Paths      map[string]classify.PathDecision `json:"paths"`
	Icons      map[string]IconState             `json:"icons"`
	Texts      map[string]string                `json:"texts"`
	Indicators map[string]IndicatorState        `json:"indicators"`
	Banner     BannerState                      `json:"banner"`

	Passes    uint64    `json:"passes"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newState() State {
	return State{
		Paths:      make(map[string]classify.PathDecision),
		Icons:      make(map[string]IconState),
		Texts:      make(map[string]string),
		Indicators: make(map[string]IndicatorState),
	}
}

func (s State) clone() State {
	out := newState()
	for k, v := range s.Paths {
		out.Paths[k] = v
	}
	for k, v := range s.Icons {
		out.Icons[k] = v
	}
	for k, v := range s.Texts {
		out.Texts[k] = v
	}
	for k, v := range s.Indicators {
		out.Indicators[k] = v
	}
	out.Banner = s.Banner
	out.Passes = s.Passes
	out.UpdatedAt = s.UpdatedAt
	return out
}

// Memory keeps the last committed pass in memory.
// Writes go to a pending pass; Flush commits it.
type Memory struct {
	mu        sync.RWMutex
	pending   State
	committed State
	now       func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		pending:   newState(),
		committed: newState(),
		now:       time.Now,
	}
}

func (m *Memory) SetPath(seg classify.Segment, d classify.PathDecision) {
	m.mu.Lock()
	m.pending.Paths[seg.String()] = d
	m.mu.Unlock()
}

func (m *Memory) SetIcon(icon Icon, color classify.ColorToken, dimmed bool) {
	m.mu.Lock()
	m.pending.Icons[icon.String()] = IconState{Color: color, Dimmed: dimmed}
	m.mu.Unlock()
}

func (m *Memory) SetText(field TextField, text string) {
	m.mu.Lock()
	m.pending.Texts[field.String()] = text
	m.mu.Unlock()
}

func (m *Memory) SetIndicator(ind Indicator, visible bool, color classify.ColorToken) {
	m.mu.Lock()
	m.pending.Indicators[ind.String()] = IndicatorState{Visible: visible, Color: color}
	m.mu.Unlock()
}

func (m *Memory) SetBanner(status classify.OverallStatus, label string) {
	m.mu.Lock()
	m.pending.Banner = BannerState{Status: status, Text: label}
	m.mu.Unlock()
}

// Flush commits the pending pass.
func (m *Memory) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending.Passes = m.committed.Passes + 1
	m.pending.UpdatedAt = m.now()
	m.committed = m.pending.clone()
	return nil
}

// State returns a copy of the last committed pass.
func (m *Memory) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.committed.clone()
}
