// internal/poller/scenario/scenario.go
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/chargeflow/internal/logger"
	"github.com/tamzrod/chargeflow/internal/snapshot"
)

//go:embed scenarios.yaml
var builtin []byte

var log = logger.WithPrefix("scenario: ")

// Scenario is one canned snapshot.
type Scenario struct {
	Name     string
	Snapshot snapshot.Snapshot
}

type file struct {
	Scenarios []entry `yaml:"scenarios"`
}

type entry struct {
	Name   string         `yaml:"name"`
	Fields map[string]any `yaml:"fields"`
}

// Synthesized ADC readings for scenarios that do not give them.
const (
	SynthVBUSmV = 12000
	SynthVBATmV = 7800
	SynthVSYSmV = 8000
	SynthIBUSmA = 1500
	SynthTDieC  = 45
)

// Default returns the built-in scenario set.
func Default() ([]Scenario, error) {
	return Parse(builtin)
}

// Load reads a scenario file; an empty path means the built-in set.
func Load(path string) ([]Scenario, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse strictly decodes a scenario document.
func Parse(data []byte) ([]Scenario, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.New("scenario: no scenarios defined")
	}

	out := make([]Scenario, 0, len(f.Scenarios))
	for i, e := range f.Scenarios {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("scenario-%d", i+1)
		}
		s, err := snapshot.FromFields(e.Fields)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		synthesize(&s, e.Fields)
		out = append(out, Scenario{Name: name, Snapshot: s})
	}
	return out, nil
}

// synthesize fills ADC readings the scenario left out.
func synthesize(s *snapshot.Snapshot, given map[string]any) {
	missing := func(name string) bool {
		_, ok := given[name]
		return !ok
	}

	if missing("VBUS_ADC_15_0") && s.VBUSPresent {
		s.VBUSmV = SynthVBUSmV
	}
	if missing("VBAT_ADC_15_0") && s.VBATPresent {
		s.VBATmV = SynthVBATmV
	}
	if missing("VSYS_ADC_15_0") && (s.VBUSPresent || s.VBATPresent) {
		s.VSYSmV = SynthVSYSmV
	}
	if missing("IBUS_ADC_15_0") {
		s.IBUSmA = SynthIBUSmA
	}
	if missing("TDIE_ADC_15_0") {
		s.TDieC = SynthTDieC
	}
}

// Source cycles through scenarios in order, wrapping at the end.
type Source struct {
	mu   sync.Mutex
	list []Scenario
	next int
	last string
}

func New(list []Scenario) (*Source, error) {
	if len(list) == 0 {
		return nil, errors.New("scenario: empty scenario list")
	}
	return &Source{list: list}, nil
}

// Read implements poller.Source.
func (s *Source) Read() (snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.list[s.next]
	s.next = (s.next + 1) % len(s.list)
	s.last = sc.Name

	log.Debug("now showing %q", sc.Name)
	return sc.Snapshot, nil
}

// Last returns the name of the scenario most recently read.
func (s *Source) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
