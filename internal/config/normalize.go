// internal/config/normalize.go
package config

import "github.com/tamzrod/chargeflow/internal/panel"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	f := &cfg.Flow

	if f.Source.Transport == "" {
		f.Source.Transport = "tcp"
	}
	if f.Source.TimeoutMs == 0 {
		f.Source.TimeoutMs = 1000
	}
	normalizeSerial(&f.Source.Serial)

	if f.Display.Language == "" {
		f.Display.Language = "en"
	}
	if f.Log.Level == "" {
		f.Log.Level = "info"
	}

	if s := f.Targets.SVG; s != nil {
		if s.Width == 0 {
			s.Width = 640
		}
		if s.Height == 0 {
			s.Height = 400
		}
	}

	if p := f.Targets.Panel; p != nil {
		if p.Transport == "" {
			p.Transport = "tcp"
		}
		if p.TimeoutMs == 0 {
			p.TimeoutMs = 1000
		}
		normalizeSerial(&p.Serial)

		// Normalize device_name:
		// - ASCII already validated
		// - Truncate to max 16 characters
		if len(p.DeviceName) > panel.DeviceNameMaxChars {
			p.DeviceName = p.DeviceName[:panel.DeviceNameMaxChars]
		}
	}
}

// normalizeSerial fills the Modbus RTU line defaults (19200 8E1).
func normalizeSerial(s *SerialConfig) {
	if s.BaudRate == 0 {
		s.BaudRate = 19200
	}
	if s.DataBits == 0 {
		s.DataBits = 8
	}
	if s.StopBits == 0 {
		s.StopBits = 1
	}
	if s.Parity == "" {
		s.Parity = "E"
	}
}
