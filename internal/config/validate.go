// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	b := cfg.Bridge

	// ------------------------------------------------------------
	// SERIAL LINK
	// ------------------------------------------------------------

	if b.Serial.Port == "" {
		return fmt.Errorf("bridge.serial.port is required")
	}
	if b.Serial.Baud <= 0 {
		return fmt.Errorf("bridge.serial.baud must be > 0, got %d", b.Serial.Baud)
	}
	if b.Serial.ReconnectIntervalMs < 0 {
		return fmt.Errorf("bridge.serial.reconnect_interval_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// PROTOCOL SOURCE
	// ------------------------------------------------------------

	switch b.Protocol {
	case "sacn", "SACN", "sACN":
		if b.SACN.Universe < 1 || b.SACN.Universe > 63999 {
			return fmt.Errorf("bridge.sacn.universe must be in 1..63999, got %d", b.SACN.Universe)
		}
	case "artnet", "ARTNET", "ArtNet", "Artnet":
		if b.ArtNet.Universe > 32767 {
			return fmt.Errorf("bridge.artnet.universe must be a 15-bit port-address, got %d", b.ArtNet.Universe)
		}
	default:
		return fmt.Errorf("bridge.protocol must be %q or %q, got %q", "sacn", "artnet", b.Protocol)
	}

	// ------------------------------------------------------------
	// OUTPUT GEOMETRY
	// ------------------------------------------------------------

	if b.Channels < 1 || b.Channels > 512 {
		return fmt.Errorf("bridge.channels must be in 1..512, got %d", b.Channels)
	}
	if b.Output.FPS < 1 || b.Output.FPS > 1000 {
		return fmt.Errorf("bridge.output.fps must be in 1..1000, got %d", b.Output.FPS)
	}
	if b.Output.BufferSize < 1 {
		return fmt.Errorf("bridge.output.buffer_size must be >= 1, got %d", b.Output.BufferSize)
	}

	return nil
}
