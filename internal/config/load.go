// internal/config/load.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults matching the reference deployment.
const (
	DefaultPort         = "/dev/ttyUSB0"
	DefaultBaud         = 250000
	DefaultProtocol     = "sacn"
	DefaultSACNUniverse = 1
	DefaultChannels     = 512
	DefaultOutputFPS    = 88
	DefaultBufferSize   = 50
	DefaultReconnectMs  = 2000
)

// Load reads and decodes a YAML config file and fills in defaults for
// omitted values. Validation is a separate step.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	b := &cfg.Bridge

	if b.Serial.Port == "" {
		b.Serial.Port = DefaultPort
	}
	if b.Serial.Baud == 0 {
		b.Serial.Baud = DefaultBaud
	}
	if b.Serial.ReconnectIntervalMs == 0 {
		b.Serial.ReconnectIntervalMs = DefaultReconnectMs
	}
	if b.Protocol == "" {
		b.Protocol = DefaultProtocol
	}
	if b.SACN.Universe == 0 {
		b.SACN.Universe = DefaultSACNUniverse
	}
	if b.Channels == 0 {
		b.Channels = DefaultChannels
	}
	if b.Output.FPS == 0 {
		b.Output.FPS = DefaultOutputFPS
	}
	if b.Output.BufferSize == 0 {
		b.Output.BufferSize = DefaultBufferSize
	}
}
