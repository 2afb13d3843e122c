// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func validConfig() *Config {
	return &Config{Bridge: BridgeConfig{
		Serial:   SerialConfig{Port: "/dev/ttyUSB0", Baud: 250000},
		Protocol: "sacn",
		SACN:     SACNConfig{Universe: 1},
		Channels: 512,
		Output:   OutputConfig{FPS: 88, BufferSize: 50},
	}}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "bridge: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}

	b := cfg.Bridge
	if b.Serial.Port != DefaultPort {
		t.Fatalf("expected default port %q, got %q", DefaultPort, b.Serial.Port)
	}
	if b.Serial.Baud != DefaultBaud {
		t.Fatalf("expected default baud %d, got %d", DefaultBaud, b.Serial.Baud)
	}
	if b.Protocol != DefaultProtocol || b.SACN.Universe != DefaultSACNUniverse {
		t.Fatalf("expected protocol defaults, got %q universe %d", b.Protocol, b.SACN.Universe)
	}
	if b.Channels != DefaultChannels || b.Output.FPS != DefaultOutputFPS || b.Output.BufferSize != DefaultBufferSize {
		t.Fatalf("expected output defaults, got %+v", b)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate_SerialRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Bridge.Serial.Port = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing serial port")
	}

	cfg = validConfig()
	cfg.Bridge.Serial.Baud = -1
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for negative baud")
	}
}

func TestValidate_Protocol(t *testing.T) {
	cfg := validConfig()
	cfg.Bridge.Protocol = "osc"
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown protocol")
	}

	cfg = validConfig()
	cfg.Bridge.SACN.Universe = 64000
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for sacn universe out of range")
	}

	cfg = validConfig()
	cfg.Bridge.Protocol = "artnet"
	cfg.Bridge.ArtNet.Universe = 40000
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for artnet universe out of range")
	}

	cfg = validConfig()
	cfg.Bridge.Protocol = "artnet"
	cfg.Bridge.ArtNet.Universe = 0
	if err := Validate(cfg); err != nil {
		t.Fatalf("artnet universe 0 is valid: %v", err)
	}
}

func TestValidate_OutputGeometry(t *testing.T) {
	cfg := validConfig()
	cfg.Bridge.Channels = 513
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for channels > 512")
	}

	cfg = validConfig()
	cfg.Bridge.Output.FPS = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for fps 0")
	}

	cfg = validConfig()
	cfg.Bridge.Output.BufferSize = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for buffer size 0")
	}
}

func TestNormalize_ProtocolCase(t *testing.T) {
	cfg := validConfig()
	cfg.Bridge.Protocol = "sACN"

	if err := Validate(cfg); err != nil {
		t.Fatalf("mixed case must validate: %v", err)
	}
	Normalize(cfg)
	if cfg.Bridge.Protocol != "sacn" {
		t.Fatalf("expected canonical protocol, got %q", cfg.Bridge.Protocol)
	}
}
