// internal/config/config.go
package config

type Config struct {
	Bridge BridgeConfig `yaml:"bridge"`
}

type BridgeConfig struct {
	Serial   SerialConfig  `yaml:"serial"`
	Protocol string        `yaml:"protocol"` // "sacn" or "artnet"
	SACN     SACNConfig    `yaml:"sacn"`
	ArtNet   ArtNetConfig  `yaml:"artnet"`
	Channels int           `yaml:"channels"`
	Output   OutputConfig  `yaml:"output"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port                string `yaml:"port"`
	Baud                int    `yaml:"baud"`
	ReconnectIntervalMs int    `yaml:"reconnect_interval_ms"`
}

// ---- PROTOCOL SOURCES ----

type SACNConfig struct {
	Universe uint16 `yaml:"universe"`
}

type ArtNetConfig struct {
	Universe uint16 `yaml:"universe"`
}

// ---- OUTPUT ----

type OutputConfig struct {
	// FPS is the serial output rate. 88 is double the 44 Hz DMX refresh
	// ceiling so every network update goes out twice.
	FPS int `yaml:"fps"`
	// BufferSize is the pending-queue capacity in frames.
	BufferSize int `yaml:"buffer_size"`
}

// ---- METRICS ----

type MetricsConfig struct {
	// Listen is the Prometheus endpoint address, e.g. ":9100".
	// Empty disables the endpoint.
	Listen string `yaml:"listen"`
}
