// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// Protocol is matched case-insensitively everywhere downstream;
	// canonicalize once here.
	cfg.Bridge.Protocol = strings.ToLower(cfg.Bridge.Protocol)
}
