// Package config loads the host's run configuration from a TOML file.
// The core package itself never reads configuration; only cmd/
// binaries depend on this package.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// OpcodePolicy selects what happens when the CPU decodes an
// unimplemented opcode.
type OpcodePolicy string

const (
	// PolicyAbort treats it as a fatal error (cpu.UnimplementedOpcodeError).
	PolicyAbort OpcodePolicy = "abort"
	// PolicyLog logs the event and continues as if it were a NOP.
	PolicyLog OpcodePolicy = "log"
)

// Config is the run configuration loaded from a TOML file.
type Config struct {
	BootROMPath              string       `toml:"boot_rom_path"`
	CartridgePath             string       `toml:"cartridge_path"`
	UnimplementedOpcodePolicy OpcodePolicy `toml:"unimplemented_opcode_policy"`
	LogLevel                  string       `toml:"log_level"`
	FrameLimitFPS             float64      `toml:"frame_limit_fps"`
}

// defaults applied to any field left zero-valued in the file.
func defaults() Config {
	return Config{
		UnimplementedOpcodePolicy: PolicyAbort,
		LogLevel:                  "info",
		FrameLimitFPS:             59.7,
	}
}

// Load reads and parses a TOML config file at path, filling in
// defaults for any field the file omits.
func Load(path string) (Config, error) {
	cfg := defaults()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	if cfg.UnimplementedOpcodePolicy != PolicyAbort && cfg.UnimplementedOpcodePolicy != PolicyLog {
		return Config{}, fmt.Errorf("config: unimplemented_opcode_policy must be %q or %q, got %q",
			PolicyAbort, PolicyLog, cfg.UnimplementedOpcodePolicy)
	}
	return cfg, nil
}

// Strict reports whether the policy should abort (true) or log and
// continue (false) — the value assigned directly to cpu.CPU.Strict.
func (c Config) Strict() bool {
	return c.UnimplementedOpcodePolicy == PolicyAbort
}
