package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTemp(t, `
boot_rom_path = "boot.bin"
cartridge_path = "game.gb"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.UnimplementedOpcodePolicy != PolicyAbort {
		t.Fatalf("expected default policy abort, got %s", cfg.UnimplementedOpcodePolicy)
	}
	if cfg.FrameLimitFPS != 59.7 {
		t.Fatalf("expected default frame limit 59.7, got %v", cfg.FrameLimitFPS)
	}
	if !cfg.Strict() {
		t.Fatalf("abort policy should report Strict() true")
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := writeTemp(t, `unimplemented_opcode_policy = "ignore"`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unrecognized opcode policy")
	}
}

func TestLogPolicyIsNotStrict(t *testing.T) {
	path := writeTemp(t, `unimplemented_opcode_policy = "log"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Strict() {
		t.Fatalf("log policy should report Strict() false")
	}
}
