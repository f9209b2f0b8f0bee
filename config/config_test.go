// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWithNoFileOrEnv(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != ModePrinter {
		t.Fatalf("Mode = %v, want ModePrinter", cfg.Mode)
	}
	if cfg.IdleReset != time.Second {
		t.Fatalf("IdleReset = %v, want 1s", cfg.IdleReset)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gblink.yaml")
	yaml := "mode: printer\nchip: /dev/gpiochip0\npins:\n  sck: 7\n  sin: 8\n  sout: 10\n  sd: 11\nidle_reset: 2s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pins.SCK != 7 || cfg.Pins.SIN != 8 || cfg.Pins.SOUT != 10 || cfg.Pins.SD != 11 {
		t.Fatalf("Pins = %+v, want {7 8 10 11}", cfg.Pins)
	}
	if cfg.IdleReset != 2*time.Second {
		t.Fatalf("IdleReset = %v, want 2s", cfg.IdleReset)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for a missing config file", err)
	}
	if cfg.Mode != ModePrinter {
		t.Fatalf("Mode = %v, want ModePrinter default", cfg.Mode)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gblink.yaml")
	if err := os.WriteFile(path, []byte("pins:\n  sck: 7\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("SCK_PIN", "29")
	t.Setenv("MODE", "pokemon_trade")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pins.SCK != 29 {
		t.Fatalf("Pins.SCK = %d, want 29 (env override)", cfg.Pins.SCK)
	}
	if cfg.Mode != ModePokemonTrade {
		t.Fatalf("Mode = %v, want ModePokemonTrade", cfg.Mode)
	}
}

func TestLoadBadEnvPinValue(t *testing.T) {
	t.Setenv("SCK_PIN", "not-a-number")
	if _, err := Load(""); err == nil {
		t.Fatal("Load() error = nil, want an error for a non-numeric SCK_PIN")
	}
}
