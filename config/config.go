// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config resolves the link port's runtime configuration: which
// GPIO chip line backs each of the four link-port pins, the operating
// mode, and the bus-idle reset threshold. It mirrors the original driver's
// environment-variable surface (SCK_PIN, SIN_PIN, SOUT_PIN, SD_PIN, MODE,
// each a physical header pin number) while adding an optional YAML file so
// a deployment can check settings in instead of exporting five variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Mode selects which link-port protocol role to run.
type Mode string

const (
	ModePrinter      Mode = "printer"
	ModePokemonTrade Mode = "pokemon_trade"
)

// PinConfig holds the four link-port lines as 1-indexed physical header
// pin numbers, matching the original driver's SCK_PIN/SIN_PIN/SOUT_PIN/
// SD_PIN environment variables.
type PinConfig struct {
	SCK  int `yaml:"sck"`
	SIN  int `yaml:"sin"`
	SOUT int `yaml:"sout"`
	SD   int `yaml:"sd"`
}

// Config is the fully resolved configuration for a run.
type Config struct {
	Mode Mode `yaml:"mode"`
	// Chip holds the "chip" setting as read from the file. cmd/gblink does
	// not use it: it searches every registered gpioioctl chip for one that
	// exposes all four link-port lines.
	Chip      string        `yaml:"chip"`
	Pins      PinConfig     `yaml:"pins"`
	IdleReset time.Duration `yaml:"idle_reset"`
}

// Load reads path as YAML if it exists, then applies environment variable
// overrides. A missing file is not an error: environment variables and
// defaults (mode=printer, idle_reset=1s) carry the configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{Mode: ModePrinter, IdleReset: time.Second}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	if cfg.IdleReset == 0 {
		cfg.IdleReset = time.Second
	}

	if v, ok := os.LookupEnv("MODE"); ok {
		cfg.Mode = Mode(v)
	}
	for _, o := range []struct {
		dst    *int
		envVar string
	}{
		{&cfg.Pins.SCK, "SCK_PIN"},
		{&cfg.Pins.SIN, "SIN_PIN"},
		{&cfg.Pins.SOUT, "SOUT_PIN"},
		{&cfg.Pins.SD, "SD_PIN"},
	} {
		if err := overridePin(o.dst, o.envVar); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func overridePin(dst *int, envVar string) error {
	v, ok := os.LookupEnv(envVar)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s=%q is not a number: %w", envVar, v, err)
	}
	*dst = n
	return nil
}
