// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import "testing"

func TestResolveLineKnownGPIOPin(t *testing.T) {
	// Physical pin 7 is BCM GPIO4 on every header this table carries.
	bcm, err := ResolveLine(7)
	if err != nil {
		t.Fatalf("ResolveLine(7) error = %v", err)
	}
	if bcm != 4 {
		t.Fatalf("ResolveLine(7) = %d, want 4", bcm)
	}
}

func TestResolveLineGroundPin(t *testing.T) {
	if _, err := ResolveLine(6); err == nil {
		t.Fatal("ResolveLine(6) error = nil, want an error for a ground pin")
	}
}

func TestResolveLineOutOfRange(t *testing.T) {
	if _, err := ResolveLine(1); err == nil {
		t.Fatal("ResolveLine(1) error = nil, want an error for pin 1 (power rail)")
	}
	if _, err := ResolveLine(99); err == nil {
		t.Fatal("ResolveLine(99) error = nil, want an error for an out-of-range pin")
	}
}

func TestLineName(t *testing.T) {
	if got, want := LineName(4), "GPIO4"; got != want {
		t.Fatalf("LineName(4) = %q, want %q", got, want)
	}
}
