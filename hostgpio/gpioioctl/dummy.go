// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Register a dummy chip/line so Chips and gpioreg are not empty on non-Linux
// builds, where no GPIO chardev exists.

package gpioioctl

import (
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

func makeDummyChip() {
	// No GPIO chardev exists on this OS; register a one-line placeholder
	// chip. Its line is named "DummyGPIOLine", so a lookup of a link-port
	// line name such as "GPIO4" still finds nothing.

	line := GPIOLine{
		number:    0,
		name:      "DummyGPIOLine",
		consumer:  "",
		edge:      gpio.NoEdge,
		pull:      gpio.PullNoChange,
		direction: LineDirNotSet,
	}

	chip := GPIOChip{name: "DummyGPIOChip",
		path:      "/dev/gpiochipdummy",
		label:     "Dummy GPIOChip for Testing Purposes",
		lineCount: 1,
		lines:     []*GPIOLine{&line},
	}
	Chips = append(Chips, &chip)
	if err := gpioreg.Register(&line); err != nil {
		nameStr := chip.Name()
		lineStr := line.String()
		log.Println("chip", nameStr, " gpioreg.Register(line) ", lineStr, " returned ", err)
	}
}
