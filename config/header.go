// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"periph.io/x/host/v3/distro"
)

// header40 maps each of the 40 physical header pins (1-indexed) to its BCM
// GPIO number, or -1 for a ground/power pin that carries no GPIO.
var header40 = [...]int{
	-1, -1, 2, -1, 3, -1, 4, 14, -1, 15,
	17, 18, 27, -1, 22, 23, -1, 24, 10, -1,
	9, 25, 11, 8, -1, 7, 0, 1, 5, -1,
	6, 12, 13, -1, 19, 16, 26, 20, -1, 21,
}

// pinBRev1Swaps overrides the handful of header entries that differ on the
// original 26-pin Raspberry Pi B Rev 1 header.
var pinBRev1Swaps = map[int]int{3: 0, 5: 1, 13: 21}

const (
	shortHeaderPins = 26
	longHeaderPins  = 40
)

// ResolveLine converts a 1-indexed physical header pin number to a BCM
// GPIO number, honoring the short 26-pin header on early Raspberry Pi
// boards and the B Rev 1's pin swap.
func ResolveLine(physicalPin int) (int, error) {
	model := distro.DTModel()
	maxPins := longHeaderPins
	var swaps map[int]int
	switch {
	case strings.Contains(model, "Pi Model B Rev 1"):
		maxPins = shortHeaderPins
		swaps = pinBRev1Swaps
	case strings.Contains(model, "Pi Model B Rev 2"),
		strings.Contains(model, "Pi Model A") && !strings.Contains(model, "Plus"):
		maxPins = shortHeaderPins
	}

	if physicalPin < 3 || physicalPin > maxPins {
		return 0, fmt.Errorf("config: physical pin %d is not a GPIO pin in range [3, %d]", physicalPin, maxPins)
	}
	if bcm, ok := swaps[physicalPin]; ok {
		return bcm, nil
	}
	bcm := header40[physicalPin-1]
	if bcm < 0 {
		return 0, fmt.Errorf("config: physical pin %d is ground or power, not a GPIO pin", physicalPin)
	}
	return bcm, nil
}

// LineName returns the chip-line name hostgpio's backends register a BCM
// GPIO number under.
func LineName(bcm int) string {
	return fmt.Sprintf("GPIO%d", bcm)
}
