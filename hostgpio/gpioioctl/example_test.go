package gpioioctl_test

// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

import (
	"fmt"
	"log"

	"github.com/retrobus/gblink/hostgpio"
	"github.com/retrobus/gblink/hostgpio/gpioioctl"
	"periph.io/x/conn/v3/driver/driverreg"
	"periph.io/x/conn/v3/gpio"
)

// Example shows how the three link-port lines (SCK, SIN, SOUT) are requested
// as a single atomic LineSet so the peripheral role can sample and drive them
// together, with SIN overridden to output while SCK and SOUT stay inputs with
// edge detection armed on SCK.
func Example() {
	_, _ = hostgpio.Init()
	_, _ = driverreg.Init()

	if len(gpioioctl.Chips) == 0 {
		log.Fatal("no GPIO chips found")
	}
	chip := gpioioctl.Chips[0]
	defer chip.Close()

	cfg := &gpioioctl.LineSetConfig{
		Lines:            []string{"GPIO4", "GPIO17", "GPIO27"},
		DefaultDirection: gpioioctl.LineInput,
		DefaultEdge:      gpio.NoEdge,
		DefaultPull:      gpio.PullUp,
	}
	if err := cfg.AddOverrides(gpioioctl.LineInput, gpio.BothEdges, gpio.PullUp, "GPIO4"); err != nil {
		log.Fatal(err)
	}
	if err := cfg.AddOverrides(gpioioctl.LineOutput, gpio.NoEdge, gpio.PullNoChange, "GPIO17"); err != nil {
		log.Fatal(err)
	}

	ls, err := chip.LineSetFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer ls.Close()

	fmt.Println("link port lines requested:", ls.LineCount())
}
