// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command gblink emulates the peripheral side of a handheld game console's
// 3-wire link port. In printer mode it answers the stock thermal printer
// protocol and previews received image data on the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/retrobus/gblink/config"
	"github.com/retrobus/gblink/hostgpio"
	"github.com/retrobus/gblink/hostgpio/gpioioctl"
	"github.com/retrobus/gblink/link"
	"github.com/retrobus/gblink/printer"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

func main() {
	configPath := flag.String("config", "", "path to a gblink.yaml configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Mode == config.ModePokemonTrade {
		log.Print("gblink: pokemon_trade mode is a stub; nothing to do")
		return nil
	}

	if _, err := hostgpio.Init(); err != nil {
		return err
	}

	names, err := lineNames(cfg.Pins)
	if err != nil {
		return err
	}

	edges, bus, err := openLineSet(names)
	if err != nil {
		log.Printf("gblink: no chip covers SCK/SIN/SOUT/SD as one LineSet (%v); falling back to per-pin gpioreg lines", err)
		edges, bus, err = openPins(names)
		if err != nil {
			return err
		}
	}

	loop := printer.NewLoop(edges, bus.SINLine(), bus.SOUTLine(), printer.NewConsoleSink(), cfg.IdleReset)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Print("gblink: printer mode ready")
	return loop.Run(ctx)
}

// linkNames is the link port's four lines resolved to chip line names
// (config.LineName's "GPIOn" format), keyed by role.
type linkNames struct {
	SCK, SIN, SOUT, SD string
}

func lineNames(pins config.PinConfig) (linkNames, error) {
	var n linkNames
	for _, p := range []struct {
		physical int
		dst      *string
	}{
		{pins.SCK, &n.SCK},
		{pins.SIN, &n.SIN},
		{pins.SOUT, &n.SOUT},
		{pins.SD, &n.SD},
	} {
		bcm, err := config.ResolveLine(p.physical)
		if err != nil {
			return linkNames{}, err
		}
		*p.dst = config.LineName(bcm)
	}
	return n, nil
}

// openLineSet is the primary path: it resolves the link port's four lines
// as one atomic gpioioctl LineSet request (SCK edge-armed input, SOUT and
// SD plain inputs, SIN an output), so the kernel configures all four lines
// in a single ioctl instead of one request per line. It requires a single
// chip exposing all four line names; chips that split them across chardevs
// (or a kernel without the v2 chardev ioctl at all, in which case only
// hostgpio/sysfs registers any lines) fail here and the caller falls back
// to openPins.
func openLineSet(n linkNames) (link.EdgeSource, *link.Bus, error) {
	chip, err := findChip(n)
	if err != nil {
		return nil, nil, err
	}

	cfg := &gpioioctl.LineSetConfig{
		Lines:            []string{n.SCK, n.SOUT, n.SD, n.SIN},
		DefaultDirection: gpioioctl.LineInput,
		DefaultEdge:      gpio.NoEdge,
		DefaultPull:      gpio.PullUp,
	}
	if err := cfg.AddOverrides(gpioioctl.LineInput, gpio.BothEdges, gpio.PullUp, n.SCK); err != nil {
		return nil, nil, err
	}
	if err := cfg.AddOverrides(gpioioctl.LineOutput, gpio.NoEdge, gpio.PullNoChange, n.SIN); err != nil {
		return nil, nil, err
	}

	ls, err := chip.LineSetFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	sck, ok := ls.ByName(n.SCK).(*gpioioctl.LineSetLine)
	if !ok {
		return nil, nil, errPinNotFound(n.SCK)
	}
	sin, ok := ls.ByName(n.SIN).(*gpioioctl.LineSetLine)
	if !ok {
		return nil, nil, errPinNotFound(n.SIN)
	}
	sout, ok := ls.ByName(n.SOUT).(*gpioioctl.LineSetLine)
	if !ok {
		return nil, nil, errPinNotFound(n.SOUT)
	}

	bus := &link.Bus{SCK: sck, SIN: sin, SOUT: sout}
	return link.NewGroupEdgeSource(ls, sck.Number()), bus, nil
}

// findChip returns the one registered gpioioctl chip exposing all four of
// the link port's line names, so they can be requested together as a
// LineSet.
func findChip(n linkNames) (*gpioioctl.GPIOChip, error) {
	for _, chip := range gpioioctl.Chips {
		if chip.ByName(n.SCK) != nil && chip.ByName(n.SIN) != nil &&
			chip.ByName(n.SOUT) != nil && chip.ByName(n.SD) != nil {
			return chip, nil
		}
	}
	return nil, errors.New("no chip exposes SCK/SIN/SOUT/SD together")
}

// openPins is the fallback path: it resolves each line individually through
// gpioreg, the way a sysfs-backed deployment or a chip that splits the four
// lines across chardevs has to, since neither sysfs pins nor split lines
// can be requested as one LineSet.
func openPins(n linkNames) (link.EdgeSource, *link.Bus, error) {
	sck, err := resolvePin(n.SCK)
	if err != nil {
		return nil, nil, err
	}
	sin, err := resolvePin(n.SIN)
	if err != nil {
		return nil, nil, err
	}
	sout, err := resolvePin(n.SOUT)
	if err != nil {
		return nil, nil, err
	}

	// sysfs pins have no bias control and reject PullUp; they are
	// configured with PullNoChange instead.
	if err := sck.In(gpio.PullUp, gpio.BothEdges); err != nil {
		if err := sck.In(gpio.PullNoChange, gpio.BothEdges); err != nil {
			return nil, nil, err
		}
	}
	if err := sout.In(gpio.PullUp, gpio.NoEdge); err != nil {
		if err := sout.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return nil, nil, err
		}
	}
	if err := sin.Out(gpio.Low); err != nil {
		return nil, nil, err
	}

	bus := &link.Bus{SCK: sck, SIN: sin, SOUT: sout}
	return bus.SCKEdges(), bus, nil
}

func resolvePin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errPinNotFound(name)
	}
	return p, nil
}

type errPinNotFound string

func (e errPinNotFound) Error() string {
	return "gblink: no such GPIO line: " + string(e)
}
