// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// PinLine adapts a periph.io/x/conn/v3/gpio.PinIO — satisfied directly by
// both hostgpio/gpioioctl's LineSetLine and hostgpio/sysfs's pins — into
// ReadableLine and WritableLine, so either GPIO backend drives the engines
// without a cast at every call site.
type PinLine struct {
	Pin gpio.PinIO
}

// Read implements ReadableLine.
func (p PinLine) Read() (Level, error) {
	return p.Pin.Read(), nil
}

// Write implements WritableLine.
func (p PinLine) Write(l Level) error {
	return p.Pin.Out(l)
}

// PinEdgeSource adapts a gpio.PinIO armed with edge detection (via
// In(pull, gpio.BothEdges) or equivalent) into an EdgeSource. periph's
// edge API (WaitForEdge(timeout)) is timeout-based rather than
// context-based, so this owns a background goroutine that polls it in
// short slices and forwards each observed edge over a channel.
type PinEdgeSource struct {
	pin   gpio.PinIO
	edges chan Edge
	done  chan struct{}
}

// NewPinEdgeSource starts watching pin for edges. The caller must have
// already armed edge detection on pin.
func NewPinEdgeSource(pin gpio.PinIO) *PinEdgeSource {
	s := &PinEdgeSource{pin: pin, edges: make(chan Edge), done: make(chan struct{})}
	go s.run()
	return s
}

func (s *PinEdgeSource) run() {
	last := s.pin.Read()
	for {
		select {
		case <-s.done:
			return
		default:
		}
		if !s.pin.WaitForEdge(200 * time.Millisecond) {
			continue
		}
		lvl := s.pin.Read()
		if lvl == last {
			continue
		}
		e := FallingEdge
		if lvl {
			e = RisingEdge
		}
		last = lvl
		select {
		case s.edges <- e:
		case <-s.done:
			return
		}
	}
}

// Wait implements EdgeSource.
func (s *PinEdgeSource) Wait(ctx context.Context) (Edge, bool, error) {
	select {
	case e, ok := <-s.edges:
		if !ok {
			return NoEdge, false, nil
		}
		return e, true, nil
	case <-ctx.Done():
		return NoEdge, true, nil
	case <-s.done:
		return NoEdge, false, nil
	}
}

// Close stops the background watcher. Any blocked or future Wait returns
// ok == false.
func (s *PinEdgeSource) Close() {
	close(s.done)
}

// EdgeWaiter is satisfied by an atomic multi-line GPIO request — such as
// gpioioctl's LineSet — whose WaitForEdge blocks for an edge on any of its
// lines and reports which line number triggered it.
type EdgeWaiter interface {
	WaitForEdge(timeout time.Duration) (number int, edge gpio.Edge, err error)
}

// GroupEdgeSource adapts an EdgeWaiter into an EdgeSource, filtering to the
// one line number armed for edge detection within the group. It's the
// group-request counterpart to PinEdgeSource: when the link port's lines
// are requested together as one LineSet, only the group itself — not any
// individual LineSetLine — can wait for an edge, so SCK's edges have to be
// picked out of the group's shared event stream by line number.
type GroupEdgeSource struct {
	group  EdgeWaiter
	number int
	edges  chan Edge
	done   chan struct{}
}

// NewGroupEdgeSource starts watching group for edges on line number. The
// line must already be armed for gpio.BothEdges (or equivalent) detection
// as part of the group's request.
func NewGroupEdgeSource(group EdgeWaiter, number int) *GroupEdgeSource {
	s := &GroupEdgeSource{group: group, number: number, edges: make(chan Edge), done: make(chan struct{})}
	go s.run()
	return s
}

func (s *GroupEdgeSource) run() {
	for {
		select {
		case <-s.done:
			return
		default:
		}
		n, e, err := s.group.WaitForEdge(200 * time.Millisecond)
		if err != nil || e == gpio.NoEdge || n != s.number {
			// A plain timeout surfaces as a non-nil err here (the group's
			// read deadline expired); treat it the same as "no edge yet".
			continue
		}
		edge := FallingEdge
		if e == gpio.RisingEdge {
			edge = RisingEdge
		}
		select {
		case s.edges <- edge:
		case <-s.done:
			return
		}
	}
}

// Wait implements EdgeSource.
func (s *GroupEdgeSource) Wait(ctx context.Context) (Edge, bool, error) {
	select {
	case e, ok := <-s.edges:
		if !ok {
			return NoEdge, false, nil
		}
		return e, true, nil
	case <-ctx.Done():
		return NoEdge, true, nil
	case <-s.done:
		return NoEdge, false, nil
	}
}

// Close stops the background watcher. Any blocked or future Wait returns
// ok == false.
func (s *GroupEdgeSource) Close() {
	close(s.done)
}

// Bus groups the three link-port pins, resolved by hostgpio against either
// the gpioioctl chardev backend's atomic LineSet or the sysfs fallback's
// individually-registered pins, into the handles the bit engines need.
type Bus struct {
	SCK  gpio.PinIO
	SIN  gpio.PinIO
	SOUT gpio.PinIO
}

// NewConsole builds a Console engine directly over the bus's pins. Safe
// for the Console role, which is single-threaded and caller-clocked: every
// Tick reads and writes the real pins synchronously, no mirror needed.
func (b *Bus) NewConsole() *Console {
	return NewConsole(PinLine{b.SCK}, PinLine{b.SIN}, PinLine{b.SOUT})
}

// SOUTLine exposes the bus's SOUT pin as a ReadableLine, for wiring a
// Peripheral engine over a mirror-SCK line maintained by the caller's event
// loop (see printer.Loop) rather than the raw SCK pin.
func (b *Bus) SOUTLine() ReadableLine {
	return PinLine{b.SOUT}
}

// SINLine exposes the bus's SIN pin as a WritableLine.
func (b *Bus) SINLine() WritableLine {
	return PinLine{b.SIN}
}

// SCKEdges starts watching the bus's SCK pin for edges. The pin must
// already be armed for gpio.BothEdges detection.
func (b *Bus) SCKEdges() *PinEdgeSource {
	return NewPinEdgeSource(b.SCK)
}
