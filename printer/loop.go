// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package printer

import (
	"context"
	"log"
	"time"

	"github.com/retrobus/gblink/link"
)

// IdleReset is the default bus-idle threshold: after this long without an
// SCK edge, the next loop iteration resets the engine and the FSM rather
// than trust a stale half-clocked byte.
const IdleReset = time.Second

// slowSlotThreshold is below IdleReset; a bit slot arriving this late is
// worth a diagnostic line without being a full reset.
const slowSlotThreshold = 200 * time.Microsecond

// Sink receives a fully decoded packet payload. cmd is the packet's
// command byte; payload has already been decompressed if the packet
// declared itself compressed. The concrete destination (file, display,
// network) is up to the caller.
type Sink interface {
	Deliver(cmd Command, payload []byte) error
}

// Loop is the Peripheral-role event loop described by the wire protocol:
// it owns an SCK edge source, a mirror of SCK's level driven by that
// source, a Peripheral engine wired over (mirror, SIN, SOUT), and the
// packet FSM, and drives all three from each observed edge.
type Loop struct {
	edges      link.EdgeSource
	mirror     *link.MemoryLine
	peripheral *link.Peripheral
	fsm        *FSM
	sink       Sink
	idleReset  time.Duration

	lastEdge time.Time
	lastDir  link.Edge
}

// Peripheral returns the loop's underlying engine, for callers (and tests)
// that need to inspect its queue depth or wire it elsewhere.
func (l *Loop) Peripheral() *link.Peripheral {
	return l.peripheral
}

// NewLoop builds a Loop. sin and sout are the peripheral's data lines;
// edges is the asynchronous source of SCK transitions. idleReset of zero
// uses IdleReset.
func NewLoop(edges link.EdgeSource, sin link.WritableLine, sout link.ReadableLine, sink Sink, idleReset time.Duration) *Loop {
	if idleReset == 0 {
		idleReset = IdleReset
	}
	mirror := link.NewMemoryLine()
	return &Loop{
		edges:      edges,
		mirror:     mirror,
		peripheral: link.NewPeripheral(mirror, sin, sout),
		fsm:        New(),
		sink:       sink,
		idleReset:  idleReset,
		lastDir:    link.NoEdge,
	}
}

// Run drives the loop until the edge source is exhausted, ctx is
// cancelled, or an unrecoverable error occurs. A cancelled ctx is returned
// as ctx.Err(); exhaustion of the edge source returns nil.
func (l *Loop) Run(ctx context.Context) error {
	l.lastEdge = time.Now()
	for {
		edge, ok, err := l.edges.Wait(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if edge == link.NoEdge {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if err := l.step(edge, time.Now()); err != nil {
			return err
		}
	}
}

// step processes a single observed edge at time now. Split out of Run so
// the idle-reset and debounce logic can be exercised without real wall-clock
// delays in tests.
func (l *Loop) step(edge link.Edge, now time.Time) error {
	elapsed := now.Sub(l.lastEdge)
	l.lastEdge = now

	if elapsed > slowSlotThreshold && elapsed <= l.idleReset {
		log.Printf("printer: bit slot arrived %v after the previous one", elapsed)
	}
	if elapsed > l.idleReset {
		l.peripheral.Reset()
		l.fsm = New()
		l.lastDir = link.NoEdge
	}

	if edge == l.lastDir {
		return nil // debounce
	}
	l.lastDir = edge

	lvl := link.Low
	if edge == link.RisingEdge {
		lvl = link.High
	}
	if err := l.mirror.Write(lvl); err != nil {
		return err
	}

	recv, got, err := l.peripheral.Recv()
	if err != nil {
		return err
	}
	if !got {
		return nil
	}
	return l.handleByte(recv)
}

func (l *Loop) handleByte(b byte) error {
	if err := l.fsm.Transition(b); err != nil {
		return err
	}
	switch l.fsm.State {
	case WaitKeepalive:
		l.peripheral.Reply(0x81)
	case WaitStatus:
		var status byte
		if l.fsm.ChecksumActual != l.fsm.ChecksumExpected {
			status |= StatusChecksumError
		}
		l.peripheral.Reply(status)
	case Done:
		payload := l.fsm.Payload()
		if l.fsm.Compression == Compressed {
			decoded, err := Decompress(payload)
			if err != nil {
				return err
			}
			payload = decoded
		}
		if l.sink != nil {
			if err := l.sink.Deliver(l.fsm.Cmd, payload); err != nil {
				return err
			}
		}
		l.fsm = New()
	}
	return nil
}
