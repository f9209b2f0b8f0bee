// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "fmt"

// Peripheral is the bus-slave bit engine: it samples SCK and SOUT and
// drives SIN. Unlike Console it has no notion of phase — SCK's observed
// level IS the phase, so Recv is meant to be called once per observed SCK
// edge rather than on a fixed cadence.
type Peripheral struct {
	sck  ReadableLine
	sin  WritableLine
	sout ReadableLine

	shiftOut byte
	shiftIn  byte
	bitIndex int
	recvQ    ByteRing // outbound: reply bytes queued by the protocol layer
}

// NewPeripheral takes an SCK readable line, an SIN writable line, and an
// SOUT readable line.
func NewPeripheral(sck ReadableLine, sin WritableLine, sout ReadableLine) *Peripheral {
	return &Peripheral{sck: sck, sin: sin, sout: sout}
}

// Reply enqueues a byte the peripheral will present on SIN the next time it
// has a full shift register's worth of bits to send. If the queue is full,
// the oldest queued byte is evicted.
func (p *Peripheral) Reply(b byte) {
	p.recvQ.Push(b)
}

// Pending returns the number of reply bytes still queued.
func (p *Peripheral) Pending() int {
	return p.recvQ.Len()
}

// Recv should be invoked once per observed SCK edge. ok is true when a full
// inbound byte was just completed, in which case recv holds it.
func (p *Peripheral) Recv() (recv byte, ok bool, err error) {
	if p.bitIndex == 0 {
		if b, popped := p.recvQ.Pop(); popped {
			p.shiftOut = b
		} else {
			p.shiftOut = 0
		}
	}

	sck, err := p.sck.Read()
	if err != nil {
		return 0, false, fmt.Errorf("link: peripheral: read sck: %w", err)
	}

	if sck {
		bit := Low
		if p.shiftOut&0x80 != 0 {
			bit = High
		}
		if err := p.sin.Write(bit); err != nil {
			return 0, false, fmt.Errorf("link: peripheral: drive sin: %w", err)
		}
		return 0, false, nil
	}

	lvl, err := p.sout.Read()
	if err != nil {
		return 0, false, fmt.Errorf("link: peripheral: sample sout: %w", err)
	}
	if lvl {
		p.shiftIn |= 0x01
	}
	p.bitIndex++
	if p.bitIndex < 8 {
		p.shiftOut <<= 1
		p.shiftIn <<= 1
		return 0, false, nil
	}
	recv, ok = p.shiftIn, true
	p.shiftIn = 0
	p.bitIndex = 0
	return recv, ok, nil
}

// Reset zeros all shift registers, resets bit_index, and clears the reply
// queue. Called after bus idle to prevent a stale half-clocked byte from
// corrupting the next transaction.
func (p *Peripheral) Reset() {
	p.shiftOut = 0
	p.shiftIn = 0
	p.bitIndex = 0
	p.recvQ.Reset()
}
