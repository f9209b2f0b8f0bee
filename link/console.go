// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package link

import "fmt"

const (
	phaseDrive = false
	phaseSample = true
)

// Console is the bus-master bit engine: it drives SCK and SOUT and samples
// SIN. It has no notion of real time; the caller is responsible for
// invoking Tick at the link's clock rate (nominally ~8192 Hz for the
// original handheld this link emulates).
type Console struct {
	sck  WritableLine
	sin  ReadableLine
	sout WritableLine

	phase    bool // phaseDrive or phaseSample
	shiftOut byte
	shiftIn  byte
	bitIndex int
	sendQ    ByteRing
}

// NewConsole takes ownership of the three bus lines. Initial state: the
// engine starts in the drive phase with every register zero and an empty
// send queue.
func NewConsole(sck WritableLine, sin ReadableLine, sout WritableLine) *Console {
	return &Console{sck: sck, sin: sin, sout: sout, phase: phaseDrive}
}

// Send enqueues a byte for transmission. If the send queue is full, the
// oldest queued byte is evicted.
func (c *Console) Send(b byte) {
	c.sendQ.Push(b)
}

// Pending returns the number of bytes still queued to send.
func (c *Console) Pending() int {
	return c.sendQ.Len()
}

// Tick advances the engine by one half-bit. ok is true when a full inbound
// byte was just completed, in which case recv holds it.
//
// Any error returned by the underlying lines is returned wrapped with %w;
// the engine's internal state is left exactly as it was before the failing
// line operation, so retrying the same Tick reproduces the same intent.
func (c *Console) Tick() (recv byte, ok bool, err error) {
	load := c.bitIndex == 0 && c.phase == phaseDrive
	if load {
		if c.sendQ.Len() == 0 {
			c.shiftOut = 0
			return 0, false, nil
		}
		// Peek only: the byte leaves the queue once its first bit is driven.
		c.shiftOut = c.sendQ.buf[c.sendQ.head]
	}

	if c.phase == phaseDrive {
		bit := Low
		if c.shiftOut&0x80 != 0 {
			bit = High
		}
		if err := c.sout.Write(bit); err != nil {
			return 0, false, fmt.Errorf("link: console: drive sout: %w", err)
		}
		if err := c.sck.Write(Low); err != nil {
			return 0, false, fmt.Errorf("link: console: drive sck low: %w", err)
		}
		if load {
			c.sendQ.Pop()
		}
	} else {
		lvl, err := c.sin.Read()
		if err != nil {
			return 0, false, fmt.Errorf("link: console: sample sin: %w", err)
		}
		if err := c.sck.Write(High); err != nil {
			return 0, false, fmt.Errorf("link: console: drive sck high: %w", err)
		}
		if lvl {
			c.shiftIn |= 0x01
		}
		c.bitIndex++
		if c.bitIndex < 8 {
			c.shiftOut <<= 1
			c.shiftIn <<= 1
		} else {
			recv, ok = c.shiftIn, true
			c.shiftIn = 0
			c.bitIndex = 0
		}
	}

	c.phase = !c.phase
	return recv, ok, nil
}
